package plan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

func boolPtr(b bool) *bool { return &b }

func TestGenerate_Deterministic(t *testing.T) {
	levels := []internal.Severity{internal.SeverityNone, internal.SeverityMild, internal.SeverityModerate, internal.SeveritySevere}
	symptomSets := []internal.SymptomSet{
		nil,
		{internal.SymptomHeadache},
		{internal.SymptomNausea, internal.SymptomPoorSleep},
		{internal.SymptomPoorSleep, internal.SymptomHeadache, internal.SymptomFatigue, internal.SymptomBrainFog},
	}
	for _, level := range levels {
		for _, set := range symptomSets {
			for _, drinking := range []*bool{nil, boolPtr(true), boolPtr(false)} {
				a, err := Generate(level, set, nil, drinking)
				require.NoError(t, err)
				b, err := Generate(level, set, nil, drinking)
				require.NoError(t, err)

				aJSON, _ := json.Marshal(a)
				bJSON, _ := json.Marshal(b)
				assert.Equal(t, string(aJSON), string(bJSON))
			}
		}
	}
}

func TestGenerate_UnknownSeverityFails(t *testing.T) {
	_, err := Generate("catastrophic", nil, nil, nil)
	assert.Error(t, err)
}

func TestGenerate_UnknownSymptomsIgnored(t *testing.T) {
	p, err := Generate(internal.SeverityMild, internal.SymptomSet{"tentacles", internal.SymptomHeadache}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Headache"}, p.SymptomLabels)
}

func TestGenerate_HydrationBySeverityOnly(t *testing.T) {
	cases := map[internal.Severity]float64{
		internal.SeveritySevere:   2.0,
		internal.SeverityModerate: 1.5,
		internal.SeverityMild:     1.2,
		internal.SeverityNone:     1.0,
	}
	for level, want := range cases {
		bare, err := Generate(level, nil, nil, nil)
		require.NoError(t, err)
		loaded, err := Generate(level, internal.SymptomSet{internal.SymptomHeadache, internal.SymptomNausea, internal.SymptomDizziness}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, want, bare.HydrationGoalLiters)
		assert.Equal(t, want, loaded.HydrationGoalLiters)
	}
}

// Severe with no symptoms: 6 steps including the non-poor-sleep nap variant.
func TestGenerate_SevereNoSymptoms(t *testing.T) {
	p, err := Generate(internal.SeveritySevere, nil, nil, boolPtr(false))
	require.NoError(t, err)

	assert.Equal(t, 2.0, p.HydrationGoalLiters)
	assert.Equal(t, "Start with slow hydration + sit upright for 2 minutes", p.MicroAction.Title)
	require.Len(t, p.Steps, 6)

	nap := p.Steps[4]
	assert.Equal(t, StepNap, nap.ID)
	assert.Equal(t, "Power nap", nap.Title)
	assert.Equal(t, "11:30 AM", nap.DisplayTime)
	assert.Equal(t, StepShortWalk, p.Steps[3].ID)
	assert.Equal(t, StepAfternoonMeal, p.Steps[5].ID)
}

// Mild with poor sleep: 6 steps, restorative nap variant, afternoon meal kept.
func TestGenerate_MildPoorSleep(t *testing.T) {
	p, err := Generate(internal.SeverityMild, internal.SymptomSet{internal.SymptomPoorSleep}, nil, boolPtr(false))
	require.NoError(t, err)

	require.Len(t, p.Steps, 6)
	nap := p.Steps[4]
	assert.Equal(t, StepNap, nap.ID)
	assert.Equal(t, "Restorative power nap", nap.Title)
	assert.Equal(t, "1:00 PM", nap.DisplayTime)
	assert.Equal(t, StepAfternoonMeal, p.Steps[5].ID)
}

func TestGenerate_MildWithoutPoorSleepHasNoNap(t *testing.T) {
	p, err := Generate(internal.SeverityMild, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, p.Steps, 5)
	for _, s := range p.Steps {
		assert.NotEqual(t, StepNap, s.ID)
	}
}

// None with no symptoms: 4 steps, morning trio plus midday walk; no nap, no
// afternoon meal.
func TestGenerate_NoneNoSymptoms(t *testing.T) {
	p, err := Generate(internal.SeverityNone, nil, nil, boolPtr(false))
	require.NoError(t, err)

	require.Len(t, p.Steps, 4)
	assert.Equal(t, StepSoftLightBreathing, p.Steps[0].ID)
	assert.Equal(t, StepHydrateElectrolyte, p.Steps[1].ID)
	assert.Equal(t, StepLightBreakfast, p.Steps[2].ID)
	assert.Equal(t, StepShortWalk, p.Steps[3].ID)
}

func TestGenerate_NonePoorSleepIncludesAfternoonMeal(t *testing.T) {
	p, err := Generate(internal.SeverityNone, internal.SymptomSet{internal.SymptomPoorSleep}, nil, nil)
	require.NoError(t, err)

	require.Len(t, p.Steps, 3)
	assert.Equal(t, StepAfternoonMeal, p.Steps[len(p.Steps)-1].ID)
	for _, s := range p.Steps {
		assert.NotEqual(t, StepNap, s.ID)
	}
}

// The drinking-today override beats every severity/symptom branch.
func TestGenerate_DrinkingTodayOverride(t *testing.T) {
	for _, level := range []internal.Severity{internal.SeverityNone, internal.SeverityMild, internal.SeverityModerate, internal.SeveritySevere} {
		p, err := Generate(level, internal.SymptomSet{internal.SymptomHeadache, internal.SymptomNausea}, nil, boolPtr(true))
		require.NoError(t, err)
		assert.Equal(t, "Set a water reminder", p.MicroAction.Title)
	}
}

// Mild resolves headache before nausea; moderate resolves nausea before
// headache. Both symptoms present makes the order observable.
func TestGenerate_SymptomPriorityAsymmetry(t *testing.T) {
	both := internal.SymptomSet{internal.SymptomHeadache, internal.SymptomNausea}

	mild, err := Generate(internal.SeverityMild, both, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, symptomActions[internal.SeverityMild][internal.SymptomHeadache].Title, mild.MicroAction.Title)

	moderate, err := Generate(internal.SeverityModerate, both, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, symptomActions[internal.SeverityModerate][internal.SymptomNausea].Title, moderate.MicroAction.Title)
}

// The nap keeps its id across variants so completion state keyed by id
// survives regeneration with different sleep input.
func TestGenerate_StepIDStability(t *testing.T) {
	withSleep, err := Generate(internal.SeveritySevere, internal.SymptomSet{internal.SymptomPoorSleep}, nil, nil)
	require.NoError(t, err)
	withoutSleep, err := Generate(internal.SeveritySevere, nil, nil, nil)
	require.NoError(t, err)

	require.Len(t, withSleep.Steps, 6)
	require.Len(t, withoutSleep.Steps, 6)
	for i := range withSleep.Steps {
		assert.Equal(t, withoutSleep.Steps[i].ID, withSleep.Steps[i].ID)
	}
	assert.NotEqual(t, withoutSleep.Steps[4].Title, withSleep.Steps[4].Title)
}

func TestAnalyzeRecovery_Bands(t *testing.T) {
	light := AnalyzeRecovery(internal.SeverityModerate, 2)
	heavy := AnalyzeRecovery(internal.SeverityModerate, 3)
	assert.Equal(t, internal.RecoveryWindow{MinHours: 12, MaxHours: 16}, light)
	assert.Equal(t, internal.RecoveryWindow{MinHours: 14, MaxHours: 18}, heavy)
	for _, level := range []internal.Severity{internal.SeverityNone, internal.SeverityMild, internal.SeverityModerate, internal.SeveritySevere} {
		for _, count := range []int{0, 5} {
			w := AnalyzeRecovery(level, count)
			assert.Greater(t, w.MinHours, 0)
			assert.GreaterOrEqual(t, w.MaxHours, w.MinHours)
		}
	}
}
