package plan

import (
	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// Step ids are stable across regenerations: completion state is keyed by id,
// so the same logical action must always get the same id even when its text
// or time label differs by variant.
const (
	StepSoftLightBreathing = "soft_light_breathing"
	StepHydrateElectrolyte = "hydrate_electrolytes"
	StepLightBreakfast     = "light_breakfast"
	StepShortWalk          = "short_walk"
	StepNap                = "nap"
	StepAfternoonMeal      = "afternoon_meal"
)

// baseCatalogue holds the five fixed actions in display/execution order.
var baseCatalogue = map[string]internal.RecoveryStep{
	StepSoftLightBreathing: {
		ID:              StepSoftLightBreathing,
		TimeOfDay:       internal.Morning,
		DisplayTime:     "8:00 AM",
		Title:           "Soft light + slow breathing",
		Description:     "Open the curtains halfway and take ten slow breaths before reaching for your phone.",
		DurationMinutes: 5,
		Icon:            "sunrise",
	},
	StepHydrateElectrolyte: {
		ID:              StepHydrateElectrolyte,
		TimeOfDay:       internal.Morning,
		DisplayTime:     "8:30 AM",
		Title:           "Water + electrolytes",
		Description:     "Drink a large glass of water with an electrolyte tablet or a pinch of salt.",
		DurationMinutes: 10,
		Icon:            "droplet",
	},
	StepLightBreakfast: {
		ID:              StepLightBreakfast,
		TimeOfDay:       internal.Morning,
		DisplayTime:     "9:30 AM",
		Title:           "Light breakfast",
		Description:     "Toast, eggs, or a banana. Skip anything greasy or heavily spiced.",
		DurationMinutes: 20,
		Icon:            "toast",
	},
	StepShortWalk: {
		ID:              StepShortWalk,
		TimeOfDay:       internal.Midday,
		DisplayTime:     "11:00 AM",
		Title:           "Short outdoor walk",
		Description:     "Fifteen easy minutes outside. Daylight helps reset your body clock.",
		DurationMinutes: 15,
		Icon:            "walk",
	},
	StepAfternoonMeal: {
		ID:              StepAfternoonMeal,
		TimeOfDay:       internal.Afternoon,
		DisplayTime:     "2:30 PM",
		Title:           "Light meal + rest",
		Description:     "A balanced plate, then half an hour on the couch with your feet up.",
		DurationMinutes: 30,
		Icon:            "bowl",
	},
}

type napVariant int

const (
	napNone napVariant = iota
	napPower
	napRestorative
)

// napSteps holds the two variants of the conditional nap action. Same id on
// purpose: the variant only changes wording and timing, not identity.
var napSteps = map[napVariant]internal.RecoveryStep{
	napPower: {
		ID:              StepNap,
		TimeOfDay:       internal.Midday,
		DisplayTime:     "11:30 AM",
		Title:           "Power nap",
		Description:     "Twenty minutes, alarm set, curtains drawn. Longer than that works against you.",
		DurationMinutes: 20,
		Icon:            "moon",
	},
	napRestorative: {
		ID:              StepNap,
		TimeOfDay:       internal.Afternoon,
		DisplayTime:     "1:00 PM",
		Title:           "Restorative power nap",
		Description:     "You slept badly, so take a full sleep-cycle nap. Set an alarm for 45 minutes.",
		DurationMinutes: 45,
		Icon:            "moon",
	},
}

type stepKey struct {
	Level     internal.Severity
	PoorSleep bool
}

type stepSelection struct {
	// Sequence lists catalogue ids in display order; StepNap resolves to the
	// variant in Nap.
	Sequence []string
	Nap      napVariant
}

// stepTable enumerates all eight (level, poorSleep) cases explicitly so the
// whole decision surface is auditable in one place. The nap slots in after
// the walk and before the afternoon meal; none-level plans are truncated and
// only carry the afternoon meal when sleep was poor.
var stepTable = map[stepKey]stepSelection{
	{internal.SeveritySevere, false}: {
		Sequence: []string{StepSoftLightBreathing, StepHydrateElectrolyte, StepLightBreakfast, StepShortWalk, StepNap, StepAfternoonMeal},
		Nap:      napPower,
	},
	{internal.SeveritySevere, true}: {
		Sequence: []string{StepSoftLightBreathing, StepHydrateElectrolyte, StepLightBreakfast, StepShortWalk, StepNap, StepAfternoonMeal},
		Nap:      napRestorative,
	},
	{internal.SeverityModerate, false}: {
		Sequence: []string{StepSoftLightBreathing, StepHydrateElectrolyte, StepLightBreakfast, StepShortWalk, StepNap, StepAfternoonMeal},
		Nap:      napPower,
	},
	{internal.SeverityModerate, true}: {
		Sequence: []string{StepSoftLightBreathing, StepHydrateElectrolyte, StepLightBreakfast, StepShortWalk, StepNap, StepAfternoonMeal},
		Nap:      napRestorative,
	},
	{internal.SeverityMild, false}: {
		Sequence: []string{StepSoftLightBreathing, StepHydrateElectrolyte, StepLightBreakfast, StepShortWalk, StepAfternoonMeal},
	},
	{internal.SeverityMild, true}: {
		Sequence: []string{StepSoftLightBreathing, StepHydrateElectrolyte, StepLightBreakfast, StepShortWalk, StepNap, StepAfternoonMeal},
		Nap:      napRestorative,
	},
	{internal.SeverityNone, false}: {
		Sequence: []string{StepSoftLightBreathing, StepHydrateElectrolyte, StepLightBreakfast, StepShortWalk},
	},
	{internal.SeverityNone, true}: {
		Sequence: []string{StepSoftLightBreathing, StepHydrateElectrolyte, StepAfternoonMeal},
	},
}

// buildSteps materializes the ordered step list for a (level, poorSleep) case.
func buildSteps(level internal.Severity, poorSleep bool) []internal.RecoveryStep {
	sel := stepTable[stepKey{Level: level, PoorSleep: poorSleep}]
	out := make([]internal.RecoveryStep, 0, len(sel.Sequence))
	for _, id := range sel.Sequence {
		if id == StepNap {
			out = append(out, napSteps[sel.Nap])
			continue
		}
		out = append(out, baseCatalogue[id])
	}
	return out
}
