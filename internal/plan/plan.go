// Package plan is the deterministic rule engine that turns a daily
// self-report into a RecoveryPlan. Generate is a pure function: identical
// inputs always produce identical output, down to step ids and ordering.
package plan

import (
	"fmt"

	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// hydrationGoals is keyed by severity only. Symptoms deliberately do not
// affect the goal.
var hydrationGoals = map[internal.Severity]float64{
	internal.SeveritySevere:   2.0,
	internal.SeverityModerate: 1.5,
	internal.SeverityMild:     1.2,
	internal.SeverityNone:     1.0,
}

// Generate maps the check-in inputs to a RecoveryPlan. Unknown symptom tags
// are dropped silently; an unknown severity is a contract violation and
// returns an error. No I/O, no clock reads.
func Generate(level internal.Severity, symptoms internal.SymptomSet, drankLastNight, drinkingToday *bool) (*internal.RecoveryPlan, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("plan: unknown severity %q", level)
	}

	symptoms = symptoms.Normalize()
	poorSleep := symptoms.Has(internal.SymptomPoorSleep)
	drinking := drinkingToday != nil && *drinkingToday

	return &internal.RecoveryPlan{
		RecoveryWindow:      AnalyzeRecovery(level, symptoms.Count()),
		HydrationGoalLiters: hydrationGoals[level],
		MicroAction:         selectMicroAction(level, symptoms, drinking),
		Steps:               buildSteps(level, poorSleep),
		SymptomLabels:       SymptomLabels(symptoms),
		LevelLabel:          LevelLabel(level),
	}, nil
}
