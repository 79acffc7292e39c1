package plan

import (
	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// symptomPriority lists, per level, the symptoms checked for a targeted
// micro-action, in evaluation order. Mild checks headache before nausea while
// moderate checks nausea before headache. The asymmetry is intentional and
// product-confirmed behavior; do not unify the order.
var symptomPriority = map[internal.Severity][]internal.Symptom{
	internal.SeverityMild:     {internal.SymptomHeadache, internal.SymptomNausea},
	internal.SeverityModerate: {internal.SymptomNausea, internal.SymptomHeadache},
}

var drinkingTodayAction = internal.MicroAction{
	Title:   "Set a water reminder",
	Body:    "Before your first drink tonight, set a reminder to alternate every drink with a glass of water.",
	Seconds: 30,
}

var fixedActions = map[internal.Severity]internal.MicroAction{
	internal.SeveritySevere: {
		Title:   "Start with slow hydration + sit upright for 2 minutes",
		Body:    "Small sips, not gulps. Sitting upright for two minutes settles dizziness before you get moving.",
		Seconds: 120,
	},
	internal.SeverityNone: {
		Title:   "Take a minute to stretch",
		Body:    "You feel fine. Sixty seconds of stretching starts the day on the right foot anyway.",
		Seconds: 60,
	},
}

var symptomActions = map[internal.Severity]map[internal.Symptom]internal.MicroAction{
	internal.SeverityMild: {
		internal.SymptomHeadache: {
			Title:   "Drink water away from bright screens",
			Body:    "A full glass of water, lights dimmed, phone face down for one minute.",
			Seconds: 60,
		},
		internal.SymptomNausea: {
			Title:   "Five slow breaths, then sip cold water",
			Body:    "Slow nasal breaths calm your stomach. Follow with small sips of cold water.",
			Seconds: 60,
		},
	},
	internal.SeverityModerate: {
		internal.SymptomNausea: {
			Title:   "Nibble something bland",
			Body:    "A plain cracker or a small piece of ginger. Keep it tiny; the goal is to settle, not to eat.",
			Seconds: 60,
		},
		internal.SymptomHeadache: {
			Title:   "Full glass of water, lights down",
			Body:    "Drink the whole glass, then keep the lights low for a couple of minutes.",
			Seconds: 90,
		},
	},
}

var defaultActions = map[internal.Severity]internal.MicroAction{
	internal.SeverityMild: {
		Title:   "Drink a glass of water",
		Body:    "One full glass before anything else. It is the single highest-value thing you can do right now.",
		Seconds: 45,
	},
	internal.SeverityModerate: {
		Title:   "Drink a full glass of water now",
		Body:    "Refill and repeat within the hour. Rehydration does most of the work today.",
		Seconds: 60,
	},
}

// selectMicroAction is a priority cascade, first match wins:
// drinking-today override, then the per-level symptom priority list, then the
// level's fixed or default action.
func selectMicroAction(level internal.Severity, symptoms internal.SymptomSet, drinkingToday bool) internal.MicroAction {
	if drinkingToday {
		return drinkingTodayAction
	}
	if a, ok := fixedActions[level]; ok {
		return a
	}
	for _, s := range symptomPriority[level] {
		if symptoms.Has(s) {
			return symptomActions[level][s]
		}
	}
	return defaultActions[level]
}
