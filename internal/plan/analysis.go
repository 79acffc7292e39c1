package plan

import (
	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// Recovery-window analysis. This is a fixed lookup keyed by severity and
// symptom load, maintained by the product side; the engine composes its
// output but does not own the thresholds.

// heavySymptomThreshold splits each severity band into a light and a heavy
// variant by the number of real symptom tags reported.
const heavySymptomThreshold = 3

// windowTable[level] = {light-band window, heavy-band window}.
var windowTable = map[internal.Severity][2]internal.RecoveryWindow{
	internal.SeverityNone:     {{MinHours: 2, MaxHours: 4}, {MinHours: 2, MaxHours: 6}},
	internal.SeverityMild:     {{MinHours: 6, MaxHours: 10}, {MinHours: 8, MaxHours: 12}},
	internal.SeverityModerate: {{MinHours: 12, MaxHours: 16}, {MinHours: 14, MaxHours: 18}},
	internal.SeveritySevere:   {{MinHours: 18, MaxHours: 22}, {MinHours: 20, MaxHours: 24}},
}

var levelLabels = map[internal.Severity]string{
	internal.SeverityNone:     "No hangover",
	internal.SeverityMild:     "Mild hangover",
	internal.SeverityModerate: "Moderate hangover",
	internal.SeveritySevere:   "Severe hangover",
}

var symptomLabels = map[internal.Symptom]string{
	internal.SymptomHeadache:   "Headache",
	internal.SymptomNausea:     "Nausea",
	internal.SymptomDryMouth:   "Dry mouth",
	internal.SymptomDizziness:  "Dizziness",
	internal.SymptomFatigue:    "Fatigue",
	internal.SymptomAnxiety:    "Anxiety",
	internal.SymptomBrainFog:   "Brain fog",
	internal.SymptomPoorSleep:  "Poor sleep",
	internal.SymptomNoSymptoms: "No symptoms",
}

// AnalyzeRecovery returns the estimated recovery window for a severity and
// symptom count.
func AnalyzeRecovery(level internal.Severity, symptomCount int) internal.RecoveryWindow {
	bands := windowTable[level]
	if symptomCount >= heavySymptomThreshold {
		return bands[1]
	}
	return bands[0]
}

// LevelLabel returns the display string for a severity.
func LevelLabel(level internal.Severity) string {
	return levelLabels[level]
}

// SymptomLabels returns display strings for a normalized symptom set,
// preserving its order.
func SymptomLabels(symptoms internal.SymptomSet) []string {
	out := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if label, ok := symptomLabels[s]; ok {
			out = append(out, label)
		}
	}
	return out
}
