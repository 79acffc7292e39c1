// Package progress projects completion state out of a check-in record. It
// holds no state of its own.
package progress

import "github.com/victorsuarez3/hangovershield-sub001/internal"

type Summary struct {
	CompletedCount       int    `json:"completed_count"`
	TotalCount           int    `json:"total_count"`
	NextIncompleteStepID string `json:"next_incomplete_step_id,omitempty"`
	AllCompleted         bool   `json:"all_completed"`
	PlanCompleted        bool   `json:"plan_completed"`
}

// Summarize walks the stored step order, not the timeOfDay grouping the UI
// renders. The two currently coincide by construction, but the stored order
// is the authoritative one.
func Summarize(c *internal.CheckIn) Summary {
	var s Summary
	if c == nil || c.GeneratedPlan == nil {
		return s
	}
	s.TotalCount = len(c.GeneratedPlan.Steps)
	s.PlanCompleted = c.CompletedAt != nil
	for _, step := range c.GeneratedPlan.Steps {
		if c.StepsState[step.ID] {
			s.CompletedCount++
			continue
		}
		if s.NextIncompleteStepID == "" {
			s.NextIncompleteStepID = step.ID
		}
	}
	s.AllCompleted = s.TotalCount > 0 && s.CompletedCount == s.TotalCount
	return s
}
