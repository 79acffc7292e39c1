// Package notify is the seam to the notification scheduler. The core only
// informs it of the day's plan; scheduling and cancellation live elsewhere.
package notify

import (
	"context"

	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

type Scheduler interface {
	PlanCreated(ctx context.Context, userID, dayID string, p *internal.RecoveryPlan)
}

// LogScheduler is the default implementation: it records the hand-off and
// does nothing else.
type LogScheduler struct {
	logger internal.Logger
}

func NewLogScheduler(logger internal.Logger) *LogScheduler {
	return &LogScheduler{logger: logger}
}

func (s *LogScheduler) PlanCreated(ctx context.Context, userID, dayID string, p *internal.RecoveryPlan) {
	s.logger.Infof("notify: plan created for user=%s day=%s steps=%d", userID, dayID, len(p.Steps))
}

var _ Scheduler = (*LogScheduler)(nil)
