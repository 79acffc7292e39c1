package storage

import (
	"context"

	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// CheckInRepository is the remote document store: one JSON-serializable
// CheckIn per (user, day). Implementations return internal.ErrNotFound for
// missing records.
type CheckInRepository interface {
	GetCheckIn(ctx context.Context, userID, dayID string) (*internal.CheckIn, error)
	PutCheckIn(ctx context.Context, c *internal.CheckIn) error
	ListCheckIns(ctx context.Context, userID string) ([]internal.CheckIn, error)
}

// SubscriptionRepository holds the per-user purchase state mirrored from the
// payment collaborator.
type SubscriptionRepository interface {
	GetSubscription(ctx context.Context, userID string) (*internal.Subscription, error)
	PutSubscription(ctx context.Context, sub *internal.Subscription) error
}
