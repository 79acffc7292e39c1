// Package entitlement computes the current access tier. The computation is a
// pure function over its three inputs, so any number of screens can call it
// concurrently without coordination.
package entitlement

import (
	"sync"
	"time"

	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// DefaultWelcomeWindow is the grace period after first use during which a
// free user keeps full access.
const DefaultWelcomeWindow = 24 * time.Hour

// ComputeAccessStatus derives the tier fresh on every call. Precedence:
// an active subscription is premium regardless of timestamps; otherwise the
// welcome window applies with an exclusive boundary (exactly window elapsed
// means free); otherwise free. The welcome grant decays on its own because it
// is recomputed from the fixed first-seen anchor, never stored.
func ComputeAccessStatus(subscriptionActive bool, firstSeenAt, now time.Time, window time.Duration) internal.AccessStatus {
	if subscriptionActive {
		return internal.AccessStatus{Tier: internal.TierPremium, HasFullAccess: true}
	}
	if now.Sub(firstSeenAt) < window {
		return internal.AccessStatus{Tier: internal.TierWelcome, HasFullAccess: true}
	}
	return internal.AccessStatus{Tier: internal.TierFree, HasFullAccess: false}
}

// Memo is a drop-in performance layer over ComputeAccessStatus. The key
// includes a minute bucket so entries cannot serve a stale welcome grant for
// longer than a minute past the boundary.
type Memo struct {
	window time.Duration
	mu     sync.RWMutex
	cache  map[memoKey]internal.AccessStatus
}

type memoKey struct {
	active       bool
	firstSeen    int64
	minuteBucket int64
}

func NewMemo(window time.Duration) *Memo {
	if window <= 0 {
		window = DefaultWelcomeWindow
	}
	return &Memo{window: window, cache: make(map[memoKey]internal.AccessStatus)}
}

func (m *Memo) AccessStatus(subscriptionActive bool, firstSeenAt, now time.Time) internal.AccessStatus {
	key := memoKey{
		active:       subscriptionActive,
		firstSeen:    firstSeenAt.Unix(),
		minuteBucket: now.Unix() / 60,
	}

	m.mu.RLock()
	status, ok := m.cache[key]
	m.mu.RUnlock()
	if ok {
		return status
	}

	status = ComputeAccessStatus(subscriptionActive, firstSeenAt, now, m.window)
	m.mu.Lock()
	m.cache[key] = status
	m.mu.Unlock()
	return status
}
