package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

var firstSeen = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestComputeAccessStatus_PremiumBeatsEverything(t *testing.T) {
	for _, now := range []time.Time{
		firstSeen,
		firstSeen.Add(time.Hour),
		firstSeen.Add(1000 * 24 * time.Hour),
		firstSeen.Add(-time.Hour), // clock skew
	} {
		status := ComputeAccessStatus(true, firstSeen, now, DefaultWelcomeWindow)
		assert.Equal(t, internal.TierPremium, status.Tier)
		assert.True(t, status.HasFullAccess)
	}
}

func TestComputeAccessStatus_WelcomeWindowBoundary(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		tier internal.AccessTier
		full bool
	}{
		{"at first seen", firstSeen, internal.TierWelcome, true},
		{"just inside", firstSeen.Add(DefaultWelcomeWindow - time.Second), internal.TierWelcome, true},
		{"exactly at window", firstSeen.Add(DefaultWelcomeWindow), internal.TierFree, false},
		{"after window", firstSeen.Add(DefaultWelcomeWindow + time.Second), internal.TierFree, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := ComputeAccessStatus(false, firstSeen, tc.now, DefaultWelcomeWindow)
			assert.Equal(t, tc.tier, status.Tier)
			assert.Equal(t, tc.full, status.HasFullAccess)
		})
	}
}

func TestComputeAccessStatus_CustomWindow(t *testing.T) {
	window := 72 * time.Hour
	inside := ComputeAccessStatus(false, firstSeen, firstSeen.Add(48*time.Hour), window)
	outside := ComputeAccessStatus(false, firstSeen, firstSeen.Add(72*time.Hour), window)
	assert.Equal(t, internal.TierWelcome, inside.Tier)
	assert.Equal(t, internal.TierFree, outside.Tier)
}

func TestMemo_MatchesPureFunction(t *testing.T) {
	m := NewMemo(DefaultWelcomeWindow)
	for _, active := range []bool{true, false} {
		for _, offset := range []time.Duration{0, time.Hour, DefaultWelcomeWindow, 48 * time.Hour} {
			now := firstSeen.Add(offset)
			want := ComputeAccessStatus(active, firstSeen, now, DefaultWelcomeWindow)
			// Twice: second call hits the cache.
			assert.Equal(t, want, m.AccessStatus(active, firstSeen, now))
			assert.Equal(t, want, m.AccessStatus(active, firstSeen, now))
		}
	}
}

func TestMemo_BucketsDoNotLeakAcrossMinutes(t *testing.T) {
	m := NewMemo(time.Minute)
	// Inside the window in one bucket, outside in the next.
	inside := m.AccessStatus(false, firstSeen, firstSeen.Add(30*time.Second))
	outside := m.AccessStatus(false, firstSeen, firstSeen.Add(90*time.Second))
	assert.Equal(t, internal.TierWelcome, inside.Tier)
	assert.Equal(t, internal.TierFree, outside.Tier)
}
