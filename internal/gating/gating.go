// Package gating decides, per named feature, whether to render fully, render
// with an upsell affordance (soft), or render a locked placeholder. Policy is
// an explicit table keyed by feature string, so a feature gates identically
// no matter which screen renders it.
package gating

import (
	"sync"

	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

type Visibility string

const (
	VisibilityFull   Visibility = "full"
	VisibilitySoft   Visibility = "soft"
	VisibilityLocked Visibility = "locked"
)

// Feature keys are stable strings shared with the clients.
const (
	FeatureRecoveryPlanMorning   = "recovery_plan_morning"
	FeatureRecoveryPlanMidday    = "recovery_plan_midday"
	FeatureRecoveryPlanAfternoon = "recovery_plan_afternoon"
	FeatureHydrationDetail       = "hydration_detail"
	FeatureRecoveryTimeline      = "recovery_timeline"
	FeatureInsightsHistory       = "insights_history"
	FeatureMicroAction           = "micro_action"
)

// policy gives the visibility for gated (non-full-access) users. Full-access
// users always see everything.
type policy struct {
	Gated Visibility
}

var policies = map[string]policy{
	FeatureRecoveryPlanMorning:   {Gated: VisibilityFull},
	FeatureMicroAction:           {Gated: VisibilityFull},
	FeatureRecoveryPlanMidday:    {Gated: VisibilitySoft},
	FeatureHydrationDetail:       {Gated: VisibilitySoft},
	FeatureRecoveryPlanAfternoon: {Gated: VisibilityLocked},
	FeatureRecoveryTimeline:      {Gated: VisibilityLocked},
	FeatureInsightsHistory:       {Gated: VisibilityLocked},
}

// Decide resolves one feature against an access status. Unknown feature keys
// lock: failing closed beats accidentally exposing a paid surface.
func Decide(featureKey string, access internal.AccessStatus) Visibility {
	p, ok := policies[featureKey]
	if !ok {
		return VisibilityLocked
	}
	if access.HasFullAccess {
		return VisibilityFull
	}
	return p.Gated
}

// Sections evaluates the whole policy table at once, for screens that render
// several gated sections in one pass.
func Sections(access internal.AccessStatus) map[string]Visibility {
	out := make(map[string]Visibility, len(policies))
	for key := range policies {
		out[key] = Decide(key, access)
	}
	return out
}

// ImpressionLatch fires exactly once per instance. A soft-gate card logs one
// impression per mount; remounting creates a new latch, which is a legitimate
// new impression. Not a global dedup set.
type ImpressionLatch struct {
	mu    sync.Mutex
	fired bool
}

func NewImpressionLatch() *ImpressionLatch {
	return &ImpressionLatch{}
}

// FirstImpression reports true on the first call only.
func (l *ImpressionLatch) FirstImpression() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fired {
		return false
	}
	l.fired = true
	return true
}
