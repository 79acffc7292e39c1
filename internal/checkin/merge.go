package checkin

import "github.com/victorsuarez3/hangovershield-sub001/internal"

// Reconcile resolves a local/remote pair for the same day deterministically:
// the side with CompletedAt set wins the record, else the side with more
// steps marked done; step completion itself merges as a union of true
// entries, so progress made offline on either side is never lost. This is
// single-user, single-writer-at-a-time data, so no vector clocks.
func Reconcile(local, remote *internal.CheckIn) *internal.CheckIn {
	if local == nil && remote == nil {
		return nil
	}
	if local == nil {
		return remote.Clone()
	}
	if remote == nil {
		return local.Clone()
	}

	base := local
	switch {
	case remote.CompletedAt != nil && local.CompletedAt == nil:
		base = remote
	case local.CompletedAt != nil && remote.CompletedAt == nil:
		base = local
	case remote.TrueStepCount() > local.TrueStepCount():
		base = remote
	}

	merged := base.Clone()
	for _, other := range []*internal.CheckIn{local, remote} {
		for id, done := range other.StepsState {
			if done {
				merged.StepsState[id] = true
			}
		}
	}
	if merged.CompletedAt == nil {
		if remote.CompletedAt != nil {
			t := *remote.CompletedAt
			merged.CompletedAt = &t
		} else if local.CompletedAt != nil {
			t := *local.CompletedAt
			merged.CompletedAt = &t
		}
	}
	return merged
}
