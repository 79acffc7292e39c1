// Package checkin manages the lifecycle of exactly one check-in record per
// (user, calendar day): local-first creation, step completion, explicit plan
// completion, and reconciliation against the remote mirror.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/notify"
	"github.com/victorsuarez3/hangovershield-sub001/internal/plan"
	"github.com/victorsuarez3/hangovershield-sub001/internal/storage"
)

const mirrorTimeout = 10 * time.Second

// Input carries the raw check-in form values.
type Input struct {
	Level          internal.Severity
	Symptoms       internal.SymptomSet
	DrankLastNight *bool
	DrinkingToday  *bool
}

type Store struct {
	local    *LocalCache
	remote   storage.CheckInRepository // nil in local-only mode
	notifier notify.Scheduler
	logger   internal.Logger
	now      func() time.Time
}

func NewStore(local *LocalCache, remote storage.CheckInRepository, notifier notify.Scheduler, logger internal.Logger) *Store {
	return &Store{
		local:    local,
		remote:   remote,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// GetOrCreateToday returns today's record, creating it on first call of the
// day. Creation is idempotent by construction: the day id is the key, so N
// calls with varying input still yield one record, and the first generated
// plan is reused verbatim for the rest of the day.
func (s *Store) GetOrCreateToday(ctx context.Context, user *internal.User, input Input, loc *time.Location) (*internal.CheckIn, error) {
	dayID := internal.DayID(s.now(), loc)

	remote := s.fetchRemote(ctx, user.ID, dayID)
	if remote != nil && remote.CompletedAt != nil {
		// A finished plan from another device beats any local draft.
		_ = s.local.Put(remote)
		return remote.Clone(), nil
	}

	local, err := s.local.Get(user.ID, dayID)
	switch {
	case err == nil:
		if remote != nil {
			merged := Reconcile(local, remote)
			_ = s.local.Put(merged)
			s.mirror(merged)
			return merged, nil
		}
		return local, nil
	case !errors.Is(err, internal.ErrNotFound):
		return nil, internal.ErrLocalStoreUnavailable
	}

	if remote != nil {
		// In-progress record from another session; adopt it instead of
		// generating a second plan for the day.
		_ = s.local.Put(remote)
		return remote.Clone(), nil
	}

	return s.create(ctx, user, input, dayID)
}

func (s *Store) create(ctx context.Context, user *internal.User, input Input, dayID string) (*internal.CheckIn, error) {
	generated, err := plan.Generate(input.Level, input.Symptoms, input.DrankLastNight, input.DrinkingToday)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec := &internal.CheckIn{
		ID:             dayID,
		UserID:         user.ID,
		Level:          input.Level,
		Symptoms:       input.Symptoms.Normalize(),
		DrankLastNight: input.DrankLastNight,
		DrinkingToday:  input.DrinkingToday,
		GeneratedPlan:  generated,
		StepsState:     make(map[string]bool, len(generated.Steps)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.local.Put(rec); err != nil {
		return nil, internal.ErrLocalStoreUnavailable
	}
	s.mirror(rec)
	s.notifier.PlanCreated(ctx, user.ID, dayID, generated)
	return rec.Clone(), nil
}

// GetToday reads today's record without creating one. Read precedence:
// a complete remote record, else the local record, else ErrNotFound.
func (s *Store) GetToday(ctx context.Context, userID string, loc *time.Location) (*internal.CheckIn, error) {
	dayID := internal.DayID(s.now(), loc)

	remote := s.fetchRemote(ctx, userID, dayID)
	if remote != nil && remote.CompletedAt != nil {
		_ = s.local.Put(remote)
		return remote.Clone(), nil
	}

	local, err := s.local.Get(userID, dayID)
	if err == nil {
		if remote != nil {
			merged := Reconcile(local, remote)
			_ = s.local.Put(merged)
			return merged, nil
		}
		return local, nil
	}
	if !errors.Is(err, internal.ErrNotFound) {
		return nil, internal.ErrLocalStoreUnavailable
	}
	if remote != nil {
		_ = s.local.Put(remote)
		return remote.Clone(), nil
	}
	return nil, internal.ErrNotFound
}

// SetStepCompletion writes a step toggle through the local cache
// synchronously and mirrors it remotely best-effort. Setting the same value
// twice is a no-op at the data level.
func (s *Store) SetStepCompletion(ctx context.Context, userID, dayID, stepID string, completed bool) (*internal.CheckIn, error) {
	rec, err := s.get(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}
	if !stepExists(rec, stepID) {
		return nil, fmt.Errorf("checkin: unknown step %q for day %s: %w", stepID, dayID, internal.ErrNotFound)
	}

	updated := rec.Clone()
	updated.StepsState[stepID] = completed
	updated.UpdatedAt = s.now()
	if err := s.local.Put(updated); err != nil {
		return nil, internal.ErrLocalStoreUnavailable
	}
	s.mirror(updated)
	return updated, nil
}

// MarkPlanCompleted sets CompletedAt once; the transition is append-only and
// is an explicit user action distinct from all steps being toggled true.
func (s *Store) MarkPlanCompleted(ctx context.Context, userID, dayID string, stepsCompleted, totalSteps int) (*internal.CheckIn, error) {
	rec, err := s.get(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}
	if rec.CompletedAt != nil {
		return rec, nil
	}

	updated := rec.Clone()
	now := s.now()
	updated.CompletedAt = &now
	updated.UpdatedAt = now
	if err := s.local.Put(updated); err != nil {
		return nil, internal.ErrLocalStoreUnavailable
	}
	s.mirror(updated)
	s.logger.Infof("checkin: plan completed user=%s day=%s steps=%d/%d", userID, dayID, stepsCompleted, totalSteps)
	return updated, nil
}

// History lists a user's past records, newest first, merging local and
// remote copies per day.
func (s *Store) History(ctx context.Context, userID string) ([]internal.CheckIn, error) {
	byDay := make(map[string]*internal.CheckIn)
	for _, rec := range s.local.List(userID) {
		r := rec
		byDay[rec.ID] = &r
	}

	if s.remote != nil {
		remote, err := s.remote.ListCheckIns(ctx, userID)
		if err != nil {
			s.logger.Warnf("checkin: remote history unavailable for %s: %v", userID, err)
		} else {
			for _, rec := range remote {
				r := rec
				byDay[rec.ID] = Reconcile(byDay[rec.ID], &r)
			}
		}
	}

	out := make([]internal.CheckIn, 0, len(byDay))
	for _, rec := range byDay {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Close flushes the local cache.
func (s *Store) Close() error {
	return s.local.Close()
}

// get loads a record for mutation: local first, remote adopt as fallback.
func (s *Store) get(ctx context.Context, userID, dayID string) (*internal.CheckIn, error) {
	rec, err := s.local.Get(userID, dayID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, internal.ErrNotFound) {
		return nil, internal.ErrLocalStoreUnavailable
	}
	if remote := s.fetchRemote(ctx, userID, dayID); remote != nil {
		_ = s.local.Put(remote)
		return remote.Clone(), nil
	}
	return nil, internal.ErrNotFound
}

// fetchRemote returns the remote record or nil; remote unavailability never
// blocks the caller.
func (s *Store) fetchRemote(ctx context.Context, userID, dayID string) *internal.CheckIn {
	if s.remote == nil {
		return nil
	}
	rec, err := s.remote.GetCheckIn(ctx, userID, dayID)
	if err != nil {
		if !errors.Is(err, internal.ErrNotFound) {
			s.logger.Warnf("checkin: remote read failed for %s/%s: %v", userID, dayID, err)
		}
		return nil
	}
	return rec
}

// mirror dispatches an async best-effort remote write. Failures are logged
// and swallowed; the local record is the source of truth for this session.
// The write runs on a detached context so an abandoned request cannot tear
// it mid-flight.
func (s *Store) mirror(rec *internal.CheckIn) {
	if s.remote == nil {
		return
	}
	snapshot := rec.Clone()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := s.remote.PutCheckIn(ctx, snapshot); err != nil {
			s.logger.Warnf("checkin: remote mirror failed for %s/%s: %v", snapshot.UserID, snapshot.ID, err)
		}
	}()
}

func stepExists(rec *internal.CheckIn, stepID string) bool {
	if rec.GeneratedPlan == nil {
		return false
	}
	for _, step := range rec.GeneratedPlan.Steps {
		if step.ID == stepID {
			return true
		}
	}
	return false
}
