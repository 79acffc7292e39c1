package internal

import "time"

// Severity is the self-reported hangover level. The set is closed; anything
// else is a caller bug.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityNone, SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Rank orders severities by intensity (none < mild < moderate < severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityMild:
		return 1
	case SeverityModerate:
		return 2
	case SeveritySevere:
		return 3
	}
	return 0
}

type Symptom string

const (
	SymptomHeadache   Symptom = "headache"
	SymptomNausea     Symptom = "nausea"
	SymptomDryMouth   Symptom = "dryMouth"
	SymptomDizziness  Symptom = "dizziness"
	SymptomFatigue    Symptom = "fatigue"
	SymptomAnxiety    Symptom = "anxiety"
	SymptomBrainFog   Symptom = "brainFog"
	SymptomPoorSleep  Symptom = "poorSleep"
	SymptomNoSymptoms Symptom = "noSymptoms"
)

// symptomOrder is the canonical vocabulary order used when normalizing a set.
var symptomOrder = []Symptom{
	SymptomHeadache,
	SymptomNausea,
	SymptomDryMouth,
	SymptomDizziness,
	SymptomFatigue,
	SymptomAnxiety,
	SymptomBrainFog,
	SymptomPoorSleep,
	SymptomNoSymptoms,
}

type SymptomSet []Symptom

func (set SymptomSet) Has(s Symptom) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Normalize drops unknown tags, deduplicates, and orders the set by the
// canonical vocabulary so equal inputs always serialize identically.
func (set SymptomSet) Normalize() SymptomSet {
	out := make(SymptomSet, 0, len(set))
	for _, s := range symptomOrder {
		if set.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// Count returns the number of real symptom tags, excluding noSymptoms.
func (set SymptomSet) Count() int {
	n := 0
	for _, s := range set {
		if s != SymptomNoSymptoms {
			n++
		}
	}
	return n
}

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Midday    TimeOfDay = "midday"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// RecoveryStep is one timed action in the day's plan. ID is stable across
// regenerations of the same logical step; completion state is keyed by it.
type RecoveryStep struct {
	ID              string    `json:"id"`
	TimeOfDay       TimeOfDay `json:"time_of_day"`
	DisplayTime     string    `json:"display_time"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Icon            string    `json:"icon"`
	Completed       bool      `json:"completed"`
}

// MicroAction is the single very-low-friction first action shown before the
// full step list.
type MicroAction struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Seconds int    `json:"seconds"`
}

// RecoveryWindow is the estimated hours-until-recovered closed interval.
type RecoveryWindow struct {
	MinHours int `json:"min_hours"`
	MaxHours int `json:"max_hours"`
}

// RecoveryPlan is derived from the check-in inputs and immutable once stored
// for a day. Labels are stored alongside the steps so historical records stay
// correct if label text changes in a later release.
type RecoveryPlan struct {
	RecoveryWindow      RecoveryWindow `json:"recovery_window"`
	HydrationGoalLiters float64        `json:"hydration_goal_liters"`
	MicroAction         MicroAction    `json:"micro_action"`
	Steps               []RecoveryStep `json:"steps"`
	SymptomLabels       []string       `json:"symptom_labels"`
	LevelLabel          string         `json:"level_label"`
}

// CheckIn is the aggregate root: one record per (user, calendar day). The ID
// is the day id (YYYY-MM-DD in the user's timezone), which is what enforces
// at-most-one-per-day. GeneratedPlan is set once at creation and never
// replaced; StepsState and CompletedAt are the only mutable fields after that.
type CheckIn struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Level          Severity        `json:"level"`
	Symptoms       SymptomSet      `json:"symptoms"`
	DrankLastNight *bool           `json:"drank_last_night,omitempty"`
	DrinkingToday  *bool           `json:"drinking_today,omitempty"`
	GeneratedPlan  *RecoveryPlan   `json:"generated_plan"`
	StepsState     map[string]bool `json:"steps_state"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TrueStepCount counts steps currently marked done. Used by the
// most-progress-wins reconciliation rule.
func (c *CheckIn) TrueStepCount() int {
	n := 0
	for _, done := range c.StepsState {
		if done {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so local writes can be a single atomic record
// replace rather than a field-by-field patch.
func (c *CheckIn) Clone() *CheckIn {
	out := *c
	out.Symptoms = append(SymptomSet(nil), c.Symptoms...)
	if c.DrankLastNight != nil {
		v := *c.DrankLastNight
		out.DrankLastNight = &v
	}
	if c.DrinkingToday != nil {
		v := *c.DrinkingToday
		out.DrinkingToday = &v
	}
	if c.GeneratedPlan != nil {
		p := *c.GeneratedPlan
		p.Steps = append([]RecoveryStep(nil), c.GeneratedPlan.Steps...)
		p.SymptomLabels = append([]string(nil), c.GeneratedPlan.SymptomLabels...)
		out.GeneratedPlan = &p
	}
	out.StepsState = make(map[string]bool, len(c.StepsState))
	for k, v := range c.StepsState {
		out.StepsState[k] = v
	}
	if c.CompletedAt != nil {
		t := *c.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}

type AccessTier string

const (
	TierFree    AccessTier = "free"
	TierWelcome AccessTier = "welcome"
	TierPremium AccessTier = "premium"
)

// AccessStatus is derived, never stored. Persisting it would risk going stale
// relative to subscription state.
type AccessStatus struct {
	Tier          AccessTier `json:"tier"`
	HasFullAccess bool       `json:"has_full_access"`
}

// User is supplied by the identity collaborator; the core never manages auth
// state itself.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FirstSeenAt time.Time `json:"first_seen_at"`
}

// Subscription is the per-user purchase state mirrored from the
// purchase-management collaborator. Only Active feeds the entitlement engine.
type Subscription struct {
	UserID               string     `json:"user_id"`
	Active               bool       `json:"active"`
	StripeCustomerID     string     `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string     `json:"stripe_subscription_id,omitempty"`
	UpdatedAt            time.Time  `json:"updated_at"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end,omitempty"`
}

// DayID formats t as the calendar-day key in the given location.
func DayID(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
