package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/checkin"
)

var validate = validator.New()

// CheckInRequest is the daily self-report form.
type CheckInRequest struct {
	Level          string   `json:"level" validate:"required,oneof=none mild moderate severe"`
	Symptoms       []string `json:"symptoms" validate:"omitempty,dive,required"`
	DrankLastNight *bool    `json:"drank_last_night,omitempty"`
	DrinkingToday  *bool    `json:"drinking_today,omitempty"`
}

// ValidateCheckInRequest enforces the closed severity enum and the input-layer
// rule that noSymptoms excludes every other tag. Unknown symptom tags pass
// here; the rule engine ignores them.
func ValidateCheckInRequest(req *CheckInRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	set := toSymptomSet(req.Symptoms)
	if set.Has(internal.SymptomNoSymptoms) && len(req.Symptoms) > 1 {
		return errors.New("noSymptoms cannot be combined with other symptoms")
	}
	return nil
}

// Input converts the request into the store's input shape.
func (r *CheckInRequest) Input() checkin.Input {
	return checkin.Input{
		Level:          internal.Severity(r.Level),
		Symptoms:       toSymptomSet(r.Symptoms),
		DrankLastNight: r.DrankLastNight,
		DrinkingToday:  r.DrinkingToday,
	}
}

func toSymptomSet(raw []string) internal.SymptomSet {
	set := make(internal.SymptomSet, 0, len(raw))
	for _, s := range raw {
		set = append(set, internal.Symptom(s))
	}
	return set
}

// StepToggleRequest flips one step's completion state.
type StepToggleRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

func ValidateStepToggleRequest(req *StepToggleRequest) error {
	return validate.Struct(req)
}

// CompletePlanRequest is the explicit "I'm done for today" action. The counts
// are informational; completion is allowed with steps still outstanding.
type CompletePlanRequest struct {
	StepsCompleted int `json:"steps_completed" validate:"gte=0"`
	TotalSteps     int `json:"total_steps" validate:"gte=0"`
}

func ValidateCompletePlanRequest(req *CompletePlanRequest) error {
	return validate.Struct(req)
}

// CheckoutRequest starts a subscription purchase.
type CheckoutRequest struct {
	SuccessURL string `json:"success_url" validate:"required,url"`
	CancelURL  string `json:"cancel_url" validate:"required,url"`
}

func ValidateCheckoutRequest(req *CheckoutRequest) error {
	return validate.Struct(req)
}
