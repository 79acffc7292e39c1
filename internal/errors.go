package internal

import "errors"

// Sentinel errors shared across storage backends and the check-in store.
var (
	// ErrNotFound means no record exists for the requested key. Callers treat
	// it as "no check-in yet", not as a failure.
	ErrNotFound = errors.New("record not found")

	// ErrLocalStoreUnavailable is fatal for the session's plan view; callers
	// fall back to regenerating from raw inputs or re-routing to the form.
	ErrLocalStoreUnavailable = errors.New("local store unavailable")
)

// AppError is the error body carried inside API responses.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
