package reservations

import "errors"

var (
	ErrNotFound          = errors.New("reservation not found")
	ErrValidation        = errors.New("validation error")
	ErrNotAvailable      = errors.New("slot not available")
	ErrConflict          = errors.New("reservation id conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
)
