package reservations

import "time"

type CreateReservationRequest struct {
	Name            string    `json:"name" binding:"required"`
	Email           string    `json:"email" binding:"required,email"`
	Phone           string    `json:"phone" binding:"required"`
	Date            time.Time `json:"date" binding:"required"`
	Time            string    `json:"time" binding:"required"`
	Guests          int       `json:"guests" binding:"required,gt=0"`
	Occasion        string    `json:"occasion"`
	SpecialRequests string    `json:"specialRequests"`
}

// UpdateReservationRequest edits reservation fields. nil leaves a field
// untouched; a present empty string clears an optional field (stored as
// absent, not as ""). Status is not editable here — it only moves through
// the confirm/cancel transitions.
type UpdateReservationRequest struct {
	Name            *string    `json:"name,omitempty"`
	Email           *string    `json:"email,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	Time            *string    `json:"time,omitempty"`
	Guests          *int       `json:"guests,omitempty"`
	Occasion        *string    `json:"occasion,omitempty"`
	SpecialRequests *string    `json:"specialRequests,omitempty"`
}
