package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCanceled  ReservationStatus = "canceled"
)

// CanTransitionTo reports whether the status machine allows moving to next.
// canceled is terminal; canceled→canceled is allowed so that cancel stays
// idempotent for the caller.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCanceled
	case ReservationConfirmed:
		return next == ReservationCanceled
	case ReservationCanceled:
		return next == ReservationCanceled
	}
	return false
}

// Reservation is one booking record. Date carries an absolute instant but
// business logic only reasons about its calendar day; Time is one of the
// enumerated half-hour slots. Occasion and SpecialRequests are nil when
// absent — an empty string submitted by the caller is normalized to nil so
// "never set" and "cleared" compare equal.
type Reservation struct {
	ID              string            `json:"id"`
	OwnerID         string            `json:"ownerId"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Date            time.Time         `json:"date"`
	Time            string            `json:"time"`
	Guests          int               `json:"guests"`
	Occasion        *string           `json:"occasion,omitempty"`
	SpecialRequests *string           `json:"specialRequests,omitempty"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// TimeSlots is the fixed set of bookable half-hour slots. Values are
// zero-padded HH:MM so lexicographic order matches chronological order.
var TimeSlots = []string{
	"11:30", "12:00", "12:30", "13:00", "13:30", "14:00",
	"18:00", "18:30", "19:00", "19:30", "20:00", "20:30", "21:00",
}

// IsValidTimeSlot reports whether slot is one of TimeSlots.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotCapacity is the maximum number of confirmed reservations allowed per
// calendar-day/slot pair.
const SlotCapacity = 5
