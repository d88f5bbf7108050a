package reservations

import (
	"context"
	"time"

	"tablebook/internal/domain"
)

// ReservationRepository defines the persistence operations the manager needs.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	GetByOwner(ctx context.Context, ownerID string) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	Update(ctx context.Context, r *domain.Reservation) error
	CountConfirmed(ctx context.Context, dayStart, dayEnd time.Time, slot string) (int64, error)
}

// StatusNotifier pushes status transitions to the owner's connected devices.
type StatusNotifier interface {
	NotifyStatusChanged(ownerID string, r *domain.Reservation)
}
