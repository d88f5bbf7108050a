package reservations

import (
	"context"
	"errors"
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/repository"

	"github.com/google/uuid"
)

// Service runs the booking state machine: pending→confirmed,
// pending→canceled, confirmed→canceled, with canceled terminal and cancel
// idempotent. The capacity check and the status transition are separate
// statements — two concurrent callers can both pass the check, which the
// reference behavior tolerates.
type Service struct {
	repo   ReservationRepository
	notifs StatusNotifier
}

func NewService(repo ReservationRepository, notifs StatusNotifier) *Service {
	return &Service{repo: repo, notifs: notifs}
}

// optional maps the wire value to storage: "" means absent and is kept as
// nil so "never set" and "cleared" compare equal later.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create validates and stores a new reservation. Status is always pending;
// there is no way to create one directly confirmed or canceled.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateReservationRequest) (string, error) {
	if !domain.IsValidTimeSlot(req.Time) {
		return "", ErrValidation
	}
	if req.Guests < 1 {
		return "", ErrValidation
	}

	now := time.Now()
	r := &domain.Reservation{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		Occasion:        optional(req.Occasion),
		SpecialRequests: optional(req.SpecialRequests),
		Status:          domain.ReservationPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return "", ErrConflict
		}
		return "", err
	}
	return r.ID, nil
}

// CheckAvailability reports whether the calendar day of date still has room
// in the given slot: fewer than SlotCapacity confirmed reservations. Pending
// and canceled reservations do not count.
func (s *Service) CheckAvailability(ctx context.Context, date time.Time, slot string) (bool, error) {
	if !domain.IsValidTimeSlot(slot) {
		return false, ErrValidation
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	count, err := s.repo.CountConfirmed(ctx, dayStart, dayEnd, slot)
	if err != nil {
		return false, err
	}
	return count < domain.SlotCapacity, nil
}

func (s *Service) getOwned(ctx context.Context, ownerID, id string) (*domain.Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if r.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return r, nil
}

// Confirm moves a pending reservation to confirmed after re-checking the
// slot. The re-check is advisory only — it is not atomic with the
// transition, so over-booking under concurrency remains possible.
func (s *Service) Confirm(ctx context.Context, ownerID, id string) error {
	r, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !r.Status.CanTransitionTo(domain.ReservationConfirmed) {
		return ErrInvalidTransition
	}

	ok, err := s.CheckAvailability(ctx, r.Date, r.Time)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAvailable
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.ReservationConfirmed); err != nil {
		return err
	}
	r.Status = domain.ReservationConfirmed
	if s.notifs != nil {
		s.notifs.NotifyStatusChanged(ownerID, r)
	}
	return nil
}

// Cancel moves the reservation to canceled. Canceling an already-canceled
// reservation is a no-op success; the record is never deleted.
func (s *Service) Cancel(ctx context.Context, ownerID, id string) error {
	r, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !r.Status.CanTransitionTo(domain.ReservationCanceled) {
		return ErrInvalidTransition
	}
	alreadyCanceled := r.Status == domain.ReservationCanceled

	if err := s.repo.UpdateStatus(ctx, id, domain.ReservationCanceled); err != nil {
		return err
	}
	if !alreadyCanceled && s.notifs != nil {
		r.Status = domain.ReservationCanceled
		s.notifs.NotifyStatusChanged(ownerID, r)
	}
	return nil
}

// Update edits reservation fields; status and timestamps are not
// caller-settable.
func (s *Service) Update(ctx context.Context, ownerID, id string, req UpdateReservationRequest) error {
	r, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if req.Time != nil {
		if !domain.IsValidTimeSlot(*req.Time) {
			return ErrValidation
		}
		r.Time = *req.Time
	}
	if req.Guests != nil {
		if *req.Guests < 1 {
			return ErrValidation
		}
		r.Guests = *req.Guests
	}
	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Email != nil {
		r.Email = *req.Email
	}
	if req.Phone != nil {
		r.Phone = *req.Phone
	}
	if req.Date != nil {
		r.Date = *req.Date
	}
	if req.Occasion != nil {
		r.Occasion = optional(*req.Occasion)
	}
	if req.SpecialRequests != nil {
		r.SpecialRequests = optional(*req.SpecialRequests)
	}

	return s.repo.Update(ctx, r)
}

// GetByOwner lists the owner's reservations, newest date first.
func (s *Service) GetByOwner(ctx context.Context, ownerID string) ([]domain.Reservation, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *Service) GetByID(ctx context.Context, ownerID, id string) (*domain.Reservation, error) {
	return s.getOwned(ctx, ownerID, id)
}
