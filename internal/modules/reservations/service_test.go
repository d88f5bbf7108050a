package reservations

import (
	"context"
	"testing"
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByOwner(ctx context.Context, ownerID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) CountConfirmed(ctx context.Context, dayStart, dayEnd time.Time, slot string) (int64, error) {
	args := m.Called(ctx, dayStart, dayEnd, slot)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyStatusChanged(ownerID string, r *domain.Reservation) {
	m.Called(ownerID, r)
}

func validCreateReq() CreateReservationRequest {
	return CreateReservationRequest{
		Name:   "Dana Ivanova",
		Email:  "dana@example.com",
		Phone:  "+77010000000",
		Date:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Time:   "19:00",
		Guests: 2,
	}
}

func stored(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:      "res-1",
		OwnerID: "owner-1",
		Name:    "Dana Ivanova",
		Date:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Time:    "19:00",
		Guests:  2,
		Status:  status,
	}
}

func TestCreateAlwaysPending(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Status == domain.ReservationPending &&
			!r.CreatedAt.IsZero() && r.CreatedAt.Equal(r.UpdatedAt)
	})).Return(nil)

	id, err := svc.Create(context.Background(), "owner-1", validCreateReq())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	repo.AssertExpectations(t)
}

func TestCreateNormalizesEmptyOptionals(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	var got *domain.Reservation
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(1).(*domain.Reservation)
	}).Return(nil)

	req := validCreateReq()
	req.Occasion = ""
	req.SpecialRequests = "window seat"

	_, err := svc.Create(context.Background(), "owner-1", req)
	require.NoError(t, err)
	assert.Nil(t, got.Occasion, "empty string is stored as absent")
	require.NotNil(t, got.SpecialRequests)
	assert.Equal(t, "window seat", *got.SpecialRequests)
}

func TestCreateRejectsUnknownSlot(t *testing.T) {
	svc := NewService(new(MockReservationRepository), nil)

	req := validCreateReq()
	req.Time = "16:15"

	_, err := svc.Create(context.Background(), "owner-1", req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRejectsNonPositiveGuests(t *testing.T) {
	svc := NewService(new(MockReservationRepository), nil)

	req := validCreateReq()
	req.Guests = 0

	_, err := svc.Create(context.Background(), "owner-1", req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateMapsDuplicateIDToConflict(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateID)

	_, err := svc.Create(context.Background(), "owner-1", validCreateReq())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCheckAvailabilityCapacity(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	date := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dayEnd := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	repo.On("CountConfirmed", mock.Anything, dayStart, dayEnd, "19:00").Return(int64(5), nil).Once()
	available, err := svc.CheckAvailability(context.Background(), date, "19:00")
	require.NoError(t, err)
	assert.False(t, available, "five confirmed reservations fill the slot")

	repo.On("CountConfirmed", mock.Anything, dayStart, dayEnd, "19:00").Return(int64(4), nil).Once()
	available, err = svc.CheckAvailability(context.Background(), date, "19:00")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCheckAvailabilityRejectsUnknownSlot(t *testing.T) {
	svc := NewService(new(MockReservationRepository), nil)

	_, err := svc.CheckAvailability(context.Background(), time.Now(), "03:00")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConfirmPendingReservation(t *testing.T) {
	repo := new(MockReservationRepository)
	notifs := new(MockNotifier)
	svc := NewService(repo, notifs)

	repo.On("GetByID", mock.Anything, "res-1").Return(stored(domain.ReservationPending), nil)
	repo.On("CountConfirmed", mock.Anything, mock.Anything, mock.Anything, "19:00").Return(int64(0), nil)
	repo.On("UpdateStatus", mock.Anything, "res-1", domain.ReservationConfirmed).Return(nil)
	notifs.On("NotifyStatusChanged", "owner-1", mock.Anything).Return()

	err := svc.Confirm(context.Background(), "owner-1", "res-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestConfirmFullSlot(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	repo.On("GetByID", mock.Anything, "res-1").Return(stored(domain.ReservationPending), nil)
	repo.On("CountConfirmed", mock.Anything, mock.Anything, mock.Anything, "19:00").Return(int64(5), nil)

	err := svc.Confirm(context.Background(), "owner-1", "res-1")
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestConfirmCanceledReservation(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	repo.On("GetByID", mock.Anything, "res-1").Return(stored(domain.ReservationCanceled), nil)

	err := svc.Confirm(context.Background(), "owner-1", "res-1")
	assert.ErrorIs(t, err, ErrInvalidTransition, "no transition leaves canceled")
}

func TestCancelIsIdempotent(t *testing.T) {
	repo := new(MockReservationRepository)
	notifs := new(MockNotifier)
	svc := NewService(repo, notifs)

	repo.On("GetByID", mock.Anything, "res-1").Return(stored(domain.ReservationPending), nil).Once()
	repo.On("UpdateStatus", mock.Anything, "res-1", domain.ReservationCanceled).Return(nil).Twice()
	notifs.On("NotifyStatusChanged", "owner-1", mock.Anything).Return().Once()

	require.NoError(t, svc.Cancel(context.Background(), "owner-1", "res-1"))

	// second cancel: already canceled, still a success, no second notification
	repo.On("GetByID", mock.Anything, "res-1").Return(stored(domain.ReservationCanceled), nil).Once()
	require.NoError(t, svc.Cancel(context.Background(), "owner-1", "res-1"))

	repo.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestCancelConfirmedReservation(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	repo.On("GetByID", mock.Anything, "res-1").Return(stored(domain.ReservationConfirmed), nil)
	repo.On("UpdateStatus", mock.Anything, "res-1", domain.ReservationCanceled).Return(nil)

	require.NoError(t, svc.Cancel(context.Background(), "owner-1", "res-1"))
}

func TestCancelUnknownReservation(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	err := svc.Cancel(context.Background(), "owner-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDHidesOtherOwners(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	repo.On("GetByID", mock.Anything, "res-1").Return(stored(domain.ReservationPending), nil)

	_, err := svc.GetByID(context.Background(), "other-owner", "res-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateClearsOptionalWithEmptyString(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	existing := stored(domain.ReservationPending)
	occ := "Birthday"
	existing.Occasion = &occ

	repo.On("GetByID", mock.Anything, "res-1").Return(existing, nil)

	var got *domain.Reservation
	repo.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(1).(*domain.Reservation)
	}).Return(nil)

	cleared := ""
	err := svc.Update(context.Background(), "owner-1", "res-1", UpdateReservationRequest{Occasion: &cleared})
	require.NoError(t, err)
	assert.Nil(t, got.Occasion, "cleared optional is stored as absent")
}

func TestUpdateRejectsBadSlot(t *testing.T) {
	repo := new(MockReservationRepository)
	svc := NewService(repo, nil)

	repo.On("GetByID", mock.Anything, "res-1").Return(stored(domain.ReservationPending), nil)

	bad := "23:45"
	err := svc.Update(context.Background(), "owner-1", "res-1", UpdateReservationRequest{Time: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}
