package repository

import (
	"context"
	"errors"
	"time"

	"tablebook/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	OwnerID         string    `gorm:"column:owner_id;index"`
	Name            string    `gorm:"column:name"`
	Email           string    `gorm:"column:email"`
	Phone           string    `gorm:"column:phone"`
	Date            time.Time `gorm:"column:date;index"`
	TimeSlot        string    `gorm:"column:time_slot"`
	Guests          int       `gorm:"column:guests"`
	Occasion        *string   `gorm:"column:occasion"`
	SpecialRequests *string   `gorm:"column:special_requests"`
	Status          string    `gorm:"column:status;index"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	return &domain.Reservation{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		Date:            m.Date,
		Time:            m.TimeSlot,
		Guests:          m.Guests,
		Occasion:        m.Occasion,
		SpecialRequests: m.SpecialRequests,
		Status:          domain.ReservationStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	return reservationModel{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Date:            r.Date,
		TimeSlot:        r.Time,
		Guests:          r.Guests,
		Occasion:        r.Occasion,
		SpecialRequests: r.SpecialRequests,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateID
		}
		var pgErr *pgconn.PgError
		if errors.As(tx.Error, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateID
		}
		return tx.Error
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

// GetByOwner returns the owner's reservations, date descending with the
// slot as tie-break. Slots are zero-padded HH:MM, so string order is
// chronological order.
func (r *ReservationRepository) GetByOwner(ctx context.Context, ownerID string) ([]domain.Reservation, error) {
	var models []reservationModel
	tx := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date DESC, time_slot DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Update persists edited fields. Status and CreatedAt are deliberately not
// touched here; status moves only through UpdateStatus.
func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"name":             m.Name,
			"email":            m.Email,
			"phone":            m.Phone,
			"date":             m.Date,
			"time_slot":        m.TimeSlot,
			"guests":           m.Guests,
			"occasion":         m.Occasion,
			"special_requests": m.SpecialRequests,
			"updated_at":       time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountConfirmed counts confirmed reservations with a date inside
// [dayStart, dayEnd) holding the given slot. Pending and canceled rows do
// not count against capacity.
func (r *ReservationRepository) CountConfirmed(ctx context.Context, dayStart, dayEnd time.Time, slot string) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("date >= ? AND date < ? AND time_slot = ? AND status = ?",
			dayStart, dayEnd, slot, string(domain.ReservationConfirmed)).
		Count(&count)
	return count, tx.Error
}

// Migrate creates the reservations table.
func (r *ReservationRepository) Migrate() error {
	return r.db.AutoMigrate(&reservationModel{})
}
