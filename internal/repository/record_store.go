package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordStore is the aggregate-record adapter: one opaque document per
// (owner, kind), read and replaced as a whole. There is no per-item access
// and no version check — a Put overwrites whatever is stored, which is the
// lost-update behavior the services above it are written against.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

type recordModel struct {
	OwnerID   string    `gorm:"column:owner_id;primaryKey"`
	Kind      string    `gorm:"column:kind;primaryKey"`
	Doc       []byte    `gorm:"column:doc"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (recordModel) TableName() string { return "records" }

// Get returns the stored document. ok is false when no record exists for
// the key; that is not an error — collections are created lazily.
func (s *RecordStore) Get(ctx context.Context, ownerID, kind string) ([]byte, bool, error) {
	var m recordModel
	tx := s.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ?", ownerID, kind).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, tx.Error
	}
	return m.Doc, true, nil
}

// Put replaces the whole document for the key, creating it if absent.
func (s *RecordStore) Put(ctx context.Context, ownerID, kind string, doc []byte) error {
	m := recordModel{
		OwnerID:   ownerID,
		Kind:      kind,
		Doc:       doc,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "kind"}},
			UpdateAll: true,
		}).
		Create(&m).Error
}

// Migrate creates the records table.
func (s *RecordStore) Migrate() error {
	return s.db.AutoMigrate(&recordModel{})
}
