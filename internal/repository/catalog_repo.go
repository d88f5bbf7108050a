package repository

import (
	"context"
	"errors"

	"tablebook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository serves the canonical MenuItem/Restaurant records that
// favorites reference by id. Writes happen only through cmd/seed.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	tx := r.db.WithContext(ctx).First(&item, "id = ?", id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &item, nil
}

func (r *CatalogRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	tx := r.db.WithContext(ctx).First(&rest, "id = ?", id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &rest, nil
}

func (r *CatalogRepository) UpsertMenuItems(ctx context.Context, items []domain.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&items).Error
}

func (r *CatalogRepository) UpsertRestaurants(ctx context.Context, restaurants []domain.Restaurant) error {
	if len(restaurants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&restaurants).Error
}

// Migrate creates the catalog tables.
func (r *CatalogRepository) Migrate() error {
	return r.db.AutoMigrate(&domain.MenuItem{}, &domain.Restaurant{})
}
