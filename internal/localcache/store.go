// Package localcache is the device-local durable store: a small sqlite file
// holding two independently keyed JSON lists (saved addresses, favorite menu
// items). It has its own lifecycle and never touches the network, so it keeps
// working offline and for unauthenticated sessions.
package localcache

import (
	"encoding/json"
	"errors"
	"time"

	"tablebook/internal/domain"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	_ "modernc.org/sqlite"
)

const (
	savedAddressesKey    = "saved_addresses"
	favoriteMenuItemsKey = "favorite_menu_items"
)

type entryModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (entryModel) TableName() string { return "local_cache" }

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the cache file at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        path,
		}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&entryModel{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) get(key string, out any) error {
	var m entryModel
	tx := s.db.First(&m, "key = ?", key)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil
		}
		return tx.Error
	}
	return json.Unmarshal(m.Value, out)
}

func (s *Store) put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m := entryModel{Key: key, Value: raw, UpdatedAt: time.Now()}
	return s.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&m).Error
}

// SavedAddresses returns the cached address list; empty when never written.
func (s *Store) SavedAddresses() ([]domain.LocalAddress, error) {
	var addrs []domain.LocalAddress
	if err := s.get(savedAddressesKey, &addrs); err != nil {
		return nil, err
	}
	return addrs, nil
}

// SaveAddress inserts or replaces the cached copy of addr, matched by id.
func (s *Store) SaveAddress(addr domain.Resource, isFavorite bool) error {
	addrs, err := s.SavedAddresses()
	if err != nil {
		return err
	}

	local := domain.LocalAddress{Resource: addr, IsFavorite: isFavorite}
	replaced := false
	for i := range addrs {
		if addrs[i].ID == addr.ID {
			addrs[i] = local
			replaced = true
			break
		}
	}
	if !replaced {
		addrs = append(addrs, local)
	}
	return s.put(savedAddressesKey, addrs)
}

func (s *Store) RemoveAddress(id string) error {
	addrs, err := s.SavedAddresses()
	if err != nil {
		return err
	}

	kept := addrs[:0]
	for _, a := range addrs {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return s.put(savedAddressesKey, kept)
}

// MarkAddressFavorite flips the local-only favorite flag. Unknown ids are a
// no-op, matching the list-map behavior of the cache it replaces.
func (s *Store) MarkAddressFavorite(id string, isFavorite bool) error {
	addrs, err := s.SavedAddresses()
	if err != nil {
		return err
	}
	for i := range addrs {
		if addrs[i].ID == id {
			addrs[i].IsFavorite = isFavorite
		}
	}
	return s.put(savedAddressesKey, addrs)
}

// FavoriteMenuItems returns the cached favorites; empty when never written.
func (s *Store) FavoriteMenuItems() ([]domain.LocalFavoriteMenuItem, error) {
	var items []domain.LocalFavoriteMenuItem
	if err := s.get(favoriteMenuItemsKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddFavoriteMenuItem appends item unless it is already favorited.
func (s *Store) AddFavoriteMenuItem(item domain.MenuItem) error {
	items, err := s.FavoriteMenuItems()
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ItemID == item.ID {
			return nil
		}
	}

	items = append(items, domain.LocalFavoriteMenuItem{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Image:    item.Image,
		Category: item.Category,
		Course:   item.Course,
		AddedAt:  time.Now(),
	})
	return s.put(favoriteMenuItemsKey, items)
}

func (s *Store) RemoveFavoriteMenuItem(itemID string) error {
	items, err := s.FavoriteMenuItems()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	return s.put(favoriteMenuItemsKey, kept)
}

func (s *Store) IsMenuItemFavorite(itemID string) (bool, error) {
	items, err := s.FavoriteMenuItems()
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}
