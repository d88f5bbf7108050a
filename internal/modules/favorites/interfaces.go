package favorites

import (
	"context"

	"tablebook/internal/domain"
)

// RecordStore is the remote aggregate-record dependency holding one
// favorites document per owner.
type RecordStore interface {
	Get(ctx context.Context, ownerID, kind string) ([]byte, bool, error)
	Put(ctx context.Context, ownerID, kind string, doc []byte) error
}

// LocalStore is the device-local cache. It has no network dependency, so its
// calls take no context.
type LocalStore interface {
	SavedAddresses() ([]domain.LocalAddress, error)
	SaveAddress(addr domain.Resource, isFavorite bool) error
	RemoveAddress(id string) error
	MarkAddressFavorite(id string, isFavorite bool) error

	FavoriteMenuItems() ([]domain.LocalFavoriteMenuItem, error)
	AddFavoriteMenuItem(item domain.MenuItem) error
	RemoveFavoriteMenuItem(itemID string) error
	IsMenuItemFavorite(itemID string) (bool, error)
}

// Catalog resolves canonical menu items referenced by id.
type Catalog interface {
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
}
