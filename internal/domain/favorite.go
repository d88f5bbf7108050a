package domain

import "time"

// FavoriteRestaurant is a denormalized restaurant reference kept inside an
// owner's favorites document.
type FavoriteRestaurant struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Cuisine string  `json:"cuisine"`
	Rating  float64 `json:"rating"`
	Image   string  `json:"image,omitempty"`
}

// FavoriteMenuItem is a favorited catalog item. FavoriteID is synthetic and
// distinct from the catalog item id, so the same item can be favorited again
// under a fresh entry.
type FavoriteMenuItem struct {
	FavoriteID string  `json:"favoriteId"`
	ItemID     string  `json:"itemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image,omitempty"`
	Category   string  `json:"category,omitempty"`
	Course     string  `json:"course,omitempty"`
}

// FavoriteSet is the aggregate favorites record stored per owner.
type FavoriteSet struct {
	OwnerID     string               `json:"ownerId"`
	Restaurants []FavoriteRestaurant `json:"restaurants"`
	MenuItems   []FavoriteMenuItem   `json:"menuItems"`
}

// LocalAddress is an address as the device-local cache stores it: the remote
// resource fields plus a local-only favorite flag, independent of IsDefault.
type LocalAddress struct {
	Resource
	IsFavorite bool `json:"isFavorite"`
}

// LocalFavoriteMenuItem is the device-local favorites entry. It is keyed by
// the catalog item id; no shared id space with remote FavoriteMenuItem is
// guaranteed beyond that.
type LocalFavoriteMenuItem struct {
	ItemID   string    `json:"itemId"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Image    string    `json:"image,omitempty"`
	Category string    `json:"category,omitempty"`
	Course   string    `json:"course,omitempty"`
	AddedAt  time.Time `json:"addedAt"`
}
