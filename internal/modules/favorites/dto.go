package favorites

import "tablebook/internal/domain"

// MergedMenuItem is one row of the unified favorites view. Remote entries
// carry their synthetic FavoriteID; local-only entries don't have one.
type MergedMenuItem struct {
	ItemID     string  `json:"itemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image,omitempty"`
	Category   string  `json:"category,omitempty"`
	Course     string  `json:"course,omitempty"`
	FavoriteID string  `json:"favoriteId,omitempty"`
	Source     string  `json:"source"`
}

type AddRestaurantRequest struct {
	ID      string  `json:"id" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Cuisine string  `json:"cuisine"`
	Rating  float64 `json:"rating"`
	Image   string  `json:"image"`
}

type AddMenuItemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

type MarkAddressFavoriteRequest struct {
	IsFavorite bool `json:"isFavorite"`
}

// SaveAddressRequest caches an address on the device. ID is optional: a
// remote address keeps its id so the merge can match the two copies, a
// device-only address gets a fresh one.
type SaveAddressRequest struct {
	ID         string                `json:"id"`
	Address    *domain.AddressFields `json:"address" binding:"required"`
	IsDefault  bool                  `json:"isDefault"`
	IsFavorite bool                  `json:"isFavorite"`
}
