package favorites

import (
	"context"
	"encoding/json"
	"log"

	"tablebook/internal/domain"
	"tablebook/internal/pkg/ids"
)

const (
	favoritesKind = "favorites"
	addressesKind = "addresses"
)

// Service is the merge layer: one read view over the remote favorites
// document (authenticated sessions only) and the device-local cache (always
// available). Merges are computed fresh on every read and never written back
// to either source; on an id collision the remote item wins.
type Service struct {
	store   RecordStore
	local   LocalStore
	catalog Catalog
}

func NewService(store RecordStore, local LocalStore, catalog Catalog) *Service {
	return &Service{store: store, local: local, catalog: catalog}
}

func (s *Service) loadSet(ctx context.Context, ownerID string) (domain.FavoriteSet, error) {
	set := domain.FavoriteSet{OwnerID: ownerID}
	raw, ok, err := s.store.Get(ctx, ownerID, favoritesKind)
	if err != nil {
		return set, err
	}
	if !ok {
		// a missing favorites record is an empty set, not an error
		return set, nil
	}
	if err := json.Unmarshal(raw, &set); err != nil {
		return set, err
	}
	return set, nil
}

func (s *Service) saveSet(ctx context.Context, set domain.FavoriteSet) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, set.OwnerID, favoritesKind, raw)
}

// Restaurants returns the remote restaurant favorites. There is no local
// container for restaurants, so anonymous sessions see an empty list.
func (s *Service) Restaurants(ctx context.Context, sess domain.Session) ([]domain.FavoriteRestaurant, error) {
	if !sess.Authenticated {
		return nil, nil
	}
	set, err := s.loadSet(ctx, sess.OwnerID)
	if err != nil {
		return nil, err
	}
	return set.Restaurants, nil
}

func (s *Service) AddRestaurant(ctx context.Context, sess domain.Session, r domain.FavoriteRestaurant) error {
	if !sess.Authenticated {
		return ErrUnavailable
	}
	set, err := s.loadSet(ctx, sess.OwnerID)
	if err != nil {
		return err
	}
	for _, have := range set.Restaurants {
		if have.ID == r.ID {
			return nil
		}
	}
	set.Restaurants = append(set.Restaurants, r)
	return s.saveSet(ctx, set)
}

func (s *Service) RemoveRestaurant(ctx context.Context, sess domain.Session, restaurantID string) error {
	if !sess.Authenticated {
		return ErrUnavailable
	}
	set, err := s.loadSet(ctx, sess.OwnerID)
	if err != nil {
		return err
	}
	kept := set.Restaurants[:0]
	for _, r := range set.Restaurants {
		if r.ID != restaurantID {
			kept = append(kept, r)
		}
	}
	set.Restaurants = kept
	return s.saveSet(ctx, set)
}

// MenuItems returns the merged favorites view: every remote entry in remote
// order, then every local entry whose catalog id is not already present,
// in local order.
func (s *Service) MenuItems(ctx context.Context, sess domain.Session) ([]MergedMenuItem, error) {
	var merged []MergedMenuItem
	seen := make(map[string]bool)

	if sess.Authenticated {
		set, err := s.loadSet(ctx, sess.OwnerID)
		if err != nil {
			return nil, err
		}
		for _, it := range set.MenuItems {
			merged = append(merged, MergedMenuItem{
				ItemID:     it.ItemID,
				Name:       it.Name,
				Price:      it.Price,
				Image:      it.Image,
				Category:   it.Category,
				Course:     it.Course,
				FavoriteID: it.FavoriteID,
				Source:     "remote",
			})
			seen[it.ItemID] = true
		}
	}

	localItems, err := s.local.FavoriteMenuItems()
	if err != nil {
		return nil, err
	}
	for _, it := range localItems {
		if seen[it.ItemID] {
			continue
		}
		merged = append(merged, MergedMenuItem{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price,
			Image:    it.Image,
			Category: it.Category,
			Course:   it.Course,
			Source:   "local",
		})
	}
	return merged, nil
}

// IsMenuItemFavorite reports merged membership for one catalog item.
func (s *Service) IsMenuItemFavorite(ctx context.Context, sess domain.Session, itemID string) (bool, error) {
	if sess.Authenticated {
		set, err := s.loadSet(ctx, sess.OwnerID)
		if err != nil {
			return false, err
		}
		for _, it := range set.MenuItems {
			if it.ItemID == itemID {
				return true, nil
			}
		}
	}
	return s.local.IsMenuItemFavorite(itemID)
}

// AddMenuItem favorites a catalog item. Authenticated sessions write the
// remote document first — a remote failure surfaces before success is
// claimed — and then update the local cache best-effort. Anonymous sessions
// write only the local cache.
func (s *Service) AddMenuItem(ctx context.Context, sess domain.Session, itemID string) error {
	item, err := s.catalog.GetMenuItem(ctx, itemID)
	if err != nil {
		return ErrNotFound
	}

	if sess.Authenticated {
		set, err := s.loadSet(ctx, sess.OwnerID)
		if err != nil {
			return err
		}
		set.MenuItems = append(set.MenuItems, domain.FavoriteMenuItem{
			FavoriteID: ids.Favorite(item.ID),
			ItemID:     item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Image:      item.Image,
			Category:   item.Category,
			Course:     item.Course,
		})
		if err := s.saveSet(ctx, set); err != nil {
			return err
		}
		if err := s.local.AddFavoriteMenuItem(*item); err != nil {
			log.Printf("favorites: local cache add failed item=%s err=%v", item.ID, err)
		}
		return nil
	}

	return s.local.AddFavoriteMenuItem(*item)
}

// RemoveMenuItem unfavorites every entry for the catalog id, remote and
// local, following the same authenticated-first write order as AddMenuItem.
func (s *Service) RemoveMenuItem(ctx context.Context, sess domain.Session, itemID string) error {
	if sess.Authenticated {
		set, err := s.loadSet(ctx, sess.OwnerID)
		if err != nil {
			return err
		}
		kept := set.MenuItems[:0]
		for _, it := range set.MenuItems {
			if it.ItemID != itemID {
				kept = append(kept, it)
			}
		}
		set.MenuItems = kept
		if err := s.saveSet(ctx, set); err != nil {
			return err
		}
		if err := s.local.RemoveFavoriteMenuItem(itemID); err != nil {
			log.Printf("favorites: local cache remove failed item=%s err=%v", itemID, err)
		}
		return nil
	}

	return s.local.RemoveFavoriteMenuItem(itemID)
}

// ToggleMenuItem is the optimistic flip: the caller-visible state (the local
// cache) is changed before the backing write is attempted, and reverted if
// that write fails. The settled state is returned alongside the error; there
// is no automatic retry.
func (s *Service) ToggleMenuItem(ctx context.Context, sess domain.Session, itemID string) (bool, error) {
	prior, err := s.local.IsMenuItemFavorite(itemID)
	if err != nil {
		return false, err
	}
	desired := !prior

	item, err := s.catalog.GetMenuItem(ctx, itemID)
	if err != nil {
		return prior, ErrNotFound
	}

	// optimistic apply
	if desired {
		err = s.local.AddFavoriteMenuItem(*item)
	} else {
		err = s.local.RemoveFavoriteMenuItem(itemID)
	}
	if err != nil {
		return prior, err
	}

	if !sess.Authenticated {
		return desired, nil
	}

	// backing write; revert the visible flip on failure
	if desired {
		err = s.addRemoteMenuItem(ctx, sess.OwnerID, item)
	} else {
		err = s.removeRemoteMenuItem(ctx, sess.OwnerID, itemID)
	}
	if err != nil {
		var revertErr error
		if prior {
			revertErr = s.local.AddFavoriteMenuItem(*item)
		} else {
			revertErr = s.local.RemoveFavoriteMenuItem(itemID)
		}
		if revertErr != nil {
			log.Printf("favorites: rollback failed item=%s err=%v", itemID, revertErr)
		}
		return prior, ErrUnavailable
	}
	return desired, nil
}

func (s *Service) addRemoteMenuItem(ctx context.Context, ownerID string, item *domain.MenuItem) error {
	set, err := s.loadSet(ctx, ownerID)
	if err != nil {
		return err
	}
	set.MenuItems = append(set.MenuItems, domain.FavoriteMenuItem{
		FavoriteID: ids.Favorite(item.ID),
		ItemID:     item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Image:      item.Image,
		Category:   item.Category,
		Course:     item.Course,
	})
	return s.saveSet(ctx, set)
}

func (s *Service) removeRemoteMenuItem(ctx context.Context, ownerID, itemID string) error {
	set, err := s.loadSet(ctx, ownerID)
	if err != nil {
		return err
	}
	kept := set.MenuItems[:0]
	for _, it := range set.MenuItems {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	set.MenuItems = kept
	return s.saveSet(ctx, set)
}

// Addresses returns the merged address view: the owner's remote collection
// first, then local-only entries. The favorite flag exists only locally, so
// a remote-winning item still carries the flag its local copy holds.
func (s *Service) Addresses(ctx context.Context, sess domain.Session) ([]domain.LocalAddress, error) {
	localAddrs, err := s.local.SavedAddresses()
	if err != nil {
		return nil, err
	}
	localByID := make(map[string]domain.LocalAddress, len(localAddrs))
	for _, a := range localAddrs {
		localByID[a.ID] = a
	}

	var merged []domain.LocalAddress
	seen := make(map[string]bool)

	if sess.Authenticated {
		raw, ok, err := s.store.Get(ctx, sess.OwnerID, addressesKind)
		if err != nil {
			return nil, err
		}
		if ok {
			var col domain.ResourceCollection
			if err := json.Unmarshal(raw, &col); err != nil {
				return nil, err
			}
			for _, item := range col.Items {
				la := domain.LocalAddress{Resource: item}
				if cached, found := localByID[item.ID]; found {
					la.IsFavorite = cached.IsFavorite
				}
				merged = append(merged, la)
				seen[item.ID] = true
			}
		}
	}

	for _, a := range localAddrs {
		if !seen[a.ID] {
			merged = append(merged, a)
		}
	}
	return merged, nil
}

// SaveAddressLocal caches an address on the device.
func (s *Service) SaveAddressLocal(addr domain.Resource, isFavorite bool) error {
	return s.local.SaveAddress(addr, isFavorite)
}

// RemoveAddressLocal drops an address from the device cache only.
func (s *Service) RemoveAddressLocal(id string) error {
	return s.local.RemoveAddress(id)
}

// MarkAddressFavorite flips the local-only favorite flag.
func (s *Service) MarkAddressFavorite(id string, isFavorite bool) error {
	return s.local.MarkAddressFavorite(id, isFavorite)
}
