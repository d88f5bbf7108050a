package resources

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/pkg/ids"
)

// Service manages one owner's resource collections (addresses, payment
// methods) over the aggregate record store, keeping the single-default
// invariant: at most one item per collection carries IsDefault.
//
// Every mutation is a whole-record read, in-memory edit and whole-record
// write. Two concurrent mutations on the same collection race and the second
// write wins; there is no version token on the record.
type Service struct {
	store RecordStore
}

func NewService(store RecordStore) *Service {
	return &Service{store: store}
}

func recordKind(kind domain.ResourceKind) string {
	if kind == domain.ResourcePayment {
		return "payments"
	}
	return "addresses"
}

func idPrefix(kind domain.ResourceKind) string {
	if kind == domain.ResourcePayment {
		return "pay"
	}
	return "addr"
}

func (s *Service) load(ctx context.Context, ownerID string, kind domain.ResourceKind) (domain.ResourceCollection, error) {
	col := domain.ResourceCollection{OwnerID: ownerID}
	raw, ok, err := s.store.Get(ctx, ownerID, recordKind(kind))
	if err != nil {
		return col, err
	}
	if !ok {
		// collections are created lazily on first add
		return col, nil
	}
	if err := json.Unmarshal(raw, &col); err != nil {
		return col, err
	}
	return col, nil
}

func (s *Service) save(ctx context.Context, kind domain.ResourceKind, col domain.ResourceCollection) error {
	raw, err := json.Marshal(col)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, col.OwnerID, recordKind(kind), raw)
}

func validatePayload(kind domain.ResourceKind, addr *domain.AddressFields, pay *domain.PaymentFields) error {
	switch kind {
	case domain.ResourceAddress:
		if addr == nil || pay != nil {
			return ErrValidation
		}
	case domain.ResourcePayment:
		if pay == nil || addr != nil {
			return ErrValidation
		}
	default:
		return ErrValidation
	}
	return nil
}

// Add appends a new resource and returns its generated id. The first item of
// an empty collection becomes the default regardless of the requested flag;
// an explicitly requested default clears every existing flag first.
func (s *Service) Add(ctx context.Context, ownerID string, kind domain.ResourceKind, req CreateResourceRequest) (string, error) {
	if err := validatePayload(kind, req.Address, req.Payment); err != nil {
		return "", err
	}

	col, err := s.load(ctx, ownerID, kind)
	if err != nil {
		return "", err
	}

	isDefault := req.IsDefault
	if len(col.Items) == 0 {
		isDefault = true
	}
	if isDefault {
		for i := range col.Items {
			col.Items[i].IsDefault = false
		}
	}

	now := time.Now()
	item := domain.Resource{
		ID:        ids.New(idPrefix(kind)),
		OwnerID:   ownerID,
		Kind:      kind,
		Address:   req.Address,
		Payment:   req.Payment,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
	col.Items = append(col.Items, item)

	if err := s.save(ctx, kind, col); err != nil {
		return "", err
	}
	return item.ID, nil
}

// Update applies a partial edit. A false→true default transition clears the
// flag on every other item before setting it.
func (s *Service) Update(ctx context.Context, ownerID string, kind domain.ResourceKind, id string, req UpdateResourceRequest) error {
	col, err := s.load(ctx, ownerID, kind)
	if err != nil {
		return err
	}

	idx := col.Find(id)
	if idx == -1 {
		return ErrNotFound
	}

	if req.Address != nil || req.Payment != nil {
		if err := validatePayload(kind, req.Address, req.Payment); err != nil {
			return err
		}
		col.Items[idx].Address = req.Address
		col.Items[idx].Payment = req.Payment
	}

	if req.IsDefault != nil {
		if *req.IsDefault && !col.Items[idx].IsDefault {
			for i := range col.Items {
				col.Items[i].IsDefault = false
			}
		}
		col.Items[idx].IsDefault = *req.IsDefault
	}

	col.Items[idx].UpdatedAt = time.Now()
	return s.save(ctx, kind, col)
}

// Remove deletes the item. When the removed item was the default and items
// remain, the first remaining item (in stored order) is promoted, so a
// non-empty collection never loses its default through removal.
func (s *Service) Remove(ctx context.Context, ownerID string, kind domain.ResourceKind, id string) error {
	col, err := s.load(ctx, ownerID, kind)
	if err != nil {
		return err
	}

	idx := col.Find(id)
	if idx == -1 {
		return ErrNotFound
	}
	wasDefault := col.Items[idx].IsDefault

	col.Items = append(col.Items[:idx], col.Items[idx+1:]...)

	if wasDefault && len(col.Items) > 0 {
		col.Items[0].IsDefault = true
		col.Items[0].UpdatedAt = time.Now()
	}

	return s.save(ctx, kind, col)
}

// List returns the collection ordered default-first, then newest-first.
func (s *Service) List(ctx context.Context, ownerID string, kind domain.ResourceKind) ([]domain.Resource, error) {
	col, err := s.load(ctx, ownerID, kind)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Resource, len(col.Items))
	copy(items, col.Items)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsDefault != items[j].IsDefault {
			return items[i].IsDefault
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Get returns a single item by id.
func (s *Service) Get(ctx context.Context, ownerID string, kind domain.ResourceKind, id string) (*domain.Resource, error) {
	col, err := s.load(ctx, ownerID, kind)
	if err != nil {
		return nil, err
	}
	idx := col.Find(id)
	if idx == -1 {
		return nil, ErrNotFound
	}
	item := col.Items[idx]
	return &item, nil
}

// GetDefault returns the default item, or nil when the collection is empty
// or carries no default.
func (s *Service) GetDefault(ctx context.Context, ownerID string, kind domain.ResourceKind) (*domain.Resource, error) {
	col, err := s.load(ctx, ownerID, kind)
	if err != nil {
		return nil, err
	}
	return col.Default(), nil
}
