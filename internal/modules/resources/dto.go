package resources

import "tablebook/internal/domain"

// CreateResourceRequest carries the kind-specific payload plus the requested
// default flag. Exactly one of Address/Payment must be set, matching the
// collection the request targets.
type CreateResourceRequest struct {
	Address   *domain.AddressFields `json:"address,omitempty"`
	Payment   *domain.PaymentFields `json:"payment,omitempty"`
	IsDefault bool                  `json:"isDefault"`
}

// UpdateResourceRequest is a partial update: nil fields are left untouched.
// A present payload replaces the stored payload as a whole.
type UpdateResourceRequest struct {
	Address   *domain.AddressFields `json:"address,omitempty"`
	Payment   *domain.PaymentFields `json:"payment,omitempty"`
	IsDefault *bool                 `json:"isDefault,omitempty"`
}
