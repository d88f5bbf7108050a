package domain

import (
	"time"
)

type ResourceKind string

const (
	ResourceAddress ResourceKind = "address"
	ResourcePayment ResourceKind = "payment"
)

type PaymentType string

const (
	PaymentCredit    PaymentType = "credit"
	PaymentDebit     PaymentType = "debit"
	PaymentPaypal    PaymentType = "paypal"
	PaymentApplePay  PaymentType = "applepay"
	PaymentGooglePay PaymentType = "googlepay"
)

// AddressFields holds the address-specific payload of a Resource.
type AddressFields struct {
	Label         string `json:"label" validate:"required"`
	Name          string `json:"name" validate:"required"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	StreetAddress string `json:"streetAddress" validate:"required"`
	Apartment     string `json:"apartment,omitempty"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode" validate:"required"`
	Country       string `json:"country" validate:"required"`
	Instructions  string `json:"instructions,omitempty"`
}

// PaymentFields holds the payment-method payload of a Resource.
// Card data is stored as last-4 digits only and is never charged.
type PaymentFields struct {
	Type             PaymentType `json:"type" validate:"required,oneof=credit debit paypal applepay googlepay"`
	CardType         string      `json:"cardType,omitempty"`
	NameOnCard       string      `json:"nameOnCard,omitempty"`
	Last4            string      `json:"last4" validate:"required,len=4,numeric"`
	ExpiryMonth      string      `json:"expiryMonth,omitempty"`
	ExpiryYear       string      `json:"expiryYear,omitempty"`
	BillingAddressID string      `json:"billingAddressId,omitempty"`
	Email            string      `json:"email,omitempty"`
}

// Resource is one item of an owner's collection: a closed variant over
// address and payment-method payloads. Exactly one of Address/Payment is
// set, matching Kind.
type Resource struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"ownerId"`
	Kind      ResourceKind   `json:"kind"`
	Address   *AddressFields `json:"address,omitempty"`
	Payment   *PaymentFields `json:"payment,omitempty"`
	IsDefault bool           `json:"isDefault"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ResourceCollection is the aggregate record stored per (owner, kind):
// the whole item array lives in one document and is replaced as a unit.
type ResourceCollection struct {
	OwnerID string     `json:"ownerId"`
	Items   []Resource `json:"items"`
}

// Default returns the collection's default item, if any.
func (c *ResourceCollection) Default() *Resource {
	for i := range c.Items {
		if c.Items[i].IsDefault {
			return &c.Items[i]
		}
	}
	return nil
}

// Find returns the index of the item with the given id, or -1.
func (c *ResourceCollection) Find(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}
