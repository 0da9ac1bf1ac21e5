package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderView is the read-side representation of a persisted order,
// assembled by the projection mapper for retrieval endpoints.
type OrderView struct {
	ID          string          `json:"id"`
	Status      string          `json:"orderStatus"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	Items       []OrderItemView `json:"orderItems"`
	Customer    CustomerView    `json:"customer"`
	Shipping    ShippingView    `json:"shippingAddress"`
}

// OrderItemView is one order line enriched with the product display
// fields captured at order time.
type OrderItemView struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"totalPrice"`
}

// CustomerView mirrors the customer snapshot
type CustomerView struct {
	ConsumerID  string `json:"consumerId"`
	FullName    string `json:"fullName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// ShippingView mirrors the shipping snapshot
type ShippingView struct {
	Country       string `json:"country"`
	StreetAddress string `json:"streetAddress"`
	Region        string `json:"region"`
	PostalCode    string `json:"postalCode"`
	Locality      string `json:"locality"`
}
