package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// Order is the persisted order aggregate: the header plus every entity
// it exclusively owns (items, customer snapshot, shipping snapshot).
// The whole graph is written once during a single orchestration run and
// never mutated afterwards.
type Order struct {
	ID          string
	Status      OrderStatus
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Items       []OrderItem
	Customer    CustomerSnapshot
	Shipping    ShippingSnapshot
}

// OrderItem is one consolidated line of an order. ProductName and
// UnitPrice are captured from the catalog at order time; they do not
// track later catalog changes.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// CustomerSnapshot is a denormalized copy of the customer identity at
// order time, owned by the order.
type CustomerSnapshot struct {
	ConsumerID  string
	FullName    string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

// ShippingSnapshot is a denormalized copy of the shipping destination at
// order time, owned by the order.
type ShippingSnapshot struct {
	Country       string
	StreetAddress string
	Region        string
	PostalCode    string
	Locality      string
}
