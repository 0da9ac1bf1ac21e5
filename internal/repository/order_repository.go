package repository

import (
	"context"
	"errors"

	"github.com/ecommerce-backend/order-service/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order aggregate persistence.
// Save must make the whole graph (header, items, customer snapshot,
// shipping snapshot) visible atomically or fail as a unit; an order
// must never become readable without its items.
type OrderRepository interface {
	Save(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
}
