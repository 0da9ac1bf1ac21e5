package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/ecommerce-backend/order-service/internal/models"
)

// InMemoryOrderRepository implements OrderRepository with in-memory
// storage. It backs tests and the no-database development mode.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewInMemoryOrderRepository creates an empty in-memory repository
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Save stores a copy of the aggregate. The copy keeps later mutations
// of the caller's value from leaking into the store.
func (r *InMemoryOrderRepository) Save(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	r.orders[order.ID] = stored
	return nil
}

// GetByID returns the stored aggregate for one order
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[orderID]
	if !exists {
		return nil, ErrOrderNotFound
	}

	out := order
	out.Items = append([]models.OrderItem(nil), order.Items...)
	return &out, nil
}

// GetAll returns every stored aggregate, newest first
func (r *InMemoryOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out := order
		out.Items = append([]models.OrderItem(nil), order.Items...)
		orders = append(orders, out)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
