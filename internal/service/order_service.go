package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ecommerce-backend/order-service/internal/catalog"
	"github.com/ecommerce-backend/order-service/internal/models"
	"github.com/ecommerce-backend/order-service/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// InsufficientStockError is returned when a consolidated quantity
// exceeds the stock reported by the catalog for that product
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// ProductResolver is the remote catalog collaborator
type ProductResolver interface {
	Resolve(ctx context.Context, productIDs []string, bearerToken string) (map[string]catalog.Product, error)
}

// OrderService orchestrates order placement: it consolidates the
// request's line items, resolves product data from the catalog in one
// batched call, validates stock, prices the lines and persists the
// resulting aggregate.
type OrderService struct {
	orderRepo repository.OrderRepository
	resolver  ProductResolver
	log       *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository, resolver ProductResolver, log *slog.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		resolver:  resolver,
		log:       log,
	}
}

// CreateOrder runs one order placement end to end. The bearer token is
// forwarded to the catalog unchanged; the decoded customer identity is
// copied into the order's snapshots.
//
// Validation is all-or-nothing: the first insufficient-stock violation
// aborts the run and nothing is persisted. A catalog response that
// resolves zero products is not an error; the order is persisted with
// an empty item list and a zero total.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest, customer models.CustomerInfo, bearerToken string) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	consolidated, err := consolidate(req.Items)
	if err != nil {
		return nil, err
	}

	// One batched round trip per run, keyed on the deduplicated set.
	resolved, err := s.resolver.Resolve(ctx, sortedProductIDs(consolidated), bearerToken)
	if err != nil {
		return nil, err
	}

	items, total, err := validateAndPrice(consolidated, resolved)
	if err != nil {
		return nil, err
	}

	order := buildOrder(items, total, customer)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("saving order: %w", err)
	}

	s.log.Info("order created",
		"order_id", order.ID,
		"items_count", len(order.Items),
		"total_amount", order.TotalAmount.String(),
	)

	return order, nil
}

// consolidate collapses the request's line items into one quantity per
// distinct product. Duplicate productIds are additive. Pure function;
// permuting the input yields the same mapping.
func consolidate(items []models.LineItem) (map[string]int, error) {
	consolidated := make(map[string]int, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		consolidated[item.ProductID] += item.Quantity
	}
	return consolidated, nil
}

// validateAndPrice cross-checks every consolidated line against the
// resolved stock and computes decimal line totals. Products the catalog
// did not resolve contribute nothing (a missing product the catalog
// considers an error surfaces from the resolver as NotFoundError, not
// here). The order total is a per-run local, never shared state.
func validateAndPrice(consolidated map[string]int, resolved map[string]catalog.Product) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(consolidated))
	total := decimal.Zero

	for _, productID := range sortedProductIDs(consolidated) {
		product, ok := resolved[productID]
		if !ok {
			continue
		}

		quantity := consolidated[productID]
		if quantity > product.StockQuantity {
			return nil, decimal.Zero, &InsufficientStockError{
				ProductID: productID,
				Requested: quantity,
				Available: product.StockQuantity,
			}
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
		items = append(items, models.OrderItem{
			ProductID:   productID,
			ProductName: product.Name,
			Quantity:    quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return items, total, nil
}

// buildOrder assembles the unpersisted aggregate from validated, priced
// lines. Deterministic apart from the generated identifiers and the
// creation timestamp.
func buildOrder(items []models.OrderItem, total decimal.Decimal, customer models.CustomerInfo) *models.Order {
	orderID := uuid.New().String()

	for i := range items {
		items[i].ID = uuid.New().String()
		items[i].OrderID = orderID
	}

	return &models.Order{
		ID:          orderID,
		Status:      models.OrderStatusPending,
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
		Items:       items,
		Customer: models.CustomerSnapshot{
			ConsumerID:  customer.ConsumerID,
			FullName:    customer.FullName,
			FirstName:   customer.FirstName,
			LastName:    customer.LastName,
			Email:       customer.Email,
			PhoneNumber: customer.PhoneNumber,
		},
		Shipping: models.ShippingSnapshot{
			Country:       customer.Country,
			StreetAddress: customer.StreetAddress,
			Region:        customer.Region,
			PostalCode:    customer.PostalCode,
			Locality:      customer.Locality,
		},
	}
}

// sortedProductIDs returns the distinct product identifiers in a stable
// order, for deterministic item ordering and request batching
func sortedProductIDs(consolidated map[string]int) []string {
	ids := make([]string, 0, len(consolidated))
	for id := range consolidated {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
