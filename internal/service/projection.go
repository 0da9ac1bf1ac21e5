package service

import (
	"context"

	"github.com/ecommerce-backend/order-service/internal/models"
)

// GetOrder projects one persisted order aggregate into its read-side
// view. Read-only and idempotent; repeated calls for the same order
// return structurally identical views.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.OrderView, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	view := projectOrder(order)
	return &view, nil
}

// ListOrders projects every persisted order
func (s *OrderService) ListOrders(ctx context.Context) ([]models.OrderView, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, projectOrder(&orders[i]))
	}
	return views, nil
}

// projectOrder maps the persisted graph onto the read DTO, item by item
func projectOrder(order *models.Order) models.OrderView {
	items := make([]models.OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.OrderItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}

	return models.OrderView{
		ID:          order.ID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		Items:       items,
		Customer: models.CustomerView{
			ConsumerID:  order.Customer.ConsumerID,
			FullName:    order.Customer.FullName,
			FirstName:   order.Customer.FirstName,
			LastName:    order.Customer.LastName,
			Email:       order.Customer.Email,
			PhoneNumber: order.Customer.PhoneNumber,
		},
		Shipping: models.ShippingView{
			Country:       order.Shipping.Country,
			StreetAddress: order.Shipping.StreetAddress,
			Region:        order.Shipping.Region,
			PostalCode:    order.Shipping.PostalCode,
			Locality:      order.Shipping.Locality,
		},
	}
}
