package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ecommerce-backend/order-service/internal/catalog"
	"github.com/ecommerce-backend/order-service/internal/models"
	"github.com/ecommerce-backend/order-service/internal/repository"
	"github.com/ecommerce-backend/order-service/pkg/logger"
)

func newProjectionFixture(t *testing.T) (*OrderService, string) {
	t.Helper()

	resolver := &stubResolver{
		products: map[string]catalog.Product{
			"1": {ID: "1", Name: "Belgian Waffle", Price: price("10.99"), StockQuantity: 10},
			"2": {ID: "2", Name: "Greek Salad", Price: price("9.49"), StockQuantity: 4},
		},
	}
	repo := repository.NewInMemoryOrderRepository()
	svc := NewOrderService(repo, resolver, logger.New("error"))

	req := models.OrderRequest{
		Items: []models.LineItem{
			{ProductID: "1", Quantity: 2},
			{ProductID: "2", Quantity: 1},
		},
	}
	order, err := svc.CreateOrder(context.Background(), req, testCustomer(), "Bearer token-1")
	if err != nil {
		t.Fatalf("CreateOrder() unexpected error = %v", err)
	}
	return svc, order.ID
}

func TestOrderService_GetOrder(t *testing.T) {
	svc, orderID := newProjectionFixture(t)

	view, err := svc.GetOrder(context.Background(), orderID)
	if err != nil {
		t.Fatalf("GetOrder() unexpected error = %v", err)
	}

	if view.ID != orderID {
		t.Errorf("view ID = %s, want %s", view.ID, orderID)
	}
	if view.Status != string(models.OrderStatusPending) {
		t.Errorf("view status = %s, want PENDING", view.Status)
	}
	if len(view.Items) != 2 {
		t.Fatalf("view items = %d, want 2", len(view.Items))
	}

	// Items carry the product display fields captured at order time
	first := view.Items[0]
	if first.ProductID != "1" || first.ProductName != "Belgian Waffle" {
		t.Errorf("first item = %s/%s, want 1/Belgian Waffle", first.ProductID, first.ProductName)
	}
	if !first.UnitPrice.Equal(price("10.99")) {
		t.Errorf("first item unit price = %s, want 10.99", first.UnitPrice)
	}
	if !view.TotalAmount.Equal(price("31.47")) {
		t.Errorf("view total = %s, want 31.47", view.TotalAmount)
	}
	if view.Customer.FullName != "Jane Doe" {
		t.Errorf("customer = %s, want Jane Doe", view.Customer.FullName)
	}
	if view.Shipping.Locality != "Berlin" {
		t.Errorf("shipping locality = %s, want Berlin", view.Shipping.Locality)
	}
}

func TestOrderService_GetOrder_Idempotent(t *testing.T) {
	svc, orderID := newProjectionFixture(t)

	first, err := svc.GetOrder(context.Background(), orderID)
	if err != nil {
		t.Fatalf("GetOrder() unexpected error = %v", err)
	}
	second, err := svc.GetOrder(context.Background(), orderID)
	if err != nil {
		t.Fatalf("GetOrder() unexpected error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("projection is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	svc, _ := newProjectionFixture(t)

	_, err := svc.GetOrder(context.Background(), "no-such-order")
	if !errors.Is(err, repository.ErrOrderNotFound) {
		t.Errorf("GetOrder() error = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	svc, orderID := newProjectionFixture(t)

	views, err := svc.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("ListOrders() unexpected error = %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("ListOrders() = %d views, want 1", len(views))
	}
	if views[0].ID != orderID {
		t.Errorf("view ID = %s, want %s", views[0].ID, orderID)
	}
}
