package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ecommerce-backend/order-service/internal/catalog"
	"github.com/ecommerce-backend/order-service/internal/idempotency"
	"github.com/ecommerce-backend/order-service/internal/metrics"
	"github.com/ecommerce-backend/order-service/internal/middleware"
	"github.com/ecommerce-backend/order-service/internal/models"
	"github.com/ecommerce-backend/order-service/internal/repository"
	"github.com/ecommerce-backend/order-service/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	guard        *idempotency.Guard
	metrics      *metrics.OrderMetrics
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler. Metrics may be nil.
func NewOrderHandler(orderService *service.OrderService, guard *idempotency.Guard, m *metrics.OrderMetrics, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		guard:        guard,
		metrics:      m,
		log:          log,
	}
}

// CreateOrder handles POST /api/order/add-order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	customer, ok := middleware.CustomerFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized", h.log)
		return
	}

	key := r.Header.Get("Idempotency-Key")
	if h.guard != nil && h.guard.Seen(key) {
		h.countFailure("duplicate_request")
		WriteError(w, http.StatusConflict, "Duplicate request", h.log)
		return
	}

	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	_, err := h.orderService.CreateOrder(r.Context(), req, *customer, middleware.TokenFrom(r.Context()))
	if err != nil {
		// The key stays unrecorded so the caller can retry
		h.writeCreateOrderError(w, err)
		return
	}

	if h.guard != nil {
		h.guard.Record(key)
	}
	if h.metrics != nil {
		h.metrics.OrdersCreated.Inc()
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Order created successfully"}, h.log)
}

// writeCreateOrderError maps each failure kind of the orchestration to
// its HTTP status; no error is swallowed or collapsed
func (h *OrderHandler) writeCreateOrderError(w http.ResponseWriter, err error) {
	h.log.Error("failed to create order", "error", err)

	var notFound *catalog.NotFoundError
	var unavailable *catalog.UnavailableError
	var insufficient *service.InsufficientStockError

	switch {
	case errors.Is(err, service.ErrEmptyOrder):
		h.countFailure("empty_order")
		WriteError(w, http.StatusBadRequest, "Order must contain at least one item", h.log)
	case errors.Is(err, service.ErrInvalidQuantity):
		h.countFailure("invalid_quantity")
		WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.log)
	case errors.As(err, &notFound):
		h.countFailure("catalog_not_found")
		WriteError(w, http.StatusNotFound, notFound.Error(), h.log)
	case errors.As(err, &unavailable):
		h.countFailure("catalog_unavailable")
		WriteError(w, http.StatusServiceUnavailable, "Catalog service unavailable, please retry", h.log)
	case errors.As(err, &insufficient):
		h.countFailure("insufficient_stock")
		WriteError(w, http.StatusBadRequest, insufficient.Error(), h.log)
	default:
		h.countFailure("persistence")
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}

// GetOrder handles GET /api/order/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	view, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
			return
		}
		h.log.Error("failed to get order", "order_id", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.log)
}

// ListOrders handles GET /api/order
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, views, h.log)
}

func (h *OrderHandler) countFailure(kind string) {
	if h.metrics != nil {
		h.metrics.OrderFailures.WithLabelValues(kind).Inc()
	}
}
