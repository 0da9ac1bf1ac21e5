package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecommerce-backend/order-service/pkg/logger"
)

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler("1.1.0", logger.New("error"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %s, want healthy", resp.Status)
	}
	if resp.Service != "order-service" {
		t.Errorf("service = %s, want order-service", resp.Service)
	}
	if resp.Version != "1.1.0" {
		t.Errorf("version = %s, want 1.1.0", resp.Version)
	}
}
