package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestClient_Resolve(t *testing.T) {
	var gotRequests int
	var gotAuth, gotIDs string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequests++
		gotAuth = r.Header.Get("Authorization")
		gotIDs = r.URL.Query().Get("productIds")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"101","productName":"Caesar Salad","price":9.99,"stockQuantity":5},
			{"id":"102","productName":"Greek Salad","price":20.00,"stockQuantity":0}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	resolved, err := client.Resolve(context.Background(), []string{"101", "102"}, "Bearer token-1")
	if err != nil {
		t.Fatalf("Resolve() unexpected error = %v", err)
	}

	if gotRequests != 1 {
		t.Errorf("requests = %d, want exactly 1 round trip", gotRequests)
	}
	if gotAuth != "Bearer token-1" {
		t.Errorf("Authorization = %q, want pass-through of the caller token", gotAuth)
	}
	if gotIDs != "101,102" {
		t.Errorf("productIds = %q, want comma-separated 101,102", gotIDs)
	}

	if len(resolved) != 2 {
		t.Fatalf("resolved %d products, want 2", len(resolved))
	}
	p := resolved["101"]
	if p.Name != "Caesar Salad" {
		t.Errorf("name = %s, want Caesar Salad", p.Name)
	}
	if !p.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("price = %s, want 9.99", p.Price)
	}
	if p.StockQuantity != 5 {
		t.Errorf("stock = %d, want 5", p.StockQuantity)
	}
	if resolved["102"].StockQuantity != 0 {
		t.Errorf("stock = %d, want 0", resolved["102"].StockQuantity)
	}
}

func TestClient_Resolve_EmptyResults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty array", body: `[]`},
		{name: "null body", body: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second)
			resolved, err := client.Resolve(context.Background(), []string{"1"}, "")
			if err != nil {
				t.Fatalf("Resolve() unexpected error = %v", err)
			}
			if len(resolved) != 0 {
				t.Errorf("resolved = %v, want empty map", resolved)
			}
		})
	}
}

func TestClient_Resolve_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Products not found with IDs: 201"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.Resolve(context.Background(), []string{"201"}, "")

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve() error = %v, want NotFoundError", err)
	}
	if notFound.Detail != "Products not found with IDs: 201" {
		t.Errorf("detail = %q, want the remote body naming id 201", notFound.Detail)
	}
}

func TestClient_Resolve_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second)
			_, err := client.Resolve(context.Background(), []string{"1"}, "")

			var unavailable *UnavailableError
			if !errors.As(err, &unavailable) {
				t.Errorf("Resolve() error = %v, want UnavailableError", err)
			}
		})
	}
}

func TestClient_Resolve_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, 1*time.Second)
	_, err := client.Resolve(context.Background(), []string{"1"}, "")

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("Resolve() error = %v, want UnavailableError", err)
	}
}

func TestClient_Resolve_Cancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	client := NewClient(server.URL, 30*time.Second)
	_, err := client.Resolve(ctx, []string{"1"}, "")

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("Resolve() error = %v, want UnavailableError on cancellation", err)
	}
}
