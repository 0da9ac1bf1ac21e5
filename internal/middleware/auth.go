package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/ecommerce-backend/order-service/internal/identity"
	"github.com/ecommerce-backend/order-service/internal/models"
)

type contextKey string

const (
	customerKey contextKey = "customer"
	tokenKey    contextKey = "bearerToken"
)

// TokenDecoder resolves a bearer token into a caller identity
type TokenDecoder interface {
	Decode(ctx context.Context, bearerToken string) (*models.CustomerInfo, error)
}

// BearerAuth middleware extracts the Authorization header, decodes it
// through the identity collaborator and stores the caller identity and
// the raw token in the request context. The token itself stays opaque;
// downstream calls forward it unchanged.
func BearerAuth(decoder TokenDecoder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearerToken := r.Header.Get("Authorization")
			if bearerToken == "" {
				http.Error(w, "Unauthorized: bearer token required", http.StatusUnauthorized)
				return
			}

			customer, err := decoder.Decode(r.Context(), bearerToken)
			if err != nil {
				if errors.Is(err, identity.ErrUnauthorized) {
					http.Error(w, "Unauthorized: invalid bearer token", http.StatusUnauthorized)
				} else {
					http.Error(w, "Identity service unavailable", http.StatusServiceUnavailable)
				}
				return
			}

			ctx := context.WithValue(r.Context(), customerKey, customer)
			ctx = context.WithValue(ctx, tokenKey, bearerToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerFrom returns the decoded caller identity stored by BearerAuth
func CustomerFrom(ctx context.Context) (*models.CustomerInfo, bool) {
	customer, ok := ctx.Value(customerKey).(*models.CustomerInfo)
	return customer, ok
}

// TokenFrom returns the raw bearer token stored by BearerAuth
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithCustomer stores a caller identity and token directly in the
// context, bypassing the identity service. Used by tests.
func WithCustomer(ctx context.Context, customer *models.CustomerInfo, bearerToken string) context.Context {
	ctx = context.WithValue(ctx, customerKey, customer)
	return context.WithValue(ctx, tokenKey, bearerToken)
}
