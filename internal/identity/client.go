package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecommerce-backend/order-service/internal/models"
)

var (
	// ErrUnauthorized means the identity service rejected the bearer token
	ErrUnauthorized = errors.New("bearer token rejected")
)

// Client decodes bearer tokens into caller identities by calling the
// customer service. The token itself is opaque to this service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an identity client with a bounded request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Decode resolves a bearer token into the caller's customer info,
// including the shipping address on file
func (c *Client) Decode(ctx context.Context, bearerToken string) (*models.CustomerInfo, error) {
	reqURL := c.baseURL + "/api/customer/user-info"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling identity service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("identity service returned status %d: %s", resp.StatusCode, string(body))
	}

	var info models.CustomerInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("unmarshalling user info: %w", err)
	}
	return &info, nil
}
