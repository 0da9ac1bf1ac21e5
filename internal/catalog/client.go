package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a point-in-time snapshot of catalog data for one product.
// Nothing holds a lock on the remote side, so the snapshot may go stale
// the moment the call returns.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"productName"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}

// NotFoundError is returned when the catalog service reports one or
// more of the requested product identifiers as unknown. Detail carries
// the remote response body, which names the missing identifiers.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("products not found: %s", e.Detail)
}

// UnavailableError is returned on any transport or protocol failure
// talking to the catalog service, including timeouts and cancellation.
// No order state has been written when it occurs, so callers may retry.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("catalog service unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Client resolves product data from the remote catalog service
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a catalog client with a bounded request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Resolve fetches current price, stock and name for the given product
// identifiers in a single batched round trip. The identifiers should
// already be deduplicated; they are joined into one comma-separated
// query parameter. The bearer token is forwarded unchanged on the
// Authorization header, never interpreted here.
//
// An empty or null remote result yields an empty map and no error; the
// caller decides what an order with no resolvable products means.
func (c *Client) Resolve(ctx context.Context, productIDs []string, bearerToken string) (map[string]Product, error) {
	reqURL := fmt.Sprintf("%s/api/product/getByIds?productIds=%s",
		c.baseURL, url.QueryEscape(strings.Join(productIDs, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("creating request: %w", err)}
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("reading response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Detail: strings.TrimSpace(string(body))}
	case resp.StatusCode != http.StatusOK:
		return nil, &UnavailableError{Err: fmt.Errorf("catalog returned status %d: %s", resp.StatusCode, string(body))}
	}

	var products []Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("unmarshalling catalog response: %w", err)}
	}

	resolved := make(map[string]Product, len(products))
	for _, p := range products {
		resolved[p.ID] = p
	}
	return resolved, nil
}
