package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/cart-store/internal/domain/inventory"
	"github.com/example/cart-store/internal/domain/product"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

// HTTPClient reads the catalog REST API:
//
//	GET {baseURL}/stock/{id}    -> {"id": 1, "amount": 3}
//	GET {baseURL}/products/{id} -> {"id": 1, "title": "...", "price": 9.9, "image": "..."}
//
// Concurrent lookups for the same path share one request.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	group   singleflight.Group
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *HTTPClient) GetStock(ctx context.Context, productID int) (inventory.Stock, error) {
	var stock inventory.Stock
	if err := c.fetch(ctx, "/stock/"+strconv.Itoa(productID), &stock); err != nil {
		return inventory.Stock{}, err
	}
	if stock.ProductID == 0 {
		stock.ProductID = productID
	}
	return stock, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, productID int) (product.Product, error) {
	var p product.Product
	if err := c.fetch(ctx, "/products/"+strconv.Itoa(productID), &p); err != nil {
		return product.Product{}, err
	}
	return p, nil
}

// fetch decodes the JSON body at path into out, sharing in-flight requests.
// The shared request ignores caller cancellation; the client timeout bounds it.
func (c *HTTPClient) fetch(ctx context.Context, path string, out any) error {
	body, err, _ := c.group.Do(path, func() (any, error) {
		return c.get(context.WithoutCancel(ctx), path)
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, product.ErrProductNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s: %w: %d", path, ErrUnexpectedStatus, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return raw, nil
}
