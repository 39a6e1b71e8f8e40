package catalog

import (
	"context"
	"errors"

	"github.com/example/cart-store/internal/domain/inventory"
	"github.com/example/cart-store/internal/domain/product"
)

var ErrUnexpectedStatus = errors.New("unexpected catalog response status")

// StockService looks up live stock and product metadata by product ID.
// Callers treat every error the same way; the distinctions are for logs.
type StockService interface {
	GetStock(ctx context.Context, productID int) (inventory.Stock, error)
	GetProduct(ctx context.Context, productID int) (product.Product, error)
}
