package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/example/cart-store/internal/domain/inventory"
	"github.com/example/cart-store/internal/domain/product"
	"github.com/sony/gobreaker/v2"
)

// BreakerService stops calling a failing catalog for openTimeout after
// maxFailures consecutive failures. Not-found answers count as successes.
type BreakerService struct {
	next     StockService
	stock    *gobreaker.CircuitBreaker[inventory.Stock]
	products *gobreaker.CircuitBreaker[product.Product]
}

func NewBreakerService(next StockService, maxFailures uint32, openTimeout time.Duration) *BreakerService {
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, product.ErrProductNotFound)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("[Catalog] Circuit %s: %s -> %s", name, from, to)
			},
		}
	}

	return &BreakerService{
		next:     next,
		stock:    gobreaker.NewCircuitBreaker[inventory.Stock](settings("catalog-stock")),
		products: gobreaker.NewCircuitBreaker[product.Product](settings("catalog-products")),
	}
}

func (b *BreakerService) GetStock(ctx context.Context, productID int) (inventory.Stock, error) {
	return b.stock.Execute(func() (inventory.Stock, error) {
		return b.next.GetStock(ctx, productID)
	})
}

func (b *BreakerService) GetProduct(ctx context.Context, productID int) (product.Product, error) {
	return b.products.Execute(func() (product.Product, error) {
		return b.next.GetProduct(ctx, productID)
	})
}
