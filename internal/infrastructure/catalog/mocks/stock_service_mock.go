package mocks

import (
	"context"
	"sync"

	"github.com/example/cart-store/internal/domain/inventory"
	"github.com/example/cart-store/internal/domain/product"
)

// MockStockService is a mock implementation of catalog.StockService for testing
type MockStockService struct {
	mu       sync.Mutex
	stock    map[int]int
	products map[int]product.Product

	// For tracking calls in tests
	GetStockCalls   []int
	GetProductCalls []int
	GetStockErr     error
	GetProductErr   error
}

// NewMockStockService creates a new MockStockService
func NewMockStockService() *MockStockService {
	return &MockStockService{
		stock:           make(map[int]int),
		products:        make(map[int]product.Product),
		GetStockCalls:   make([]int, 0),
		GetProductCalls: make([]int, 0),
	}
}

// SetStock sets the available amount reported for a product
func (m *MockStockService) SetStock(productID, amount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[productID] = amount
}

// SetProduct sets the catalog metadata reported for a product
func (m *MockStockService) SetProduct(p product.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

// GetStock returns the configured stock, GetStockErr, or not-found
func (m *MockStockService) GetStock(_ context.Context, productID int) (inventory.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetStockCalls = append(m.GetStockCalls, productID)
	if m.GetStockErr != nil {
		return inventory.Stock{}, m.GetStockErr
	}
	amount, ok := m.stock[productID]
	if !ok {
		return inventory.Stock{}, product.ErrProductNotFound
	}
	return inventory.Stock{ProductID: productID, Amount: amount}, nil
}

// GetProduct returns the configured product, GetProductErr, or not-found
func (m *MockStockService) GetProduct(_ context.Context, productID int) (product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetProductCalls = append(m.GetProductCalls, productID)
	if m.GetProductErr != nil {
		return product.Product{}, m.GetProductErr
	}
	p, ok := m.products[productID]
	if !ok {
		return product.Product{}, product.ErrProductNotFound
	}
	return p, nil
}

// Calls returns the number of lookups of either kind
func (m *MockStockService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GetStockCalls) + len(m.GetProductCalls)
}
