package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/cart-store/internal/domain/inventory"
	"github.com/example/cart-store/internal/domain/product"
	_ "github.com/lib/pq"
)

// PostgresCatalog reads stock and product metadata straight from the catalog
// database (tables "stock" and "products").
type PostgresCatalog struct {
	db *sql.DB
}

func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

func (pc *PostgresCatalog) GetStock(ctx context.Context, productID int) (inventory.Stock, error) {
	stock := inventory.Stock{ProductID: productID}
	err := pc.db.QueryRowContext(ctx,
		"SELECT amount FROM stock WHERE id = $1",
		productID,
	).Scan(&stock.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.Stock{}, fmt.Errorf("stock %d: %w", productID, product.ErrProductNotFound)
	}
	if err != nil {
		return inventory.Stock{}, fmt.Errorf("failed to query stock %d: %w", productID, err)
	}
	return stock, nil
}

func (pc *PostgresCatalog) GetProduct(ctx context.Context, productID int) (product.Product, error) {
	var p product.Product
	err := pc.db.QueryRowContext(ctx,
		"SELECT id, title, price, image FROM products WHERE id = $1",
		productID,
	).Scan(&p.ID, &p.Title, &p.Price, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return product.Product{}, fmt.Errorf("product %d: %w", productID, product.ErrProductNotFound)
	}
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to query product %d: %w", productID, err)
	}
	return p, nil
}

// ConnectPostgres establishes a connection to PostgreSQL
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// A single shopper issues at most a couple of lookups at a time
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
