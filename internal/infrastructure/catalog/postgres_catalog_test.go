package catalog

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/example/cart-store/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostgresCatalog(t *testing.T) (*PostgresCatalog, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresCatalog(db), mock
}

var (
	stockQuery   = regexp.QuoteMeta("SELECT amount FROM stock WHERE id = $1")
	productQuery = regexp.QuoteMeta("SELECT id, title, price, image FROM products WHERE id = $1")
)

func TestPostgresCatalog_GetStock(t *testing.T) {
	pc, mock := newTestPostgresCatalog(t)
	mock.ExpectQuery(stockQuery).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(5))

	stock, err := pc.GetStock(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, stock.ProductID)
	assert.Equal(t, 5, stock.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalog_GetStock_NotFound(t *testing.T) {
	pc, mock := newTestPostgresCatalog(t)
	mock.ExpectQuery(stockQuery).
		WithArgs(9).
		WillReturnError(sql.ErrNoRows)

	_, err := pc.GetStock(context.Background(), 9)

	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestPostgresCatalog_GetStock_QueryError(t *testing.T) {
	pc, mock := newTestPostgresCatalog(t)
	mock.ExpectQuery(stockQuery).
		WithArgs(1).
		WillReturnError(errors.New("connection reset"))

	_, err := pc.GetStock(context.Background(), 1)

	assert.ErrorContains(t, err, "failed to query stock 1")
	assert.NotErrorIs(t, err, product.ErrProductNotFound)
}

func TestPostgresCatalog_GetProduct(t *testing.T) {
	pc, mock := newTestPostgresCatalog(t)
	mock.ExpectQuery(productQuery).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "image"}).
			AddRow(2, "Trail shoe", 139.9, "https://img/2.jpg"))

	p, err := pc.GetProduct(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, product.Product{ID: 2, Title: "Trail shoe", Price: 139.9, Image: "https://img/2.jpg"}, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalog_GetProduct_NotFound(t *testing.T) {
	pc, mock := newTestPostgresCatalog(t)
	mock.ExpectQuery(productQuery).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "image"}))

	_, err := pc.GetProduct(context.Background(), 3)

	assert.ErrorIs(t, err, product.ErrProductNotFound)
}
