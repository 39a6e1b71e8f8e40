package readmodel

import (
	"github.com/example/cart-store/internal/domain/cart"
	"github.com/example/cart-store/internal/notification"
	"github.com/shopspring/decimal"
)

// CartItemReadModel represents one line of the cart as shown to the UI
type CartItemReadModel struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Amount   int             `json:"amount"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartReadModel is the read model for the shopping cart. Notifications holds
// whatever the request that produced it raised.
type CartReadModel struct {
	Items         []CartItemReadModel         `json:"items"`
	Size          int                         `json:"size"`
	Total         decimal.Decimal             `json:"total"`
	Notifications []notification.Notification `json:"notifications"`
}

// NewCartReadModel projects a committed cart
func NewCartReadModel(c cart.Cart, notifications []notification.Notification) CartReadModel {
	items := make([]CartItemReadModel, 0, len(c))
	total := decimal.Zero
	for _, it := range c {
		price := decimal.NewFromFloat(it.Price)
		subtotal := price.Mul(decimal.NewFromInt(int64(it.Amount)))
		total = total.Add(subtotal)
		items = append(items, CartItemReadModel{
			ID:       it.ID,
			Title:    it.Title,
			Price:    price,
			Image:    it.Image,
			Amount:   it.Amount,
			Subtotal: subtotal,
		})
	}
	if notifications == nil {
		notifications = []notification.Notification{}
	}
	return CartReadModel{
		Items:         items,
		Size:          c.Size(),
		Total:         total,
		Notifications: notifications,
	}
}
