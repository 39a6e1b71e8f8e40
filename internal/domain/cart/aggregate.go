package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/cart-store/internal/domain/product"
)

// StorageKey is the single key the cart snapshot is persisted under.
const StorageKey = "@cartstore:cart"

var (
	ErrOutOfStock             = errors.New("requested amount exceeds available stock")
	ErrProductNotFound        = errors.New("product is not in the cart")
	ErrLookupFailure          = errors.New("stock lookup failed")
	ErrPersistenceFailure     = errors.New("failed to persist cart")
	ErrDeserializationFailure = errors.New("failed to deserialize cart")
)

// LineItem is one product in the cart with its desired amount.
// Product metadata is embedded so the JSON form stays flat, and catalog
// members the product does not model survive a round trip.
type LineItem struct {
	product.Product
	Amount int `json:"amount"`
}

func (it LineItem) MarshalJSON() ([]byte, error) {
	return it.Product.MarshalWith(product.Field{Key: "amount", Value: it.Amount})
}

func (it *LineItem) UnmarshalJSON(data []byte) error {
	var v struct {
		Amount int `json:"amount"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if err := it.Product.UnmarshalWith(data, "amount"); err != nil {
		return err
	}
	it.Amount = v.Amount
	return nil
}

// Cart is an ordered list of line items; the first product added stays first.
// Methods never modify the receiver, they return a new Cart.
type Cart []LineItem

func (c Cart) index(productID int) int {
	for i, item := range c {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// Find returns the line item for productID, if present.
func (c Cart) Find(productID int) (LineItem, bool) {
	i := c.index(productID)
	if i < 0 {
		return LineItem{}, false
	}
	return c[i], true
}

// Size returns the number of distinct products.
func (c Cart) Size() int {
	return len(c)
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// WithAmount returns a cart where the item for productID has the given amount.
func (c Cart) WithAmount(productID, amount int) Cart {
	out := c.Clone()
	if i := out.index(productID); i >= 0 {
		out[i].Amount = amount
	}
	return out
}

// Without returns a cart with the item for productID removed.
func (c Cart) Without(productID int) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ID != productID {
			out = append(out, item)
		}
	}
	return out
}

// Dedupe returns a cart keeping only the first line item for each product,
// and the number of items dropped.
func (c Cart) Dedupe() (Cart, int) {
	seen := make(map[int]bool, len(c))
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out, len(c) - len(out)
}

// Append returns a cart with item added at the end.
func (c Cart) Append(item LineItem) Cart {
	out := make(Cart, len(c), len(c)+1)
	copy(out, c)
	return append(out, item)
}

// Marshal serializes the cart as a JSON array. An empty cart is "[]".
func Marshal(c Cart) (string, error) {
	if c == nil {
		c = Cart{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cart: %w", err)
	}
	return string(data), nil
}

// Unmarshal restores a cart from its persisted form.
func Unmarshal(data string) (Cart, error) {
	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserializationFailure, err)
	}
	if c == nil {
		c = Cart{}
	}
	return c, nil
}
