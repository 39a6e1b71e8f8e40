package inventory

// Stock is the quantity the catalog reports as available for a product.
// It is fetched per operation and never stored.
type Stock struct {
	ProductID int `json:"id"`
	Amount    int `json:"amount"`
}

// Covers reports whether the stock can satisfy the requested amount.
func (s Stock) Covers(amount int) bool {
	return amount <= s.Amount
}
