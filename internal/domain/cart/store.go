package cart

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/example/cart-store/internal/infrastructure/catalog"
	"github.com/example/cart-store/internal/infrastructure/store"
	"github.com/example/cart-store/internal/notification"
)

// Messages shown to the shopper. Out-of-stock is shared by add and update.
const (
	MsgOutOfStock   = "Requested quantity is out of stock"
	MsgAddFailed    = "Error adding product"
	MsgRemoveFailed = "Error removing product"
	MsgUpdateFailed = "Error changing product amount"
)

// UpdateProductAmount is the input of Store.UpdateProductAmount.
type UpdateProductAmount struct {
	ProductID int `json:"product_id"`
	Amount    int `json:"amount"`
}

// Store owns the shopper's cart for one session. It validates every change
// against live stock, commits a new Cart value and writes it to storage when
// it differs from what was last written.
//
// Mutations never return errors: failures leave the cart untouched and are
// reported through the notifier. Lookups run without holding the lock, so
// overlapping mutations are not serialized; the last commit wins.
//
// Storage writes run outside mu. persistMu orders them, and each pass writes
// the cart current at that moment, so storage ends on the last commit.
type Store struct {
	stock    catalog.StockService
	storage  store.KeyValueStore
	notifier notification.Notifier

	mu   sync.RWMutex
	cart Cart

	persistMu sync.Mutex
	persisted string // last value written under StorageKey
}

// NewStore loads the persisted cart, falling back to an empty one when
// nothing is stored or the stored value cannot be read.
func NewStore(ctx context.Context, stock catalog.StockService, storage store.KeyValueStore, notifier notification.Notifier) *Store {
	s := &Store{
		stock:    stock,
		storage:  storage,
		notifier: notifier,
		cart:     Cart{},
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	raw, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		log.Printf("[Cart] Failed to read stored cart, starting empty: %v", err)
		return
	}
	if !ok {
		return
	}

	c, err := Unmarshal(raw)
	if err != nil {
		log.Printf("[Cart] Discarding stored cart: %v", err)
		return
	}

	c, dropped := c.Dedupe()
	if dropped > 0 {
		log.Printf("[Cart] Dropped %d duplicate products from stored cart", dropped)
	}

	persisted, err := Marshal(c)
	if err != nil {
		log.Printf("[Cart] Discarding stored cart: %v", err)
		return
	}
	s.cart = c
	s.persisted = persisted
	log.Printf("[Cart] Restored %d products from storage", len(c))
}

// Cart returns a copy of the committed cart.
func (s *Store) Cart() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Size returns the number of distinct products in the committed cart.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Size()
}

func (s *Store) current() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

// AddProduct adds one unit of productID, appending the product when it is
// not yet in the cart.
func (s *Store) AddProduct(ctx context.Context, productID int) {
	cart := s.current()
	existing, found := cart.Find(productID)

	stock, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		s.fail(ctx, notification.KindAddFailed, MsgAddFailed, productID, fmt.Errorf("%w: %w", ErrLookupFailure, err))
		return
	}

	desired := existing.Amount + 1
	if !stock.Covers(desired) {
		s.fail(ctx, notification.KindOutOfStock, MsgOutOfStock, productID,
			fmt.Errorf("%w: want %d, have %d", ErrOutOfStock, desired, stock.Amount))
		return
	}

	if found {
		s.commit(ctx, cart.WithAmount(productID, desired))
		return
	}

	p, err := s.stock.GetProduct(ctx, productID)
	if err != nil {
		s.fail(ctx, notification.KindAddFailed, MsgAddFailed, productID, fmt.Errorf("%w: %w", ErrLookupFailure, err))
		return
	}
	p.ID = productID
	s.commit(ctx, cart.Append(LineItem{Product: p, Amount: 1}))
}

// RemoveProduct drops productID from the cart. Removing a product that is not
// in the cart is reported as a failure.
func (s *Store) RemoveProduct(ctx context.Context, productID int) {
	cart := s.current()
	if _, ok := cart.Find(productID); !ok {
		s.fail(ctx, notification.KindRemoveFailed, MsgRemoveFailed, productID, ErrProductNotFound)
		return
	}
	s.commit(ctx, cart.Without(productID))
}

// UpdateProductAmount sets the amount of a product already in the cart.
// Amounts of zero or less are ignored without a stock lookup.
func (s *Store) UpdateProductAmount(ctx context.Context, req UpdateProductAmount) {
	if req.Amount <= 0 {
		return
	}

	stock, err := s.stock.GetStock(ctx, req.ProductID)
	if err != nil {
		s.fail(ctx, notification.KindUpdateFailed, MsgUpdateFailed, req.ProductID, fmt.Errorf("%w: %w", ErrLookupFailure, err))
		return
	}
	if !stock.Covers(req.Amount) {
		s.fail(ctx, notification.KindOutOfStock, MsgOutOfStock, req.ProductID,
			fmt.Errorf("%w: want %d, have %d", ErrOutOfStock, req.Amount, stock.Amount))
		return
	}

	cart := s.current()
	if _, ok := cart.Find(req.ProductID); !ok {
		s.fail(ctx, notification.KindUpdateFailed, MsgUpdateFailed, req.ProductID, ErrProductNotFound)
		return
	}
	s.commit(ctx, cart.WithAmount(req.ProductID, req.Amount))
}

// commit installs next as the current cart, then runs the persistence pass.
func (s *Store) commit(ctx context.Context, next Cart) {
	s.mu.Lock()
	s.cart = next
	s.mu.Unlock()

	s.persist(ctx)
}

// persist writes the current cart when it differs from the last value written.
// A failed write keeps the marker, so the next pass retries.
func (s *Store) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	data, err := Marshal(s.current())
	if err != nil {
		log.Printf("[Cart] %v: %v", ErrPersistenceFailure, err)
		return
	}
	if data == s.persisted {
		return
	}
	if err := s.storage.Set(ctx, StorageKey, data); err != nil {
		log.Printf("[Cart] %v: %v", ErrPersistenceFailure, err)
		return
	}
	s.persisted = data
}

func (s *Store) fail(ctx context.Context, kind notification.Kind, message string, productID int, err error) {
	log.Printf("[Cart] %s for product %d: %v", kind, productID, err)
	s.notifier.Notify(ctx, notification.New(kind, message, productID))
}
