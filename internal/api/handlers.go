package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/example/cart-store/internal/api/middleware"
	"github.com/example/cart-store/internal/domain/cart"
	"github.com/example/cart-store/internal/notification"
	"github.com/example/cart-store/internal/readmodel"
	"github.com/go-chi/chi/v5"
)

// CartStore is the part of cart.Store the handlers drive
type CartStore interface {
	Cart() cart.Cart
	AddProduct(ctx context.Context, productID int)
	RemoveProduct(ctx context.Context, productID int)
	UpdateProductAmount(ctx context.Context, req cart.UpdateProductAmount)
}

type Handlers struct {
	store CartStore
}

func NewHandlers(store CartStore) *Handlers {
	return &Handlers{store: store}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, readmodel.NewCartReadModel(h.store.Cart(), nil))
}

func (h *Handlers) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "product_id must be a positive integer")
		return
	}

	h.mutate(w, r, func(ctx context.Context) {
		h.store.AddProduct(ctx, req.ProductID)
	})
}

func (h *Handlers) UpdateProductAmount(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.mutate(w, r, func(ctx context.Context) {
		h.store.UpdateProductAmount(ctx, cart.UpdateProductAmount{ProductID: productID, Amount: req.Amount})
	})
}

func (h *Handlers) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	h.mutate(w, r, func(ctx context.Context) {
		h.store.RemoveProduct(ctx, productID)
	})
}

// mutate runs op with a collector attached and answers with the cart plus
// the notifications op raised. Store failures are not HTTP errors.
// A lookup that has started always completes, even if the client goes away.
func (h *Handlers) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context)) {
	ctx, collector := notification.WithCollector(context.WithoutCancel(r.Context()))
	op(ctx)

	notifications := collector.Notifications()
	if len(notifications) > 0 {
		log.Printf("[API] Session %s: %s %s raised %d notifications",
			middleware.GetSessionID(r.Context()), r.Method, r.URL.Path, len(notifications))
	}
	respondJSON(w, http.StatusOK, readmodel.NewCartReadModel(h.store.Cart(), notifications))
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "productID must be a positive integer")
		return 0, false
	}
	return productID, true
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
