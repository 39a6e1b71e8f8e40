package api

import (
	"log"
	"net/http"
	"time"

	"github.com/example/cart-store/internal/api/middleware"
	"github.com/example/cart-store/internal/auth"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handlers *Handlers, jwtService *auth.JWTService) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(withLogging)

	r.Get("/health", handlers.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(jwtService))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", handlers.GetCart)
			r.Post("/items", handlers.AddProduct)
			r.Put("/items/{productID}", handlers.UpdateProductAmount)
			r.Delete("/items/{productID}", handlers.RemoveProduct)
		})
	})

	return r
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[API] %s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
