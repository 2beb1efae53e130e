package http

import (
	"net/http"

	"github.com/Sarab71/fossnflories/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Cart     *CartHandler
	Products *ProductHandler
	Auth     *AuthHandler
	Tokens   *auth.TokenManager
	Logger   zerolog.Logger
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(cfg.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public account routes
		r.Post("/signup", cfg.Auth.Signup)
		r.Post("/login", cfg.Auth.Login)
		r.Post("/forgot-password", cfg.Auth.ForgotPassword)
		r.Post("/reset-password", cfg.Auth.ResetPassword)

		// Public catalog routes
		r.Get("/products", cfg.Products.ListProducts)
		r.Get("/products/by-category", cfg.Products.ListByCategory)
		r.Get("/products/{id}", cfg.Products.GetProduct)

		// Admin catalog routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.Tokens))
			r.Use(RequireAdmin)

			r.Post("/products", cfg.Products.CreateProduct)
			r.Put("/products/{id}", cfg.Products.UpdateProduct)
			r.Delete("/products/{id}", cfg.Products.DeleteProduct)
		})

		// Cart routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.Tokens))

			r.Get("/cart", cfg.Cart.GetCart)
			r.Delete("/cart", cfg.Cart.ClearCart)
			r.Post("/cart/items", cfg.Cart.AddItem)
			r.Put("/cart/items/{product_id}", cfg.Cart.UpdateQuantity)
			r.Delete("/cart/items/{product_id}", cfg.Cart.RemoveItem)
		})
	})

	return r
}
