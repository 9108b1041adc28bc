package devserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/orderfoodonline/checkout/internal/config"
)

// NewRouter assembles the stub server routes. Cart and order endpoints
// sit behind bearer auth; catalog and hours are public, matching the
// real backend.
func NewRouter(cfg config.ServerConfig, repo *Repository, log *slog.Logger) chi.Router {
	productHandler := NewProductHandler(repo, log)
	cartHandler := NewCartHandler(repo, log)
	orderHandler := NewOrderHandler(repo, log)
	hoursHandler := NewHoursHandler(cfg.RestaurantOpen, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
		}, log)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.ListProducts)
		r.Get("/restaurant-hours/check", hoursHandler.Check)

		// Authenticated cart and order routes. /products/cart must be
		// registered before /products/{productId} so chi does not treat
		// "cart" as a product id.
		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(cfg.AuthTokens))
			r.Get("/products/cart", cartHandler.GetCart)
			r.Post("/products/cart", cartHandler.AddCartLine)
			r.Put("/products/cart/{lineId}", cartHandler.UpdateCartLine)
			r.Delete("/products/cart/{lineId}", cartHandler.RemoveCartLine)
			r.Post("/orders", orderHandler.CreateOrder)
			r.Get("/addresses", orderHandler.ListAddresses)
		})

		r.Get("/products/{productId}", productHandler.GetProduct)
		r.Get("/products/{productId}/options", productHandler.GetProductOptions)
	})

	return r
}
