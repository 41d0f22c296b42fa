package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/knightempire/e-commerce-frontend/internal/service"
	"github.com/knightempire/e-commerce-frontend/pkg/health"
	"github.com/knightempire/e-commerce-frontend/pkg/middleware"
)

const serviceName = "storefront"

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	svc *service.StorefrontService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(corsOrigins)))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)
		mountAPI(r, svc, logger)
	})

	return r
}

func mountAPI(r chi.Router, svc *service.StorefrontService, logger *slog.Logger) {
	cart := NewCartHandler(svc, logger)
	wishlist := NewWishlistHandler(svc, logger)
	checkout := NewCheckoutHandler(svc, logger)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cart.GetCart)
		r.Delete("/", cart.ClearCart)
		r.Post("/items", cart.AddItem)
		r.Put("/items/{productId}", cart.UpdateItemQuantity)
		r.Delete("/items/{productId}", cart.RemoveItem)
		r.Post("/pricing", cart.Quote)
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", wishlist.List)
		r.Post("/", wishlist.Add)
		r.Get("/{productId}", wishlist.Contains)
		r.Delete("/{productId}", wishlist.Remove)
		r.Post("/{productId}/move", wishlist.MoveToCart)
	})

	r.Post("/promo/validate", checkout.ValidatePromo)
	r.Post("/checkout", checkout.Checkout)
}
