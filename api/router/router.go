package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	bootstrap "github.com/cramerservices/plans-api/api/bootstrap"
	"github.com/cramerservices/plans-api/api/config"
	checkoutapp "github.com/cramerservices/plans-api/api/services/checkout/app"
)

// NewRouter returns the central HTTP router for the API, wired with the
// bootstrapped checkout service.
func NewRouter() http.Handler {
	// Initialize app dependencies (non-fatal if it fails here; handlers return 500s).
	if err := bootstrap.Ensure(); err != nil {
		slog.Error("bootstrap ensure failed", "err", err)
	}
	var origins []string
	if config.AppConfig != nil {
		origins = config.AppConfig.AllowedOriginList()
	}
	return New(bootstrap.GetCheckoutService(), origins)
}

// New builds the router around an explicit service, so tests can inject stubs.
func New(svc checkoutapp.Service, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(corsMiddleware(allowedOrigins))

	r.Post("/api/create-checkout-session", createCheckoutSessionHandler(svc))
	r.Get("/api/membership", membershipHandler(svc))
	return r
}
