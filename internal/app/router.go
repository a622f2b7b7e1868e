package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sudepo/sudepo/internal/analytics"
	"github.com/sudepo/sudepo/internal/auth"
	"github.com/sudepo/sudepo/internal/categories"
	"github.com/sudepo/sudepo/internal/couriers"
	"github.com/sudepo/sudepo/internal/customers"
	"github.com/sudepo/sudepo/internal/inventory"
	"github.com/sudepo/sudepo/internal/observability"
	"github.com/sudepo/sudepo/internal/orders"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	Auth              auth.Middleware
	AuthHandler       *auth.Handler
	OrdersHandler     *orders.Handler
	CouriersHandler   *couriers.Handler
	CustomersHandler  *customers.Handler
	InventoryHandler  *inventory.Handler
	CategoriesHandler *categories.Handler
	AnalyticsHandler  *analytics.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router. Order creation is public (web
// self-checkout); everything else behind /api requires a staff session.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staff := []string{auth.RoleAdmin, auth.RoleOffice}
	staffAndCourier := []string{auth.RoleAdmin, auth.RoleOffice, auth.RoleCourier}

	r.Route("/api", func(r chi.Router) {
		r.Use(params.Auth.Authenticate)

		params.AuthHandler.MountRoutes(r)

		// Public storefront surface: catalogue reads and self-checkout.
		r.Get("/catalog", func(w http.ResponseWriter, req *http.Request) {
			q := req.URL.Query()
			q.Set("active", "true")
			req.URL.RawQuery = q.Encode()
			params.InventoryHandler.List(w, req)
		})
		r.Route("/orders", func(r chi.Router) {
			// Self-checkout: creation stays open to anonymous customers.
			r.Post("/", params.OrdersHandler.Create)
			r.Group(func(r chi.Router) {
				r.Use(params.Auth.RequireRole(staffAndCourier...))
				r.Get("/", params.OrdersHandler.List)
				r.Get("/{id}", params.OrdersHandler.Show)
				r.Post("/{id}/status", params.OrdersHandler.UpdateStatus)
				r.Post("/{id}/payment", params.OrdersHandler.SetPayment)
			})
			r.Group(func(r chi.Router) {
				r.Use(params.Auth.RequireRole(staff...))
				r.Post("/{id}/courier", params.OrdersHandler.Reassign)
			})
		})

		r.Route("/couriers", func(r chi.Router) {
			// Couriers can see the roster and report their own status and
			// carried stock; master-data edits stay with the office.
			r.Group(func(r chi.Router) {
				r.Use(params.Auth.RequireRole(staffAndCourier...))
				r.Get("/", params.CouriersHandler.List)
				r.Get("/ranked", params.CouriersHandler.Ranked)
				r.Get("/{id}", params.CouriersHandler.Show)
				r.Post("/{id}/status", params.CouriersHandler.SetStatus)
				r.Post("/{id}/inventory", params.CouriersHandler.ReportInventory)
			})
			r.Group(func(r chi.Router) {
				r.Use(params.Auth.RequireRole(staff...))
				r.Post("/", params.CouriersHandler.Create)
				r.Put("/{id}", params.CouriersHandler.Update)
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(params.Auth.RequireRole(staff...))
			params.CustomersHandler.MountRoutes(r)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Use(params.Auth.RequireRole(staff...))
			params.InventoryHandler.MountRoutes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(params.Auth.RequireRole(auth.RoleAdmin))
			params.CategoriesHandler.MountRoutes(r)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(params.Auth.RequireRole(auth.RoleAdmin))
			params.AnalyticsHandler.MountRoutes(r)
		})
	})

	return r
}
