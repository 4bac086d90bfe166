package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentiva/rentiva-backend/api/controllers"
	"github.com/rentiva/rentiva-backend/api/middleware"
	"github.com/rentiva/rentiva-backend/internal/behavior"
	"github.com/rentiva/rentiva-backend/internal/catalog"
	"github.com/rentiva/rentiva-backend/internal/licenses"
	"github.com/rentiva/rentiva-backend/internal/rentals"
	"github.com/rentiva/rentiva-backend/pkg/auth/session"
	"github.com/rentiva/rentiva-backend/pkg/config"
	"github.com/rentiva/rentiva-backend/pkg/db"
	"github.com/rentiva/rentiva-backend/pkg/logger"
	"github.com/rentiva/rentiva-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker

	Catalog  catalog.Service
	Rentals  rentals.Service
	Behavior behavior.Service
	Licenses licenses.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	mutationPolicy := middleware.NewRateLimitPolicy(
		"mutations",
		cfg.RateLimit.Window,
		cfg.RateLimit.IPLimit,
		cfg.RateLimit.UserLimit,
	)

	var cache redis.Pinger
	if params.Redis != nil {
		cache = params.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DB, cache))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, params.Sessions, logg))
		if params.Redis != nil {
			r.Use(middleware.Idempotency(params.Redis, logg))
			r.Use(middleware.RateLimit(mutationPolicy, params.Redis, logg))
		}

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ListItems(params.Catalog, logg))
			r.With(middleware.RequireLicense(params.Licenses, logg)).Post("/", controllers.CreateItem(params.Catalog, logg))
			r.Route("/{itemId}", func(r chi.Router) {
				r.Get("/", controllers.GetItem(params.Catalog, logg))
				r.Get("/history", controllers.ItemHistory(params.Rentals, logg))
				r.With(middleware.RequireLicense(params.Licenses, logg)).Post("/rent", controllers.RentItem(params.Rentals, logg))
				r.With(middleware.RequireLicense(params.Licenses, logg)).Post("/return", controllers.ReturnItem(params.Rentals, logg))
			})
		})

		r.Route("/customers/{customerId}", func(r chi.Router) {
			r.Get("/rentals", controllers.CustomerRentals(params.Rentals, logg))
			r.Get("/behavior", controllers.CustomerBehavior(params.Behavior, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, params.Sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))
		if params.Redis != nil {
			r.Use(middleware.Idempotency(params.Redis, logg))
			r.Use(middleware.RateLimit(mutationPolicy, params.Redis, logg))
		}

		r.Get("/ping", controllers.AdminPing())
		r.Route("/v1", func(r chi.Router) {
			r.Post("/items/{itemId}/cancel-rental", controllers.AdminCancelRental(params.Rentals, logg))
			r.Route("/customers", func(r chi.Router) {
				r.Get("/flagged", controllers.AdminFlagged(params.Behavior, logg))
				r.Post("/{customerId}/strikes", controllers.AdminAddStrike(params.Behavior, logg))
				r.Post("/{customerId}/strikes/{strikeId}/resolve", controllers.AdminResolveStrike(params.Behavior, logg))
			})
		})
	})

	return r
}
