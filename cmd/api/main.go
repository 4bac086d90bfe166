package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rentiva/rentiva-backend/api/routes"
	"github.com/rentiva/rentiva-backend/internal/behavior"
	"github.com/rentiva/rentiva-backend/internal/catalog"
	"github.com/rentiva/rentiva-backend/internal/licenses"
	"github.com/rentiva/rentiva-backend/internal/pricing"
	"github.com/rentiva/rentiva-backend/internal/rentals"
	"github.com/rentiva/rentiva-backend/pkg/auth/session"
	"github.com/rentiva/rentiva-backend/pkg/config"
	"github.com/rentiva/rentiva-backend/pkg/db"
	"github.com/rentiva/rentiva-backend/pkg/logger"
	"github.com/rentiva/rentiva-backend/pkg/migrate"
	"github.com/rentiva/rentiva-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var sessions session.AccessSessionChecker
	if cfg.FeatureFlags.CheckSessions {
		manager, err := session.NewManager(redisClient, cfg.JWT)
		if err != nil {
			logg.Error(context.Background(), "failed to create session manager", err)
			os.Exit(1)
		}
		sessions = manager
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	behaviorService, err := behavior.NewService(behavior.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create behavior service", err)
		os.Exit(1)
	}

	rentalsService, err := rentals.NewService(
		rentals.NewRepository(dbClient.DB()),
		dbClient,
		behaviorService,
		pricing.RefundPolicy{
			ExcellentPct: cfg.Policy.ExcellentRefundPct,
			GoodPct:      cfg.Policy.GoodRefundPct,
		},
		pricing.LateFeePolicy{PctPerDay: cfg.Policy.LateFeePctPerDay},
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create rentals service", err)
		os.Exit(1)
	}

	licensesService, err := licenses.NewService(licenses.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create licenses service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Sessions: sessions,
			Catalog:  catalogService,
			Rentals:  rentalsService,
			Behavior: behaviorService,
			Licenses: licensesService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
