package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dcontreras/mueblesrent-backend/api/routes"
	"github.com/dcontreras/mueblesrent-backend/internal/availability"
	clientsvc "github.com/dcontreras/mueblesrent-backend/internal/clients"
	"github.com/dcontreras/mueblesrent-backend/internal/pricing"
	productsvc "github.com/dcontreras/mueblesrent-backend/internal/products"
	reservationsvc "github.com/dcontreras/mueblesrent-backend/internal/reservations"
	"github.com/dcontreras/mueblesrent-backend/pkg/config"
	"github.com/dcontreras/mueblesrent-backend/pkg/db"
	"github.com/dcontreras/mueblesrent-backend/pkg/logger"
	"github.com/dcontreras/mueblesrent-backend/pkg/metrics"
	"github.com/dcontreras/mueblesrent-backend/pkg/migrate"
	"github.com/dcontreras/mueblesrent-backend/pkg/redis"
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

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(promRegistry)
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	productRepo := productsvc.NewRepository(dbClient.DB())
	clientRepo := clientsvc.NewRepository(dbClient.DB())
	reservationRepo := reservationsvc.NewRepository(dbClient.DB())

	productService, err := productsvc.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	clientService, err := clientsvc.NewService(clientRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create client service", err)
		os.Exit(1)
	}

	pricingService, err := pricing.NewService(productRepo, cfg.Booking)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	availabilityService, err := availability.NewService(productRepo, reservationRepo, bookingMetrics, cfg.Booking)
	if err != nil {
		logg.Error(context.Background(), "failed to create availability service", err)
		os.Exit(1)
	}

	reservationService, err := reservationsvc.NewService(reservationRepo, dbClient, clientRepo, bookingMetrics, cfg.Booking)
	if err != nil {
		logg.Error(context.Background(), "failed to create reservation service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			DBPinger:     dbClient,
			Redis:        redisClient,
			HTTPMetrics:  httpMetrics,
			PromRegistry: promRegistry,
			Products:     productService,
			Clients:      clientService,
			Pricing:      pricingService,
			Availability: availabilityService,
			Reservations: reservationService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
