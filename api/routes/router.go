package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dcontreras/mueblesrent-backend/api/controllers"
	"github.com/dcontreras/mueblesrent-backend/api/middleware"
	"github.com/dcontreras/mueblesrent-backend/internal/availability"
	clientsvc "github.com/dcontreras/mueblesrent-backend/internal/clients"
	"github.com/dcontreras/mueblesrent-backend/internal/pricing"
	productsvc "github.com/dcontreras/mueblesrent-backend/internal/products"
	reservationsvc "github.com/dcontreras/mueblesrent-backend/internal/reservations"
	"github.com/dcontreras/mueblesrent-backend/pkg/config"
	"github.com/dcontreras/mueblesrent-backend/pkg/db"
	"github.com/dcontreras/mueblesrent-backend/pkg/logger"
	"github.com/dcontreras/mueblesrent-backend/pkg/metrics"
	pkgredis "github.com/dcontreras/mueblesrent-backend/pkg/redis"
)

type Deps struct {
	DBPinger     db.Pinger
	Redis        *pkgredis.Client
	HTTPMetrics  *metrics.HTTPMetrics
	PromRegistry *prometheus.Registry

	Products     productsvc.Service
	Clients      clientsvc.Service
	Pricing      pricing.Service
	Availability availability.Service
	Reservations reservationsvc.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(),
	)

	var redisPinger pkgredis.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, redisPinger))
	})

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	var idemStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		idemStore = deps.Redis
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idemStore, cfg.Booking.IdempotencyTTL, logg))

		r.Route("/availability", func(r chi.Router) {
			r.Get("/", controllers.AvailabilityCheck(deps.Availability, logg))
			r.Post("/check", controllers.AvailabilityCheckAll(deps.Availability, logg))
			r.Get("/daily", controllers.AvailabilityByDay(deps.Availability, logg))
			r.Get("/next-period", controllers.AvailabilityNextPeriod(deps.Availability, logg))
			r.Get("/occupancy", controllers.AvailabilityOccupancy(deps.Availability, logg))
		})

		r.Post("/quotes", controllers.CreateQuote(deps.Pricing, logg))

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", controllers.CreateReservation(deps.Reservations, logg))
			r.Get("/", controllers.ListReservations(deps.Reservations, logg))
			r.Get("/{reservationId}", controllers.GetReservation(deps.Reservations, logg))
			r.Post("/{reservationId}/cancel", controllers.CancelReservation(deps.Reservations, logg))
			r.Patch("/{reservationId}/status", controllers.UpdateReservationStatus(deps.Reservations, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Post("/", controllers.CreateProduct(deps.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(deps.Products, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(deps.Products, logg))
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ListClients(deps.Clients, logg))
			r.Post("/", controllers.CreateClient(deps.Clients, logg))
			r.Get("/{clientId}", controllers.GetClient(deps.Clients, logg))
			r.Patch("/{clientId}", controllers.UpdateClient(deps.Clients, logg))
			r.Delete("/{clientId}", controllers.DeleteClient(deps.Clients, logg))
			r.Get("/{clientId}/reservations", controllers.ListClientReservations(deps.Clients, deps.Reservations, logg))
		})
	})

	return r
}
