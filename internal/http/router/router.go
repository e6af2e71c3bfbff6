package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-shipping-go/internal/http/handlers"
	"service-shipping-go/internal/http/middleware"
	"service-shipping-go/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h *handlers.Handlers, logger logx.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Observability(logger))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/location", h.SearchLocation)
		r.Post("/shipping-cost", h.CheckShippingCost)
		r.Post("/orders", h.CreateOrder)
		r.Get("/orders/{orderId}", h.OrderDetails)
		r.Get("/pickup/timeslots", h.PickupTimeslots)
		r.Post("/pickup", h.CreatePickup)
		r.Patch("/pickup/cancel", h.CancelPickup)
		r.Post("/label", h.PrintDocument)
	})

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
