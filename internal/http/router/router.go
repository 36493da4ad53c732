package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courier-tracking/internal/http/handlers"
	mw "courier-tracking/internal/http/middleware"
	"courier-tracking/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
// The websocket endpoint sits outside the request timeout group: observer
// connections are long-lived.
func New(
	base *handlers.Handlers,
	loc *handlers.LocationHandler,
	pkg *handlers.PackageHandler,
	usr *handlers.UserHandler,
	stream *handlers.StreamHandler,
	logger logx.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.Observability(logger))

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(5 * time.Second))

		r.Get("/ping", base.Ping)
		r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
		r.Handle("/metrics", promhttp.Handler())

		r.Get("/users", usr.List)
		r.Get("/users-delivery", usr.ListCouriers)
		r.Post("/login", usr.Login)

		r.Get("/location", loc.List)
		r.Get("/location-latest", loc.LatestAll)
		r.Get("/location-latest/{userId}", loc.Latest)
		r.Post("/update-location", loc.Update)

		r.Get("/paquetes", pkg.List)
		r.Get("/paquetesUs", pkg.ListFiltered)
		r.Post("/add-package", pkg.Create)
		r.Get("/packages/{userId}", pkg.ListForCourier)
		r.Patch("/packages/{id}", pkg.UpdateStatus)
		r.Patch("/update-status/{id}", pkg.UpdateStatus)
	})

	r.Get("/ws", stream.Serve)

	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
