package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/staffdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/mw"
)

func init() { Register(registerOps) }

func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	internal := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	internal.Get("/readyz", handlers.Readyz(d))
	internal.Handle("/metrics", promhttp.Handler())

	guarded := internal.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	guarded.Get("/infra", handlers.Infra(d))
	guarded.Post("/reload", handlers.Reload(d))
}
