package app

import (
	"net/http"

	"github.com/Black-And-White-Club/three-under/internal/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newHTTPRouter builds the root router with the operational endpoints. The
// returned API router carries apiMiddleware and is where modules register.
func newHTTPRouter(registry *prometheus.Registry, apiMiddleware []func(http.Handler) http.Handler) (root *chi.Mux, api chi.Router) {
	root = chi.NewRouter()
	root.Use(
		middleware.RequestID,
		middleware.RealIP,
		httpapi.CorrelationMiddleware,
		middleware.Recoverer,
	)

	root.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if registry != nil {
		root.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	}

	api = root.With(apiMiddleware...)
	return root, api
}
