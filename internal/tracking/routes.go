package tracking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the tracking endpoints. The rate-limit middleware is
// passed in so the ingestion route is throttled without coupling this
// package to limiter configuration.
func SetupRoutes(rateLimit func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	h := &Handler{Eval: DefaultEvaluator}

	r.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Post("/locations", h.ReportLocationHandler)
	})

	return r
}
