package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"organ-annotator/internal/http/handlers"
	"organ-annotator/internal/infra"
	"organ-annotator/internal/middleware"
)

// NewRouter builds the operational router served next to the queue consumer:
// liveness and processing counters.
func NewRouter(app *handlers.App, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
	)

	r.Get("/healthz", app.Health)
	r.Get("/statusz", app.StatsSummary)

	return r
}
