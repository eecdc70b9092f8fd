package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"agendafeed/internal/delivery/http/controllers"
	"agendafeed/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(agendaController *controllers.AgendaController) *http.ServeMux {
	mux := http.NewServeMux()

	// Agenda
	mux.HandleFunc("GET /agenda", agendaController.GetAgenda)
	mux.HandleFunc("GET /agenda/days", agendaController.GetDays)
	mux.HandleFunc("GET /agenda/freshness", agendaController.GetFreshness)
	mux.HandleFunc("POST /agenda/reload", agendaController.Reload)

	// Selection memory
	mux.HandleFunc("GET /selection", agendaController.GetSelection)
	mux.HandleFunc("PUT /selection/day", agendaController.ChangeDay)
	mux.HandleFunc("PUT /selection/tier", agendaController.ChangeTier)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with client identity, request logging and CORS.
func NewHandler(logger *slog.Logger, allowedOrigins []string, agendaController *controllers.AgendaController) http.Handler {
	var h http.Handler = NewRouter(agendaController)
	h = middleware.ClientIdentity(h)
	h = middleware.LoggingMiddleware(logger, h)
	return middleware.CORS(allowedOrigins, h)
}
