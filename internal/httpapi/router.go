package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the chi router for the georisk API, grounded on the
// teacher's internal/server.setupMiddleware/setupRoutes (Recoverer,
// RequestID, RealIP, a request timeout, permissive CORS, conditional
// response compression).
func NewRouter(h *Handler, devMode bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if !devMode {
		r.Use(middleware.Compress(5))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/georisk", func(r chi.Router) {
		r.Post("/scan", h.HandleScan)
		r.Get("/scans/{scanID}", h.HandleGetScan)
		r.Get("/stream", h.HandleStream)
		r.Get("/stream/ws", h.HandleStreamWS)
		r.Get("/settings", h.HandleGetSettings)
		r.Put("/settings", h.HandleUpdateSettings)
		r.Get("/themes", h.HandleGetThemes)
		r.Put("/themes", h.HandleUpdateThemes)
	})

	return r
}
