package handler

import (
	"net/http"

	"github.com/Dan9191/loan-service/internal/config"
	"github.com/Dan9191/loan-service/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter mounts all routes. Mutating loan routes require a bearer token
// when auth is enabled.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/reference-rate", h.ReferenceRate).Methods(http.MethodGet)
	r.HandleFunc("/loans/calculate", h.CalculateLoan).Methods(http.MethodPost)
	r.HandleFunc("/loans", h.ListLoans).Methods(http.MethodGet)
	r.HandleFunc("/loans/{id:[0-9]+}", h.GetLoan).Methods(http.MethodGet)

	// Protected routes
	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg))
	protected.HandleFunc("/loans", h.CreateLoan).Methods(http.MethodPost)
	protected.HandleFunc("/loans/{id:[0-9]+}", h.DeleteLoan).Methods(http.MethodDelete)
	protected.HandleFunc("/loans/{id:[0-9]+}/email", h.EmailLoan).Methods(http.MethodPost)

	return middleware.RequestLogger(h.log, r)(middleware.CORS(cfg)(r))
}
