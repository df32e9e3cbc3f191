package middleware

import (
	"net/http"

	"github.com/Dan9191/loan-service/internal/config"
	"github.com/gorilla/handlers"
)

// CORS allows the configured browser origins to call the API with credentials
func CORS(cfg *config.Config) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
		handlers.AllowCredentials(),
	)
}
