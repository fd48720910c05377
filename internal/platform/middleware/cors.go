package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets the page editor call the API from allowedOrigins, or from any
// origin when none are given. Auth is a bearer token, so credentials mode
// stays off.
func CORS(allowedOrigins ...string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id", "traceparent"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}
	if len(allowedOrigins) > 0 {
		opts.AllowedOrigins = allowedOrigins
	}
	return cors.Handler(opts)
}
