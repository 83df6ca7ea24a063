package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows cross-origin reads of the pages from the configured origins.
// With no origins configured the handler is returned unchanged.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		MaxAge:         3600,
	})
	return c.Handler
}
