package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware allows credentialed requests from the configured origins so the
// browser sends the session cookie cross-site.
func CORSMiddleware(origins []string) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           600,
	})
	return c.Handler
}
