package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// corsHandler allows browser clients on any origin. Credentials are bearer
// tokens, so cookies are never shared.
var corsHandler = cors.Handler(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	AllowedHeaders:   []string{"Authorization", "Content-Type", TraceIDHeader},
	ExposedHeaders:   []string{TraceIDHeader},
	AllowCredentials: false,
	MaxAge:           300,
})

func CORS(next http.Handler) http.Handler {
	return corsHandler(next)
}
