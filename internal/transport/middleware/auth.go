package middleware

import (
	"net/http"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/pkg/logger"
)

// UserContext tags the request logger with the authenticated caller. It
// must run after the auth middleware.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if caller, ok := internal.UserFromContext(ctx); ok {
			ctx = logger.With(ctx, "user_id", caller.ID, "username", caller.Username)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
