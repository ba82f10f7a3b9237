package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/talent-intake/internal"
	coreUser "github.com/frahmantamala/talent-intake/internal/core/user"
	"github.com/frahmantamala/talent-intake/internal/transport"
)

type RBACAuthorization struct {
	*transport.BaseHandler
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: transport.NewBaseHandler(logger),
		logger:      logger,
	}
}

// RequireRoles lets the request through when the principal holds any of
// roles, otherwise it answers with denied.
func (ra *RBACAuthorization) RequireRoles(denied *internal.AppError, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				ra.logger.WarnContext(r.Context(), "authorization check failed: user not found in context")
				ra.HandleServiceError(w, internal.ErrInvalidToken)
				return
			}

			if err := Authorize(user, roles...); err != nil {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", user.ID,
					"required_roles", roles,
					"user_roles", user.Roles)
				ra.HandleServiceError(w, denied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRoles(internal.ErrAdminRequired, coreUser.RoleAdmin)
}

// RequireModerator admits moderators and admins.
func (ra *RBACAuthorization) RequireModerator() func(http.Handler) http.Handler {
	return ra.RequireRoles(internal.ErrModeratorRequired, coreUser.RoleModerator, coreUser.RoleAdmin)
}
