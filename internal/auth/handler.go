package auth

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/internal/transport"
	"github.com/frahmantamala/talent-intake/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Login handles POST /token. The OAuth2 password form is the primary
// encoding; a JSON body with the same fields is also accepted.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		dto.Username = r.PostFormValue("username")
		dto.Password = r.PostFormValue("password")
	}

	token, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		logger.From(r.Context()).Warn("authentication failed", "username", dto.Username, "error", err)
		if appErr, ok := internal.IsAppError(err); ok && appErr.StatusCode == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, token)
}

// AuthMiddleware rejects requests without a valid bearer token and puts the
// decoded principal on the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			h.WriteError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		principal, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			logger.From(r.Context()).Warn("token validation failed", "error", err)
			w.Header().Set("WWW-Authenticate", "Bearer")
			h.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), principal)
		ctx = logger.With(ctx, "user_id", principal.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
