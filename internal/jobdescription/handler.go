package jobdescription

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/internal/extraction"
	"github.com/frahmantamala/talent-intake/internal/transport"
	"github.com/frahmantamala/talent-intake/pkg/logger"
)

type ServiceAPI interface {
	Upload(ctx context.Context, caller *internal.User, up extraction.Upload) (*JobDescription, error)
	List(ctx context.Context) ([]*JobDescription, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	maxBytes int64
}

func NewHandler(service ServiceAPI, maxBytes int64) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		maxBytes:    maxBytes,
	}
}

// UploadJD handles POST /upload-jd
func (h *Handler) UploadJD(w http.ResponseWriter, r *http.Request) {
	caller, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.Logger.Error("UploadJD: user not found in context")
		h.HandleServiceError(w, internal.ErrInvalidToken)
		return
	}

	if err := extraction.ParseMultipart(w, r, h.maxBytes, 1); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	up, file, err := extraction.FormFile(r, "file")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	defer file.Close()

	jd, err := h.Service.Upload(r.Context(), caller, up)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("UploadJD: job description stored", "id", jd.ID, "user_id", caller.ID)
	h.WriteJSON(w, http.StatusCreated, jd)
}

// ListJD handles GET /jd
func (h *Handler) ListJD(w http.ResponseWriter, r *http.Request) {
	jds, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, jds)
}
