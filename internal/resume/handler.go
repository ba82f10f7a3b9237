package resume

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/internal/extraction"
	"github.com/frahmantamala/talent-intake/internal/transport"
	"github.com/frahmantamala/talent-intake/pkg/logger"
)

type ServiceAPI interface {
	Upload(ctx context.Context, caller *internal.User, up extraction.Upload) (*Resume, error)
	List(ctx context.Context) ([]*Resume, error)
	Details(ctx context.Context, up extraction.Upload) (json.RawMessage, error)
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

// UploadResume handles POST /upload-resume
func (h *Handler) UploadResume(w http.ResponseWriter, r *http.Request) {
	caller, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.Logger.Error("UploadResume: user not found in context")
		h.HandleServiceError(w, internal.ErrInvalidToken)
		return
	}

	up, closeFile, err := h.formFile(w, r, "file")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	defer closeFile()

	rs, err := h.Service.Upload(r.Context(), caller, up)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("UploadResume: resume stored", "id", rs.ID, "user_id", caller.ID)
	h.WriteJSON(w, http.StatusCreated, rs)
}

// ListResumes handles GET /resumes
func (h *Handler) ListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resumes)
}

// ResumeDetails handles POST /resume_detials/
func (h *Handler) ResumeDetails(w http.ResponseWriter, r *http.Request) {
	up, closeFile, err := h.formFile(w, r, "resume")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	defer closeFile()

	details, err := h.Service.Details(r.Context(), up)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) formFile(w http.ResponseWriter, r *http.Request, field string) (extraction.Upload, func(), error) {
	if err := extraction.ParseMultipart(w, r, h.maxBytes, 1); err != nil {
		return extraction.Upload{}, nil, err
	}
	up, file, err := extraction.FormFile(r, field)
	if err != nil {
		return extraction.Upload{}, nil, err
	}
	return up, func() { _ = file.Close() }, nil
}
