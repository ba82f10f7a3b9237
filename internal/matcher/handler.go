package matcher

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/talent-intake/internal/extraction"
	"github.com/frahmantamala/talent-intake/internal/transport"
)

type ServiceAPI interface {
	Match(ctx context.Context, resume, jd extraction.Upload) (json.RawMessage, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	maxBytes int64
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, maxBytes int64) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		maxBytes:    maxBytes,
	}
}

// MatchResume handles POST /resume_matcher/
func (h *Handler) MatchResume(w http.ResponseWriter, r *http.Request) {
	if err := extraction.ParseMultipart(w, r, h.maxBytes, 2); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resume, resumeFile, err := extraction.FormFile(r, "resume")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	defer resumeFile.Close()

	jd, jdFile, err := extraction.FormFile(r, "jd")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	defer jdFile.Close()

	report, err := h.Service.Match(r.Context(), resume, jd)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, report)
}
