package resume

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/frahmantamala/talent-intake/internal"
	resumeDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/resume"
	"github.com/frahmantamala/talent-intake/internal/core/events"
	"github.com/frahmantamala/talent-intake/internal/document"
	"github.com/frahmantamala/talent-intake/internal/extraction"
)

type RepositoryAPI interface {
	Create(ctx context.Context, r *resumeDatamodel.Resume) error
	List(ctx context.Context) ([]*resumeDatamodel.Resume, error)
}

type PipelineAPI interface {
	Prepare(ctx context.Context, up extraction.Upload, target extraction.Target) (*extraction.Extracted, error)
	ReadText(ctx context.Context, up extraction.Upload) (document.Format, string, error)
	Ask(ctx context.Context, kind, instruction, prompt string) (json.RawMessage, error)
	Failed(ctx context.Context, kind string, stage extraction.Stage, err error) error
	Persisted(ctx context.Context, kind string, recordID int64)
	Done(ctx context.Context, kind string, recordID int64, location string)
}

type Service struct {
	repo      RepositoryAPI
	pipeline  PipelineAPI
	publisher events.Publisher
	target    extraction.Target
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, pipeline PipelineAPI, publisher events.Publisher, dir string, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		pipeline:  pipeline,
		publisher: publisher,
		target:    NewTarget(dir),
		logger:    logger,
	}
}

// Upload extracts a resume from the uploaded document and stores it.
func (s *Service) Upload(ctx context.Context, caller *internal.User, up extraction.Upload) (*Resume, error) {
	out, err := s.pipeline.Prepare(ctx, up, s.target)
	if err != nil {
		return nil, err
	}

	dto, err := DecodeExtracted(out.Payload)
	if err != nil {
		return nil, s.pipeline.Failed(ctx, s.target.Kind, extraction.StageStructured, err)
	}
	if err := dto.Validate(); err != nil {
		return nil, s.pipeline.Failed(ctx, s.target.Kind, extraction.StageStructured, err)
	}

	rs := dto.ToResume(out.Location, time.Now().UTC())
	row := ToDataModel(rs)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, s.pipeline.Failed(ctx, s.target.Kind, extraction.StageStructured, internal.ErrPersistence.WithCause(err))
	}
	rs.ID = row.ID
	s.pipeline.Persisted(ctx, s.target.Kind, rs.ID)

	if s.publisher != nil {
		var userID int64
		if caller != nil {
			userID = caller.ID
		}
		event := events.NewDocumentExtractedEvent(s.target.Kind, rs.ID, out.Location, userID)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish document.extracted", "record_id", rs.ID, "error", err)
		}
	}

	s.pipeline.Done(ctx, s.target.Kind, rs.ID, out.Location)
	return rs, nil
}

func (s *Service) List(ctx context.Context) ([]*Resume, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list resumes", "error", err)
		return nil, internal.NewInternalError("Database error", err)
	}

	out := make([]*Resume, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row).listView())
	}
	return out, nil
}

// Details returns whatever the model reads out of the resume. Nothing is
// stored.
func (s *Service) Details(ctx context.Context, up extraction.Upload) (json.RawMessage, error) {
	_, text, err := s.pipeline.ReadText(ctx, up)
	if err != nil {
		return nil, s.pipeline.Failed(ctx, "resume_details", extraction.StageReceived, err)
	}
	return s.pipeline.Ask(ctx, "resume_details", detailsInstruction, detailsPrompt(text))
}
