package jobdescription

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/talent-intake/internal"
	jdDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/jobdescription"
	"github.com/frahmantamala/talent-intake/internal/core/events"
	"github.com/frahmantamala/talent-intake/internal/extraction"
)

type RepositoryAPI interface {
	Create(ctx context.Context, jd *jdDatamodel.JobDescription) error
	List(ctx context.Context) ([]*jdDatamodel.JobDescription, error)
}

type PipelineAPI interface {
	Prepare(ctx context.Context, up extraction.Upload, target extraction.Target) (*extraction.Extracted, error)
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

// NewService stores uploads under dir. publisher may be nil.
func NewService(repo RepositoryAPI, pipeline PipelineAPI, publisher events.Publisher, dir string, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		pipeline:  pipeline,
		publisher: publisher,
		target:    NewTarget(dir),
		logger:    logger,
	}
}

// Upload extracts a job description from the uploaded document and stores
// it. Nothing is persisted unless the model returned a job title.
func (s *Service) Upload(ctx context.Context, caller *internal.User, up extraction.Upload) (*JobDescription, error) {
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

	jd := dto.ToJobDescription(out.Location, time.Now().UTC())
	row := ToDataModel(jd)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, s.pipeline.Failed(ctx, s.target.Kind, extraction.StageStructured, internal.ErrPersistence.WithCause(err))
	}
	jd.ID = row.ID
	s.pipeline.Persisted(ctx, s.target.Kind, jd.ID)

	s.publish(ctx, caller, jd.ID, out.Location)
	s.pipeline.Done(ctx, s.target.Kind, jd.ID, out.Location)
	return jd, nil
}

func (s *Service) List(ctx context.Context) ([]*JobDescription, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list job descriptions", "error", err)
		return nil, internal.NewInternalError("Database error", err)
	}

	out := make([]*JobDescription, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row).listView())
	}
	return out, nil
}

// publish announces the stored row. The row is already committed, so a
// dispatch failure is only logged.
func (s *Service) publish(ctx context.Context, caller *internal.User, id int64, location string) {
	if s.publisher == nil {
		return
	}
	var userID int64
	if caller != nil {
		userID = caller.ID
	}
	event := events.NewDocumentExtractedEvent(s.target.Kind, id, location, userID)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish document.extracted", "record_id", id, "error", err)
	}
}
