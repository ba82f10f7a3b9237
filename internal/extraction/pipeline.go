// Package extraction runs uploaded documents through storage, text
// extraction and the language model.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/internal/document"
	"github.com/frahmantamala/talent-intake/internal/llm"
	"github.com/frahmantamala/talent-intake/internal/storage"
)

type ModelAPI interface {
	Extract(ctx context.Context, instruction, text string, schema llm.Schema) (llm.Reply, error)
	Generate(ctx context.Context, instruction, prompt string) (llm.Reply, error)
}

// Upload is one multipart file as received.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// Target describes what a document is extracted into.
type Target struct {
	Kind        string
	Dir         string
	Instruction string
	Schema      llm.Schema
}

// Extracted is the outcome of Prepare: a stored original, its text and the
// JSON object produced by the model.
type Extracted struct {
	Format   document.Format
	Location string
	Text     string
	Payload  []byte
}

type Pipeline struct {
	storage  storage.ObjectStorage
	model    ModelAPI
	maxBytes int64
	logger   *slog.Logger
}

func NewPipeline(store storage.ObjectStorage, model ModelAPI, maxBytes int64, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		storage:  store,
		model:    model,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Prepare validates the upload, stores it, extracts its text and asks the
// model for the target object. The extension is checked before anything
// is stored and the model is never called for an empty document.
func (p *Pipeline) Prepare(ctx context.Context, up Upload, target Target) (*Extracted, error) {
	stage := StageReceived

	format, err := document.FormatFromFilename(up.Filename)
	if err != nil {
		return nil, p.Failed(ctx, target.Kind, stage, internal.ErrUnsupportedMediaType)
	}

	data, err := p.load(up)
	if err != nil {
		return nil, p.Failed(ctx, target.Kind, stage, err)
	}

	key := path.Join(target.Dir, uuid.NewString()+format.Extension())
	contentType, matched := document.SniffContentType(data, format)
	if !matched {
		p.logger.DebugContext(ctx, "upload content does not match its extension", "target", target.Kind, "format", format)
	}

	location, err := p.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, p.Failed(ctx, target.Kind, stage, internal.ErrStorage.WithCause(err))
	}

	text, err := p.text(ctx, format, data)
	if err != nil {
		return nil, p.Failed(ctx, target.Kind, stage, err)
	}
	stage = StageTextExtracted

	reply, err := p.model.Extract(ctx, target.Instruction, text, target.Schema)
	if err != nil {
		return nil, p.Failed(ctx, target.Kind, stage, internal.ErrUpstream.WithCause(err))
	}

	payload, err := reply.Parse()
	if err != nil {
		return nil, p.Failed(ctx, target.Kind, stage, UpstreamParseError(err))
	}

	p.logger.DebugContext(ctx, "document structured",
		"target", target.Kind,
		"stage", StageStructured,
		"format", format,
		"reply_kind", reply.Kind.String(),
		"text_chars", len(text),
	)

	return &Extracted{
		Format:   format,
		Location: location,
		Text:     text,
		Payload:  payload,
	}, nil
}

// ReadText applies the same extension and content checks as Prepare but
// keeps nothing.
func (p *Pipeline) ReadText(ctx context.Context, up Upload) (document.Format, string, error) {
	format, err := document.FormatFromFilename(up.Filename)
	if err != nil {
		return "", "", internal.ErrUnsupportedMediaType
	}
	data, err := p.load(up)
	if err != nil {
		return "", "", err
	}
	text, err := p.text(ctx, format, data)
	if err != nil {
		return "", "", err
	}
	return format, text, nil
}

// Ask sends prompt in JSON mode and returns the parsed object. Any model
// or parse failure is reported as a plain 500.
func (p *Pipeline) Ask(ctx context.Context, kind, instruction, prompt string) (json.RawMessage, error) {
	reply, err := p.model.Generate(ctx, instruction, prompt)
	if err != nil {
		return nil, p.Failed(ctx, kind, StageTextExtracted, internal.NewInternalError("Internal server error", err))
	}
	payload, err := reply.Parse()
	if err != nil {
		return nil, p.Failed(ctx, kind, StageTextExtracted, internal.NewInternalError("Internal server error", err))
	}
	return payload, nil
}

// Failed logs err together with the stage the request had reached and
// returns it unchanged.
func (p *Pipeline) Failed(ctx context.Context, kind string, stage Stage, err error) error {
	attrs := []any{"target", kind, "stage", stage, "error", err}
	if appErr, ok := internal.IsAppError(err); ok && appErr.StatusCode < 500 {
		p.logger.WarnContext(ctx, "extraction rejected", attrs...)
	} else {
		p.logger.ErrorContext(ctx, "extraction failed", attrs...)
	}
	return err
}

// Persisted records that the extracted row was committed.
func (p *Pipeline) Persisted(ctx context.Context, kind string, recordID int64) {
	p.logger.DebugContext(ctx, "document persisted",
		"target", kind,
		"stage", StagePersisted,
		"record_id", recordID,
	)
}

// Done records a completed extraction.
func (p *Pipeline) Done(ctx context.Context, kind string, recordID int64, location string) {
	p.logger.InfoContext(ctx, "extraction finished",
		"target", kind,
		"stage", StageDone,
		"record_id", recordID,
		"location", location,
	)
}

func (p *Pipeline) load(up Upload) ([]byte, error) {
	if up.Body == nil {
		return nil, internal.NewValidationError("file is required", internal.ErrCodeInvalidBody)
	}
	if p.maxBytes > 0 && up.Size > p.maxBytes {
		return nil, internal.ErrFileTooLarge
	}

	r := up.Body
	if p.maxBytes > 0 {
		r = io.LimitReader(up.Body, p.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, internal.NewValidationError("could not read uploaded file", internal.ErrCodeInvalidBody).WithCause(err)
	}
	if p.maxBytes > 0 && int64(len(data)) > p.maxBytes {
		return nil, internal.ErrFileTooLarge
	}
	return data, nil
}

func (p *Pipeline) text(ctx context.Context, format document.Format, data []byte) (string, error) {
	text, err := document.ExtractText(ctx, format, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		var extractErr *document.ExtractError
		if errors.As(err, &extractErr) {
			return "", internal.ErrDocumentUnreadable.
				WithMessage(fmt.Sprintf("%s extraction failed", format.Label())).
				WithCause(err)
		}
		return "", internal.NewInternalError("text extraction aborted", err)
	}
	if text == "" {
		return "", internal.ErrNoContent
	}
	return text, nil
}

// UpstreamParseError maps a failed llm.Reply parse onto the API error.
func UpstreamParseError(err error) error {
	var parseErr *llm.ParseError
	if errors.As(err, &parseErr) {
		return internal.ErrUpstreamParse.WithMessage(parseErr.Error()).WithCause(err)
	}
	return internal.ErrUpstreamParse.WithCause(err)
}
