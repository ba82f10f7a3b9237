// Package matcher compares a resume with a job description through the
// language model.
package matcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/talent-intake/internal/document"
	"github.com/frahmantamala/talent-intake/internal/extraction"
)

const kind = "resume_match"

// QualifyingPercentage is the skill match above which a resume qualifies.
const QualifyingPercentage = 70

var instruction = fmt.Sprintf(`I have given resume and job description, your work is to match the resume with jd,

consider following points while matching and match one by one and see all skills dont forget anything
1. list the candidate details in separate line like name, email, phone number etc
2. get the candidate highest education details
3. get the internship / experience in company
4. similarly list skills in candidate
5. match the skills using job description and list them display matching and unmatched skills
6. find the skill matching percentage
7. If matching percentage is more than %d display Resume qualified successfully otherwise display resume not qualified
8. give summary for selecting or not selecting the resume in 3 sentences
Give all above information in separate line
and read jd and resume properly
provide the output in structural way with json format`, QualifyingPercentage)

type PipelineAPI interface {
	ReadText(ctx context.Context, up extraction.Upload) (document.Format, string, error)
	Ask(ctx context.Context, kind, instruction, prompt string) (json.RawMessage, error)
	Failed(ctx context.Context, kind string, stage extraction.Stage, err error) error
}

type Service struct {
	pipeline PipelineAPI
	logger   *slog.Logger
}

func NewService(pipeline PipelineAPI, logger *slog.Logger) *Service {
	return &Service{
		pipeline: pipeline,
		logger:   logger,
	}
}

// Match returns the model's assessment unchanged. Both files must be PDF
// or DOCX with readable text before the model is asked.
func (s *Service) Match(ctx context.Context, resume, jd extraction.Upload) (json.RawMessage, error) {
	_, resumeText, err := s.pipeline.ReadText(ctx, resume)
	if err != nil {
		return nil, s.pipeline.Failed(ctx, kind, extraction.StageReceived, err)
	}
	_, jdText, err := s.pipeline.ReadText(ctx, jd)
	if err != nil {
		return nil, s.pipeline.Failed(ctx, kind, extraction.StageReceived, err)
	}

	report, err := s.pipeline.Ask(ctx, kind, instruction, Prompt(jdText, resumeText))
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "resume matched", "resume", resume.Filename, "jd", jd.Filename, "report_bytes", len(report))
	return report, nil
}

// Prompt embeds both documents in delimited sections, job description first.
func Prompt(jdText, resumeText string) string {
	return fmt.Sprintf("---\nJob Description:\n%s\n---\n\n---\nResume:\n%s\n---", jdText, resumeText)
}
