package resume

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/internal/extraction"
)

// ExtractedDTO is the model's answer before validation. experience_year
// may arrive as a number or a string such as "4 years".
type ExtractedDTO struct {
	Name           extraction.FlexString  `json:"name"`
	Location       extraction.FlexString  `json:"location"`
	Education      extraction.FlexStrings `json:"education"`
	Skills         extraction.FlexStrings `json:"skills"`
	Email          extraction.FlexString  `json:"email"`
	Phone          extraction.FlexString  `json:"phone"`
	Experience     extraction.FlexStrings `json:"experience"`
	WorkedCompany  extraction.FlexString  `json:"worked_company"`
	ExperienceYear *extraction.FlexInt    `json:"experience_year"`
	GithubLink     extraction.FlexString  `json:"github_link"`
	LinkedinLink   extraction.FlexString  `json:"linkedin_link"`
}

func DecodeExtracted(payload []byte) (*ExtractedDTO, error) {
	var dto ExtractedDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return nil, internal.ErrUpstreamParse.WithCause(err)
	}
	return &dto, nil
}

// Validate requires the candidate name.
func (d *ExtractedDTO) Validate() error {
	if strings.TrimSpace(string(d.Name)) == "" {
		return internal.ErrIncompleteExtraction
	}
	return nil
}

func (d *ExtractedDTO) ToResume(location string, now time.Time) *Resume {
	var years *int
	if d.ExperienceYear != nil {
		years = d.ExperienceYear.Ptr()
	}
	return &Resume{
		Name:           string(d.Name),
		Location:       d.Location.Ptr(),
		Education:      d.Education.Slice(),
		Skills:         d.Skills.Slice(),
		Email:          d.Email.Ptr(),
		Phone:          d.Phone.Ptr(),
		Experience:     d.Experience.Slice(),
		WorkedCompany:  d.WorkedCompany.Ptr(),
		ExperienceYear: years,
		GithubLink:     d.GithubLink.Ptr(),
		LinkedinLink:   d.LinkedinLink.Ptr(),
		ResumeFilePath: extraction.FlexString(location).Ptr(),
		CreatedAt:      now,
	}
}
