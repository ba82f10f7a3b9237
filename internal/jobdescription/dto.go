package jobdescription

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/internal/extraction"
)

// ExtractedDTO is the model's answer before validation.
type ExtractedDTO struct {
	JobTitle           extraction.FlexString  `json:"job_title"`
	CompanyName        extraction.FlexString  `json:"company_name"`
	Location           extraction.FlexString  `json:"location"`
	ExperienceRequired extraction.FlexString  `json:"experience_required"`
	Qualifications     extraction.FlexStrings `json:"qualifications"`
	Responsibilities   extraction.FlexStrings `json:"responsibilities"`
	EmploymentType     extraction.FlexString  `json:"employment_type"`
	PrimarySkills      extraction.FlexStrings `json:"primary_skills"`
	SecondarySkills    extraction.FlexStrings `json:"secondary_skills"`
	TertiarySkills     extraction.FlexStrings `json:"tertiary_skills"`
}

func DecodeExtracted(payload []byte) (*ExtractedDTO, error) {
	var dto ExtractedDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return nil, internal.ErrUpstreamParse.WithCause(err)
	}
	return &dto, nil
}

// Validate requires a job title.
func (d *ExtractedDTO) Validate() error {
	if strings.TrimSpace(string(d.JobTitle)) == "" {
		return internal.ErrIncompleteExtraction
	}
	return nil
}

func (d *ExtractedDTO) ToJobDescription(location string, now time.Time) *JobDescription {
	return &JobDescription{
		JobTitle:           string(d.JobTitle),
		CompanyName:        d.CompanyName.Ptr(),
		Location:           d.Location.Ptr(),
		ExperienceRequired: d.ExperienceRequired.Ptr(),
		Qualifications:     d.Qualifications.Slice(),
		Responsibilities:   d.Responsibilities.Slice(),
		EmploymentType:     d.EmploymentType.Ptr(),
		PrimarySkills:      d.PrimarySkills.Slice(),
		SecondarySkills:    d.SecondarySkills.Slice(),
		TertiarySkills:     d.TertiarySkills.Slice(),
		JDFilePath:         extraction.FlexString(location).Ptr(),
		CreatedAt:          now,
	}
}
