package jobdescription

import (
	"time"

	jdDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/jobdescription"
)

// JobDescription is a stored job posting as returned by the API.
type JobDescription struct {
	ID                 int64     `json:"id"`
	JobTitle           string    `json:"job_title"`
	CompanyName        *string   `json:"company_name"`
	Location           *string   `json:"location"`
	ExperienceRequired *string   `json:"experience_required"`
	Qualifications     []string  `json:"qualifications"`
	Responsibilities   []string  `json:"responsibilities"`
	EmploymentType     *string   `json:"employment_type"`
	PrimarySkills      []string  `json:"primary_skills"`
	SecondarySkills    []string  `json:"secondary_skills"`
	TertiarySkills     []string  `json:"tertiary_skills"`
	JDFilePath         *string   `json:"jd_file_path"`
	CreatedAt          time.Time `json:"created_at"`
}

func ToDataModel(jd *JobDescription) *jdDatamodel.JobDescription {
	return &jdDatamodel.JobDescription{
		ID:                 jd.ID,
		JobTitle:           jd.JobTitle,
		CompanyName:        jd.CompanyName,
		Location:           jd.Location,
		ExperienceRequired: jd.ExperienceRequired,
		Qualifications:     nonNil(jd.Qualifications),
		Responsibilities:   nonNil(jd.Responsibilities),
		EmploymentType:     jd.EmploymentType,
		PrimarySkills:      nonNil(jd.PrimarySkills),
		SecondarySkills:    nonNil(jd.SecondarySkills),
		TertiarySkills:     nonNil(jd.TertiarySkills),
		JDFilePath:         jd.JDFilePath,
		CreatedAt:          jd.CreatedAt,
	}
}

func FromDataModel(dm *jdDatamodel.JobDescription) *JobDescription {
	return &JobDescription{
		ID:                 dm.ID,
		JobTitle:           dm.JobTitle,
		CompanyName:        dm.CompanyName,
		Location:           dm.Location,
		ExperienceRequired: dm.ExperienceRequired,
		Qualifications:     nonNil(dm.Qualifications),
		Responsibilities:   nonNil(dm.Responsibilities),
		EmploymentType:     dm.EmploymentType,
		PrimarySkills:      nonNil(dm.PrimarySkills),
		SecondarySkills:    nonNil(dm.SecondarySkills),
		TertiarySkills:     nonNil(dm.TertiarySkills),
		JDFilePath:         dm.JDFilePath,
		CreatedAt:          dm.CreatedAt,
	}
}

// listView fills the text columns the listing never reports as null.
func (jd *JobDescription) listView() *JobDescription {
	out := *jd
	out.ExperienceRequired = orEmpty(jd.ExperienceRequired)
	out.EmploymentType = orEmpty(jd.EmploymentType)
	return &out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func orEmpty(s *string) *string {
	if s != nil {
		return s
	}
	empty := ""
	return &empty
}
