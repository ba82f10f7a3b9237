package resume

import (
	"time"

	resumeDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/resume"
)

type Resume struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Location       *string   `json:"location"`
	Education      []string  `json:"education"`
	Skills         []string  `json:"skills"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Experience     []string  `json:"experience"`
	WorkedCompany  *string   `json:"worked_company"`
	ExperienceYear *int      `json:"experience_year"`
	GithubLink     *string   `json:"github_link"`
	LinkedinLink   *string   `json:"linkedin_link"`
	ResumeFilePath *string   `json:"resume_file_path"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToDataModel(r *Resume) *resumeDatamodel.Resume {
	return &resumeDatamodel.Resume{
		ID:             r.ID,
		Name:           r.Name,
		Location:       r.Location,
		Education:      nonNil(r.Education),
		Skills:         nonNil(r.Skills),
		Email:          r.Email,
		Phone:          r.Phone,
		Experience:     nonNil(r.Experience),
		WorkedCompany:  r.WorkedCompany,
		ExperienceYear: r.ExperienceYear,
		GithubLink:     r.GithubLink,
		LinkedinLink:   r.LinkedinLink,
		ResumeFilePath: r.ResumeFilePath,
		CreatedAt:      r.CreatedAt,
	}
}

func FromDataModel(dm *resumeDatamodel.Resume) *Resume {
	return &Resume{
		ID:             dm.ID,
		Name:           dm.Name,
		Location:       dm.Location,
		Education:      nonNil(dm.Education),
		Skills:         nonNil(dm.Skills),
		Email:          dm.Email,
		Phone:          dm.Phone,
		Experience:     nonNil(dm.Experience),
		WorkedCompany:  dm.WorkedCompany,
		ExperienceYear: dm.ExperienceYear,
		GithubLink:     dm.GithubLink,
		LinkedinLink:   dm.LinkedinLink,
		ResumeFilePath: dm.ResumeFilePath,
		CreatedAt:      dm.CreatedAt,
	}
}

// listView reports null text columns as "" and a null experience_year as 0.
func (r *Resume) listView() *Resume {
	out := *r
	out.Location = orEmpty(r.Location)
	out.Email = orEmpty(r.Email)
	out.Phone = orEmpty(r.Phone)
	out.WorkedCompany = orEmpty(r.WorkedCompany)
	out.GithubLink = orEmpty(r.GithubLink)
	out.LinkedinLink = orEmpty(r.LinkedinLink)
	if r.ExperienceYear == nil {
		zero := 0
		out.ExperienceYear = &zero
	}
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
