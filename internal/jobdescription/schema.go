package jobdescription

import (
	"github.com/frahmantamala/talent-intake/internal/core/events"
	"github.com/frahmantamala/talent-intake/internal/extraction"
	"github.com/frahmantamala/talent-intake/internal/llm"
)

const instruction = `answer should based on given context
Extract the following details from this job description text. Respond ONLY by calling record_job_description with these fields:
job_title: string
company_name: string
location: string
experience_required: string
qualifications: list of strings
responsibilities: list of strings
employment_type: string
primary_skills: list of strings
secondary_skills: list of strings
tertiary_skills: list of strings`

func stringList(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"items":       map[string]any{"type": "string"},
	}
}

func text(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

var schema = llm.Schema{
	Name:        "record_job_description",
	Description: "Record the structured details of a job description.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"job_title":           text("Title of the advertised position"),
			"company_name":        text("Hiring company"),
			"location":            text("Work location"),
			"experience_required": text("Required experience, e.g. 3-5 years"),
			"qualifications":      stringList("Required qualifications"),
			"responsibilities":    stringList("Responsibilities of the role"),
			"employment_type":     text("Full-time, part-time, contract and so on"),
			"primary_skills":      stringList("Must-have skills"),
			"secondary_skills":    stringList("Nice-to-have skills"),
			"tertiary_skills":     stringList("Other skills mentioned"),
		},
		"required": []string{"job_title"},
	},
}

// NewTarget describes job description extraction with uploads stored
// under dir.
func NewTarget(dir string) extraction.Target {
	return extraction.Target{
		Kind:        events.DocumentKindJobDescription,
		Dir:         dir,
		Instruction: instruction,
		Schema:      schema,
	}
}
