package resume

import (
	"github.com/frahmantamala/talent-intake/internal/core/events"
	"github.com/frahmantamala/talent-intake/internal/extraction"
	"github.com/frahmantamala/talent-intake/internal/llm"
)

const instruction = `answer should based on given context
Extract the following details from this resume text. Respond ONLY by calling record_resume with these fields:
name: string
location: string
education: list of strings
skills: list of strings
email: string
phone: string
experience: list of strings
worked_company: string
experience_year: integer
github_link: string
linkedin_link: string`

// detailsInstruction asks for everything in the resume, in no fixed shape.
const detailsInstruction = "I have given resume i need all details in resume"

var schema = llm.Schema{
	Name:        "record_resume",
	Description: "Record the structured details of a candidate resume.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":            map[string]any{"type": "string", "description": "Candidate full name"},
			"location":        map[string]any{"type": "string"},
			"education":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"skills":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"email":           map[string]any{"type": "string"},
			"phone":           map[string]any{"type": "string"},
			"experience":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"worked_company":  map[string]any{"type": "string", "description": "Most recent employer"},
			"experience_year": map[string]any{"type": "integer", "description": "Total years of professional experience"},
			"github_link":     map[string]any{"type": "string"},
			"linkedin_link":   map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	},
}

func NewTarget(dir string) extraction.Target {
	return extraction.Target{
		Kind:        events.DocumentKindResume,
		Dir:         dir,
		Instruction: instruction,
		Schema:      schema,
	}
}

func detailsPrompt(text string) string {
	return "---\nResume:\n" + text + "\n---"
}
