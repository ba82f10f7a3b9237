package resume

import "time"

// Resume list columns are stored as JSON text.
type Resume struct {
	ID             int64     `gorm:"primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	Location       *string   `gorm:"column:location"`
	Education      []string  `gorm:"column:education;type:text;serializer:json"`
	Skills         []string  `gorm:"column:skills;type:text;serializer:json"`
	Email          *string   `gorm:"column:email"`
	Phone          *string   `gorm:"column:phone"`
	Experience     []string  `gorm:"column:experience;type:text;serializer:json"`
	WorkedCompany  *string   `gorm:"column:worked_company"`
	ExperienceYear *int      `gorm:"column:experience_year"`
	GithubLink     *string   `gorm:"column:github_link"`
	LinkedinLink   *string   `gorm:"column:linkedin_link"`
	ResumeFilePath *string   `gorm:"column:resume_file_path"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (Resume) TableName() string {
	return "resume_checker"
}
