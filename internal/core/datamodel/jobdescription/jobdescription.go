package jobdescription

import "time"

// JobDescription list columns are stored as JSON text.
type JobDescription struct {
	ID                 int64     `gorm:"primaryKey"`
	JobTitle           string    `gorm:"column:job_title;not null"`
	CompanyName        *string   `gorm:"column:company_name"`
	Location           *string   `gorm:"column:location"`
	ExperienceRequired *string   `gorm:"column:experience_required"`
	Qualifications     []string  `gorm:"column:qualifications;type:text;serializer:json"`
	Responsibilities   []string  `gorm:"column:responsibilities;type:text;serializer:json"`
	EmploymentType     *string   `gorm:"column:employment_type"`
	PrimarySkills      []string  `gorm:"column:primary_skills;type:text;serializer:json"`
	SecondarySkills    []string  `gorm:"column:secondary_skills;type:text;serializer:json"`
	TertiarySkills     []string  `gorm:"column:tertiary_skills;type:text;serializer:json"`
	JDFilePath         *string   `gorm:"column:jd_file_path"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}
