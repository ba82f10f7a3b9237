package postgres

import (
	"context"

	jdDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/jobdescription"
	"github.com/frahmantamala/talent-intake/internal/jobdescription"
	"gorm.io/gorm"
)

type JobDescriptionRepository struct {
	db *gorm.DB
}

func NewJobDescriptionRepository(db *gorm.DB) jobdescription.RepositoryAPI {
	return &JobDescriptionRepository{db: db}
}

func (r *JobDescriptionRepository) Create(ctx context.Context, jd *jdDatamodel.JobDescription) error {
	return r.db.WithContext(ctx).Create(jd).Error
}

// List returns every job description in insertion order.
func (r *JobDescriptionRepository) List(ctx context.Context) ([]*jdDatamodel.JobDescription, error) {
	var rows []*jdDatamodel.JobDescription
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}
