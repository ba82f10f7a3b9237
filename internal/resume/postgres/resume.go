package postgres

import (
	"context"

	resumeDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/resume"
	"github.com/frahmantamala/talent-intake/internal/resume"
	"gorm.io/gorm"
)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) resume.RepositoryAPI {
	return &ResumeRepository{db: db}
}

func (r *ResumeRepository) Create(ctx context.Context, rs *resumeDatamodel.Resume) error {
	return r.db.WithContext(ctx).Create(rs).Error
}

func (r *ResumeRepository) List(ctx context.Context) ([]*resumeDatamodel.Resume, error) {
	var rows []*resumeDatamodel.Resume
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}
