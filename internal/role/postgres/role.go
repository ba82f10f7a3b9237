package postgres

import (
	"context"
	"errors"

	userDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/user"
	"github.com/frahmantamala/talent-intake/internal/role"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetAll(ctx context.Context) ([]*userDatamodel.Role, error) {
	var roles []*userDatamodel.Role
	err := r.db.WithContext(ctx).Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*userDatamodel.Role, error) {
	var rl userDatamodel.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&rl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rl, nil
}

func (r *RoleRepository) Create(ctx context.Context, rl *userDatamodel.Role) error {
	return r.db.WithContext(ctx).Create(rl).Error
}
