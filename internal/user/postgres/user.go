package postgres

import (
	"context"
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/user"
	"github.com/frahmantamala/talent-intake/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.RepositoryAPI using GORM. The *gorm.DB
// should be opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

// CreateWithRole inserts the user and links roleName in one transaction.
func (r *UserRepository) CreateWithRole(ctx context.Context, u *userDatamodel.User, roleName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := usernameAvailable(tx, u.Username, 0); err != nil {
			return err
		}

		if err := tx.Create(u).Error; err != nil {
			return translate(err)
		}

		role, err := roleByName(tx, roleName)
		if err != nil {
			return err
		}

		return tx.Create(&userDatamodel.UserRole{UserID: u.ID, RoleID: role.ID}).Error
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) GetRoleNames(ctx context.Context, userID int64) ([]string, error) {
	roles := []string{}
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.name ASC").
		Pluck("roles.name", &roles).Error
	return roles, err
}

func (r *UserRepository) AssignRole(ctx context.Context, userID int64, roleName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userCount int64
		if err := tx.Model(&userDatamodel.User{}).Where("id = ?", userID).Count(&userCount).Error; err != nil {
			return err
		}
		if userCount == 0 {
			return user.ErrNotFound
		}

		role, err := roleByName(tx, roleName)
		if err != nil {
			return err
		}

		var linkCount int64
		err = tx.Model(&userDatamodel.UserRole{}).
			Where("user_id = ? AND role_id = ?", userID, role.ID).
			Count(&linkCount).Error
		if err != nil {
			return err
		}
		if linkCount > 0 {
			return user.ErrRoleAlreadyAssigned
		}

		if err := tx.Create(&userDatamodel.UserRole{UserID: userID, RoleID: role.ID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return user.ErrRoleAlreadyAssigned
			}
			return err
		}
		return nil
	})
}

func (r *UserRepository) Update(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := usernameAvailable(tx, u.Username, u.ID); err != nil {
			return err
		}

		res := tx.Model(&userDatamodel.User{}).
			Where("id = ?", u.ID).
			Updates(map[string]interface{}{
				"username":      u.Username,
				"email":         u.Email,
				"first_name":    u.FirstName,
				"last_name":     u.LastName,
				"password_hash": u.PasswordHash,
				"updated_at":    time.Now(),
			})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return user.ErrNotFound
		}
		return tx.Where("id = ?", u.ID).First(u).Error
	})
}

// Delete removes role links and then the user in one transaction.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&userDatamodel.UserRole{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&userDatamodel.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return user.ErrNotFound
		}
		return nil
	})
}

func usernameAvailable(tx *gorm.DB, username string, exceptID int64) error {
	var count int64
	q := tx.Model(&userDatamodel.User{}).Where("username = ?", username)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return user.ErrDuplicateUsername
	}
	return nil
}

func roleByName(tx *gorm.DB, name string) (*userDatamodel.Role, error) {
	var role userDatamodel.Role
	if err := tx.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return user.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return user.ErrDuplicateUsername
	default:
		return err
	}
}
