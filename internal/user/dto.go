package user

import (
	"fmt"

	"github.com/frahmantamala/talent-intake/internal/core/common/validation"
)

// RegisterDTO is the POST /register body.
type RegisterDTO struct {
	Username  string `json:"username" validate:"required,min=3,max=50,printascii"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

func (d *RegisterDTO) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	return nil
}

// UpdateUserDTO carries a partial profile update; nil fields are left as is.
type UpdateUserDTO struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=50,printascii"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=72"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

func (d *UpdateUserDTO) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	return nil
}

// IsEmpty reports a body that changes nothing.
func (d *UpdateUserDTO) IsEmpty() bool {
	return d.Username == nil && d.Password == nil && d.Email == nil && d.FirstName == nil && d.LastName == nil
}

// AssignRoleDTO is the POST /roles/assign body.
type AssignRoleDTO struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	RoleName string `json:"role_name" validate:"required,max=50"`
}

func (d *AssignRoleDTO) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	return nil
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

func roleAssignedDetail(roleName string, userID int64) DetailResponse {
	return DetailResponse{Detail: fmt.Sprintf("Role '%s' assigned to user %d", roleName, userID)}
}
