package role

import (
	userDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/user"
)

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r *Role) ToResponse() RoleResponse {
	return RoleResponse{
		ID:   r.ID,
		Name: r.Name,
	}
}

func NewRole(name string) *Role {
	return &Role{Name: name}
}

func ToDataModel(r *Role) *userDatamodel.Role {
	return &userDatamodel.Role{
		ID:   r.ID,
		Name: r.Name,
	}
}

func FromDataModel(r *userDatamodel.Role) *Role {
	return &Role{
		ID:   r.ID,
		Name: r.Name,
	}
}
