package role

type RoleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}
