package user

import "slices"

const (
	RoleAdmin     = "Admin"
	RoleModerator = "Moderator"
	RoleUser      = "User"

	DefaultRole = RoleUser
)

// DefaultRoles is the seed catalog.
var DefaultRoles = []string{RoleAdmin, RoleModerator, RoleUser}

// Principal is the authenticated caller as decoded from a bearer token.
type Principal struct {
	ID       int64
	Username string
	Roles    []string
}

func (p *Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

func (p *Principal) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
