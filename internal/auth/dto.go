package auth

import (
	"github.com/frahmantamala/talent-intake/internal/core/common/validation"
)

// LoginDTO is the OAuth2 password-flow form accepted by POST /token.
type LoginDTO struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (d LoginDTO) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	return nil
}
