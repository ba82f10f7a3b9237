package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/talent-intake/internal"
)

// Identity is what gets encoded into an access token.
type Identity struct {
	UserID   int64
	Username string
	Roles    []string
}

// Credentials is the stored login material for a username.
type Credentials struct {
	UserID       int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	IsActive     bool   `db:"is_active"`
}

// Token is the /token response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Claims represents JWT token claims
type Claims struct {
	Username string   `json:"username"`
	UserID   int64    `json:"user_id"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c *Claims) Principal() *internal.User {
	return &internal.User{
		ID:       c.UserID,
		Username: c.Username,
		Roles:    c.Roles,
	}
}

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*Token, error)
	ValidateAccessToken(tokenString string) (*internal.User, error)
}

type RepositoryAPI interface {
	GetCredentials(ctx context.Context, username string) (*Credentials, error)
	GetRoleNames(ctx context.Context, userID int64) ([]string, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(identity Identity) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	TTL() time.Duration
}

type JWTTokenGenerator struct {
	Secret         []byte
	Issuer         string
	AccessTokenTTL time.Duration
	now            func() time.Time
}

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrMissingClaims       = errors.New("token identity claims are incomplete")
	ErrForbidden           = internal.NewForbiddenError("Insufficient privileges", internal.ErrCodeInsufficientRole)
)
