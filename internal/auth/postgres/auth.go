package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/talent-intake/internal/auth"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentials(ctx context.Context, username string) (*auth.Credentials, error) {
	var creds auth.Credentials
	query := r.db.Rebind(`SELECT id, username, password_hash, is_active FROM users WHERE username = ?`)

	if err := r.db.GetContext(ctx, &creds, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	return &creds, nil
}

func (r *Repository) GetRoleNames(ctx context.Context, userID int64) ([]string, error) {
	query := r.db.Rebind(`SELECT r.name
	             FROM roles r
	             JOIN user_roles ur ON r.id = ur.role_id
	             WHERE ur.user_id = ?
	             ORDER BY r.name`)

	roles := []string{}
	if err := r.db.SelectContext(ctx, &roles, query, userID); err != nil {
		return nil, fmt.Errorf("get role names: %w", err)
	}
	return roles, nil
}
