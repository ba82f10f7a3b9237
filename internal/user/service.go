package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/internal/auth"
	userDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/user"
	"github.com/frahmantamala/talent-intake/internal/core/events"
	coreUser "github.com/frahmantamala/talent-intake/internal/core/user"
)

// RepositoryAPI is the user store. Multi-statement writes (CreateWithRole,
// AssignRole, Delete) must be atomic.
type RepositoryAPI interface {
	CreateWithRole(ctx context.Context, u *userDatamodel.User, roleName string) error
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	GetRoleNames(ctx context.Context, userID int64) ([]string, error)
	AssignRole(ctx context.Context, userID int64, roleName string) error
	Update(ctx context.Context, u *userDatamodel.User) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	publisher  events.Publisher
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// WithPublisher makes Register announce new accounts on p.
func (s *Service) WithPublisher(p events.Publisher) *Service {
	s.publisher = p
	return s
}

// Register creates the account together with the default role.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("Could not create user", err)
	}

	record := &userDatamodel.User{
		Username:     strings.TrimSpace(dto.Username),
		PasswordHash: hash,
		Email:        dto.Email,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		IsActive:     true,
	}

	if err := s.repo.CreateWithRole(ctx, record, coreUser.DefaultRole); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUsername):
			return nil, internal.ErrUsernameTaken
		case errors.Is(err, ErrRoleNotFound):
			s.logger.ErrorContext(ctx, "default role missing, run the seed command", "role", coreUser.DefaultRole)
			return nil, internal.NewInternalError("Could not create user", err)
		default:
			return nil, internal.NewInternalError("Could not create user", err)
		}
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", record.ID)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewUserRegisteredEvent(record.ID)); err != nil {
			s.logger.WarnContext(ctx, "failed to publish user registered event", "user_id", record.ID, "error", err)
		}
	}
	return FromDataModelWithRoles(record, []string{coreUser.DefaultRole}), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err)
	}
	return s.withRoles(ctx, record)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	record, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, s.mapLookupError(err)
	}
	return s.withRoles(ctx, record)
}

func (s *Service) ListRoles(ctx context.Context, id int64) ([]string, error) {
	roles, err := s.repo.GetRoleNames(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load roles", err)
	}
	if roles == nil {
		roles = []string{}
	}
	return roles, nil
}

func (s *Service) AssignRole(ctx context.Context, dto AssignRoleDTO) (*DetailResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.AssignRole(ctx, dto.UserID, dto.RoleName); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, internal.ErrUserNotFound
		case errors.Is(err, ErrRoleNotFound):
			return nil, internal.ErrRoleNotFound
		case errors.Is(err, ErrRoleAlreadyAssigned):
			return nil, internal.ErrRoleAlreadyAssigned
		default:
			return nil, internal.NewInternalError("failed to assign role", err)
		}
	}

	s.logger.InfoContext(ctx, "role assigned", "user_id", dto.UserID, "role", dto.RoleName)
	detail := roleAssignedDetail(dto.RoleName, dto.UserID)
	return &detail, nil
}

// Update applies dto to the user identified by id. Only the user
// themselves or an admin may do so.
func (s *Service) Update(ctx context.Context, caller *internal.User, id int64, dto UpdateUserDTO) (*User, error) {
	if caller == nil {
		return nil, internal.ErrInvalidToken
	}
	if caller.ID != id && !caller.IsAdmin() {
		return nil, internal.ErrNotResourceOwner
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err)
	}
	if dto.IsEmpty() {
		return s.withRoles(ctx, record)
	}

	if dto.Username != nil {
		record.Username = strings.TrimSpace(*dto.Username)
	}
	if dto.Email != nil {
		record.Email = *dto.Email
	}
	if dto.FirstName != nil {
		record.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		record.LastName = *dto.LastName
	}
	if dto.Password != nil {
		hash, err := auth.HashPassword(*dto.Password, s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to update user", err)
		}
		record.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, record); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUsername):
			return nil, internal.ErrUsernameTaken
		case errors.Is(err, ErrNotFound):
			return nil, internal.ErrUserNotFound
		default:
			return nil, internal.NewInternalError("failed to update user", err)
		}
	}

	s.logger.InfoContext(ctx, "user updated", "user_id", id, "by", caller.ID, "password_changed", dto.Password != nil)
	return s.withRoles(ctx, record)
}

func (s *Service) Delete(ctx context.Context, id int64) (*DetailResponse, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("failed to delete user", err)
	}

	s.logger.InfoContext(ctx, "user deleted", "user_id", id)
	return &DetailResponse{Detail: "User deleted"}, nil
}

func (s *Service) withRoles(ctx context.Context, record *userDatamodel.User) (*User, error) {
	roles, err := s.ListRoles(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return FromDataModelWithRoles(record, roles), nil
}

func (s *Service) mapLookupError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.ErrUserNotFound
	}
	return internal.NewInternalError("failed to load user", err)
}
