package role

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/talent-intake/internal"
	userDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/talent-intake/internal/core/user"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*userDatamodel.Role, error)
	GetByName(ctx context.Context, name string) (*userDatamodel.Role, error)
	Create(ctx context.Context, role *userDatamodel.Role) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	dataRoles, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get roles from repository", "error", err)
		return nil, internal.NewInternalError("failed to list roles", err)
	}

	responses := make([]RoleResponse, 0, len(dataRoles))
	for _, dataRole := range dataRoles {
		responses = append(responses, FromDataModel(dataRole).ToResponse())
	}

	s.logger.DebugContext(ctx, "retrieved roles", "count", len(responses))
	return responses, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*Role, error) {
	dataRole, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up role", err)
	}
	if dataRole == nil {
		return nil, internal.ErrRoleNotFound
	}
	return FromDataModel(dataRole), nil
}

// EnsureDefaults creates any missing role from the seed catalog and
// returns the names it had to create.
func (s *Service) EnsureDefaults(ctx context.Context) ([]string, error) {
	var created []string
	for _, name := range coreUser.DefaultRoles {
		existing, err := s.repo.GetByName(ctx, name)
		if err != nil {
			return created, internal.NewInternalError("failed to look up role", err)
		}
		if existing != nil {
			continue
		}
		if err := s.repo.Create(ctx, ToDataModel(NewRole(name))); err != nil {
			return created, internal.NewInternalError("failed to create role "+name, err)
		}
		created = append(created, name)
	}

	if len(created) > 0 {
		s.logger.InfoContext(ctx, "seeded roles", "roles", created)
	}
	return created, nil
}
