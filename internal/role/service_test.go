package role_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/frahmantamala/talent-intake/internal"
	userDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/user"
	"github.com/frahmantamala/talent-intake/internal/role"
	"github.com/frahmantamala/talent-intake/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRoleService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Service Suite")
}

// MockRepository implements role.RepositoryAPI for testing
type MockRepository struct {
	roles      map[string]*userDatamodel.Role
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		roles:  make(map[string]*userDatamodel.Role),
		nextID: 1,
	}
}

func (m *MockRepository) GetAll(ctx context.Context) ([]*userDatamodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}

	result := make([]*userDatamodel.Role, 0, len(m.roles))
	for _, r := range m.roles {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockRepository) GetByName(ctx context.Context, name string) (*userDatamodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	r, exists := m.roles[name]
	if !exists {
		return nil, nil
	}
	return r, nil
}

func (m *MockRepository) Create(ctx context.Context, r *userDatamodel.Role) error {
	if m.shouldFail {
		return m.failError
	}
	r.ID = m.nextID
	m.nextID++
	m.roles[r.Name] = r
	return nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

var _ = Describe("Role Service", func() {
	var (
		mockRepo *MockRepository
		service  *role.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockRepo = NewMockRepository()
		service = role.NewService(mockRepo, logger.Discard())
	})

	Describe("ListRoles", func() {
		Context("when roles exist", func() {
			BeforeEach(func() {
				Expect(mockRepo.Create(ctx, &userDatamodel.Role{Name: "User"})).To(Succeed())
				Expect(mockRepo.Create(ctx, &userDatamodel.Role{Name: "Admin"})).To(Succeed())
			})

			It("should return them in repository order", func() {
				roles, err := service.ListRoles(ctx)

				Expect(err).NotTo(HaveOccurred())
				Expect(roles).To(HaveLen(2))
				Expect(roles[0].Name).To(Equal("Admin"))
				Expect(roles[1].Name).To(Equal("User"))
			})
		})

		Context("when the catalog is empty", func() {
			It("should return an empty, non-nil slice", func() {
				roles, err := service.ListRoles(ctx)

				Expect(err).NotTo(HaveOccurred())
				Expect(roles).NotTo(BeNil())
				Expect(roles).To(BeEmpty())
			})
		})

		Context("when the repository fails", func() {
			It("should wrap the failure as an internal error", func() {
				mockRepo.SetShouldFail(true, errors.New("database connection failed"))

				roles, err := service.ListRoles(ctx)

				Expect(roles).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(500))
			})
		})
	})

	Describe("GetByName", func() {
		It("should return the role when present", func() {
			Expect(mockRepo.Create(ctx, &userDatamodel.Role{Name: "Moderator"})).To(Succeed())

			r, err := service.GetByName(ctx, "Moderator")

			Expect(err).NotTo(HaveOccurred())
			Expect(r.Name).To(Equal("Moderator"))
			Expect(r.ID).To(BeNumerically(">", 0))
		})

		It("should return ErrRoleNotFound for an unknown name", func() {
			_, err := service.GetByName(ctx, "Superuser")

			Expect(err).To(MatchError(internal.ErrRoleNotFound))
		})
	})

	Describe("EnsureDefaults", func() {
		It("should create every missing default role", func() {
			created, err := service.EnsureDefaults(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(ConsistOf("Admin", "Moderator", "User"))
			Expect(mockRepo.roles).To(HaveLen(3))
		})

		It("should be idempotent", func() {
			_, err := service.EnsureDefaults(ctx)
			Expect(err).NotTo(HaveOccurred())

			created, err := service.EnsureDefaults(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeEmpty())
			Expect(mockRepo.roles).To(HaveLen(3))
		})

		It("should only fill the gaps", func() {
			Expect(mockRepo.Create(ctx, &userDatamodel.Role{Name: "Admin"})).To(Succeed())

			created, err := service.EnsureDefaults(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(ConsistOf("Moderator", "User"))
		})
	})
})
