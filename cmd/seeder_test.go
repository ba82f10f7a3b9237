package cmd

import (
	"context"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeUsers struct {
	byName   map[string]*user.User
	assigned []user.AssignRoleDTO
	nextID   int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: map[string]*user.User{}, nextID: 1}
}

func (f *fakeUsers) Register(ctx context.Context, dto user.RegisterDTO) (*user.User, error) {
	u := &user.User{ID: f.nextID, Username: dto.Username, Roles: []string{"User"}}
	f.nextID++
	f.byName[dto.Username] = u
	return u, nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) AssignRole(ctx context.Context, dto user.AssignRoleDTO) (*user.DetailResponse, error) {
	for _, a := range f.assigned {
		if a == dto {
			return nil, internal.ErrRoleAlreadyAssigned
		}
	}
	f.assigned = append(f.assigned, dto)
	return &user.DetailResponse{}, nil
}

var _ = Describe("seedAdmin", func() {
	var (
		ctx   context.Context
		users *fakeUsers
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = newFakeUsers()
	})

	It("should create the account and grant Admin", func() {
		Expect(seedAdmin(ctx, users, "root", "s3cret-pass")).To(Succeed())

		Expect(users.byName).To(HaveKey("root"))
		Expect(users.assigned).To(ConsistOf(user.AssignRoleDTO{UserID: 1, RoleName: "Admin"}))
	})

	It("should be idempotent", func() {
		Expect(seedAdmin(ctx, users, "root", "s3cret-pass")).To(Succeed())
		Expect(seedAdmin(ctx, users, "root", "")).To(Succeed())

		Expect(users.byName).To(HaveLen(1))
		Expect(users.assigned).To(HaveLen(1))
	})

	It("should refuse to create an account without a password", func() {
		err := seedAdmin(ctx, users, "root", "")

		Expect(err).To(HaveOccurred())
		Expect(users.byName).To(BeEmpty())
	})
})

var _ = Describe("testEvent", func() {
	It("should build the document event from the flags", func() {
		eventKind, eventRecordID, eventUserID, eventLocation = "job_description", 7, 3, "jd_uploads/a.pdf"

		event, err := testEvent("document.extracted")

		Expect(err).NotTo(HaveOccurred())
		Expect(event.EventType()).To(Equal("document.extracted"))
		Expect(event.Payload()).To(HaveKeyWithValue("record_id", int64(7)))
	})

	It("should reject unknown types", func() {
		_, err := testEvent("invoice.created")
		Expect(err).To(MatchError(ContainSubstring("unknown event type")))
	})
})
