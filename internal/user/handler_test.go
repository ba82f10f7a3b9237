package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/internal/user"
	"github.com/frahmantamala/talent-intake/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("User Handler", func() {
	var (
		repo    *MockRepository
		handler *user.Handler
		router  chi.Router
		caller  *internal.User
	)

	withCaller := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if caller != nil {
				r = r.WithContext(internal.ContextWithUser(r.Context(), caller))
			}
			next.ServeHTTP(w, r)
		})
	}

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		repo = NewMockRepository()
		handler = user.NewHandler(user.NewService(repo, bcrypt.MinCost, logger.Discard()))
		handler.Logger = logger.Discard()
		caller = nil

		router = chi.NewRouter()
		router.Post("/register", handler.Register)
		router.Post("/roles/assign", handler.AssignRole)
		router.Group(func(r chi.Router) {
			r.Use(withCaller)
			r.Get("/users/me", handler.GetCurrentUser)
			r.Get("/users/{id}", handler.GetUser)
			r.Put("/users/{id}", handler.UpdateUser)
			r.Delete("/users/{id}", handler.DeleteUser)
		})
	})

	Describe("POST /register", func() {
		It("should return the user with the default role", func() {
			w := do(http.MethodPost, "/register", `{"username":"alice","password":"s3cret-pass","email":"alice@example.com"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body["username"]).To(Equal("alice"))
			Expect(body["roles"]).To(Equal([]interface{}{"User"}))
			Expect(body).NotTo(HaveKey("password"))
			Expect(body).NotTo(HaveKey("password_hash"))
		})

		It("should answer 409 on duplicates", func() {
			do(http.MethodPost, "/register", `{"username":"alice","password":"s3cret-pass"}`)

			w := do(http.MethodPost, "/register", `{"username":"alice","password":"s3cret-pass"}`)

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(w.Body.String()).To(ContainSubstring("USERNAME_TAKEN"))
		})

		It("should answer 400 on malformed JSON", func() {
			w := do(http.MethodPost, "/register", `{"username":`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 400 on unknown fields", func() {
			w := do(http.MethodPost, "/register", `{"username":"alice","password":"s3cret-pass","is_admin":true}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("with a registered user", func() {
		var alice *user.User

		BeforeEach(func() {
			var err error
			svc := user.NewService(repo, bcrypt.MinCost, logger.Discard())
			alice, err = svc.Register(context.Background(), user.RegisterDTO{Username: "alice", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("GET /users/me should return the caller", func() {
			caller = &internal.User{ID: alice.ID, Username: "alice", Roles: []string{"User"}}

			w := do(http.MethodGet, "/users/me", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"username":"alice"`))
		})

		It("GET /users/me should answer 401 without a principal", func() {
			w := do(http.MethodGet, "/users/me", "")
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("GET /users/me should answer 404 when the account is gone", func() {
			caller = &internal.User{ID: 999, Username: "ghost", Roles: []string{"User"}}

			w := do(http.MethodGet, "/users/me", "")

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("GET /users/{id} should reject non-numeric ids", func() {
			w := do(http.MethodGet, "/users/abc", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("PUT /users/{id} should forbid other users", func() {
			caller = &internal.User{ID: 77, Username: "eve", Roles: []string{"User"}}

			w := do(http.MethodPut, "/users/1", `{"first_name":"Eve"}`)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(ContainSubstring("Not authorized to update this user"))
		})

		It("PUT /users/{id} should update self", func() {
			caller = &internal.User{ID: alice.ID, Username: "alice", Roles: []string{"User"}}

			w := do(http.MethodPut, "/users/1", `{"first_name":"Alice"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"first_name":"Alice"`))
		})

		It("POST /roles/assign should describe the assignment", func() {
			w := do(http.MethodPost, "/roles/assign", `{"user_id":1,"role_name":"Admin"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"detail":"Role 'Admin' assigned to user 1"}`))
		})

		It("POST /roles/assign should answer 404 for unknown roles", func() {
			w := do(http.MethodPost, "/roles/assign", `{"user_id":1,"role_name":"Root"}`)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("DELETE /users/{id} should confirm deletion", func() {
			w := do(http.MethodDelete, "/users/1", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"detail":"User deleted"}`))

			w = do(http.MethodDelete, "/users/1", "")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
