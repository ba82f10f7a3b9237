package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/pkg/logger"
)

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler  *Handler
		tokenGen *JWTTokenGenerator
		rbac     *RBACAuthorization
	)

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator(testSecret, "", time.Hour)
		svc := NewService(newMockCredentialsRepository(), tokenGen, logger.Discard())
		handler = NewHandler(svc)
		rbac = svc.RBACAuthorization()
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("should accept the form-encoded password flow", func() {
			// Given
			form := url.Values{"username": {"alice"}, "password": {"correct_password"}}
			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			// When
			handler.Login(w, req)

			// Then
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			var token Token
			gomega.Expect(json.Unmarshal(w.Body.Bytes(), &token)).To(gomega.Succeed())
			gomega.Expect(token.TokenType).To(gomega.Equal("bearer"))
			gomega.Expect(token.AccessToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should accept a JSON body", func() {
			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"username":"alice","password":"correct_password"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should answer 401 on bad credentials", func() {
			form := url.Values{"username": {"alice"}, "password": {"nope"}}
			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(w.Header().Get("WWW-Authenticate")).To(gomega.Equal("Bearer"))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("Incorrect username or password"))
		})

		ginkgo.It("should answer 400 when fields are missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader("username=alice"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var (
			seen *internal.User
			next http.Handler
		)

		ginkgo.BeforeEach(func() {
			seen = nil
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = internal.UserFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})
		})

		ginkgo.It("should reject requests without a token", func() {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(seen).To(gomega.BeNil())
		})

		ginkgo.It("should reject an invalid token", func() {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req.Header.Set("Authorization", "Bearer garbage")
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should put the principal on the context", func() {
			token, err := tokenGen.GenerateAccessToken(Identity{UserID: 9, Username: "dave", Roles: []string{"User"}})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(seen).ToNot(gomega.BeNil())
			gomega.Expect(seen.ID).To(gomega.Equal(int64(9)))
			gomega.Expect(seen.Roles).To(gomega.Equal([]string{"User"}))
		})
	})

	ginkgo.Describe("RBAC", func() {
		var next http.Handler

		ginkgo.BeforeEach(func() {
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})

		serve := func(mw func(http.Handler) http.Handler, roles ...string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if roles != nil {
				req = req.WithContext(internal.ContextWithUser(req.Context(), &internal.User{ID: 1, Username: "u", Roles: roles}))
			}
			w := httptest.NewRecorder()
			mw(next).ServeHTTP(w, req)
			return w
		}

		ginkgo.It("should admit admins to admin routes", func() {
			gomega.Expect(serve(rbac.RequireAdmin(), "Admin").Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should forbid non-admins with the admin message", func() {
			w := serve(rbac.RequireAdmin(), "User", "Moderator")
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("Admin privileges required"))
		})

		ginkgo.It("should admit moderators and admins to moderator routes", func() {
			gomega.Expect(serve(rbac.RequireModerator(), "Moderator").Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(serve(rbac.RequireModerator(), "Admin").Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(serve(rbac.RequireModerator(), "User").Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should answer 401 without a principal", func() {
			gomega.Expect(serve(rbac.RequireAdmin()).Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
