package role_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	userDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/user"
	"github.com/frahmantamala/talent-intake/internal/role"
	rolePostgres "github.com/frahmantamala/talent-intake/internal/role/postgres"
	"github.com/frahmantamala/talent-intake/internal/transport"
	"github.com/frahmantamala/talent-intake/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var _ = Describe("Role Handler Integration", func() {
	var (
		db      *gorm.DB
		service *role.Service
		handler *role.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.Role{})).To(Succeed())

		service = role.NewService(rolePostgres.NewRoleRepository(db), logger.Discard())
		handler = role.NewHandler(transport.NewBaseHandler(logger.Discard()), service)
	})

	Describe("GET /roles", func() {
		It("should list the seeded catalog alphabetically", func() {
			_, err := service.EnsureDefaults(context.Background())
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/roles", nil)
			w := httptest.NewRecorder()
			handler.GetRoles(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var response role.RolesResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Roles).To(HaveLen(3))
			Expect(response.Roles[0].Name).To(Equal("Admin"))
			Expect(response.Roles[1].Name).To(Equal("Moderator"))
			Expect(response.Roles[2].Name).To(Equal("User"))
		})

		It("should return an empty list when nothing is seeded", func() {
			req := httptest.NewRequest(http.MethodGet, "/roles", nil)
			w := httptest.NewRecorder()
			handler.GetRoles(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"roles":[]}`))
		})

		It("should answer 500 when the store is gone", func() {
			sqlDB, err := db.DB()
			Expect(err).NotTo(HaveOccurred())
			Expect(sqlDB.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodGet, "/roles", nil)
			w := httptest.NewRecorder()
			handler.GetRoles(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
