package jobdescription_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/spf13/afero"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/talent-intake/internal"
	jdDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/jobdescription"
	"github.com/frahmantamala/talent-intake/internal/document/documenttest"
	"github.com/frahmantamala/talent-intake/internal/extraction"
	"github.com/frahmantamala/talent-intake/internal/jobdescription"
	jdPostgres "github.com/frahmantamala/talent-intake/internal/jobdescription/postgres"
	"github.com/frahmantamala/talent-intake/internal/llm"
	"github.com/frahmantamala/talent-intake/internal/llm/llmtest"
	"github.com/frahmantamala/talent-intake/internal/storage"
	"github.com/frahmantamala/talent-intake/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Job Description Handler Integration", func() {
	var (
		db      *gorm.DB
		model   *llmtest.FakeModel
		handler *jobdescription.Handler
		caller  *internal.User
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(&jdDatamodel.JobDescription{})).To(Succeed())

		model = llmtest.NewFakeModel(llmtest.ToolCall("record_job_description", `{"job_title":"Backend Engineer","company_name":"Acme"}`))
		pipeline := extraction.NewPipeline(
			storage.NewLocalStorageWithFs(afero.NewMemMapFs(), "/data"),
			llm.NewClient(model, 0, logger.Discard()),
			1<<20,
			logger.Discard(),
		)
		service := jobdescription.NewService(jdPostgres.NewJobDescriptionRepository(db), pipeline, nil, "jd_uploads", logger.Discard())
		handler = jobdescription.NewHandler(service, 1<<20)
		caller = &internal.User{ID: 1, Username: "alice", Roles: []string{"User"}}
	})

	upload := func(file documenttest.FormFile) *httptest.ResponseRecorder {
		body, contentType := documenttest.Multipart(file)
		req := httptest.NewRequest(http.MethodPost, "/upload-jd", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(internal.ContextWithUser(req.Context(), caller))
		w := httptest.NewRecorder()
		handler.UploadJD(w, req)
		return w
	}

	Describe("POST /upload-jd", func() {
		It("should store a row whose job title came from the model", func() {
			w := upload(documenttest.FormFile{Field: "file", Filename: "jd.pdf", Data: documenttest.PDF("Job Title: Backend Engineer")})

			Expect(w.Code).To(Equal(http.StatusCreated))
			var jd jobdescription.JobDescription
			Expect(json.Unmarshal(w.Body.Bytes(), &jd)).To(Succeed())
			Expect(jd.JobTitle).To(Equal("Backend Engineer"))

			var stored jdDatamodel.JobDescription
			Expect(db.First(&stored).Error).NotTo(HaveOccurred())
			Expect(stored.JobTitle).To(Equal("Backend Engineer"))
			Expect(*stored.CompanyName).To(Equal("Acme"))
		})

		It("should answer 400 for unsupported files without calling the model", func() {
			w := upload(documenttest.FormFile{Field: "file", Filename: "jd.txt", Data: []byte("Job Title: Backend Engineer")})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("Unsupported file type. Only PDF and DOCX allowed."))
			Expect(model.CallCount()).To(BeZero())
		})

		It("should answer 400 when the file field is missing", func() {
			w := upload(documenttest.FormFile{Field: "document", Filename: "jd.pdf", Data: documenttest.PDF("x")})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 401 without a caller", func() {
			body, contentType := documenttest.Multipart(documenttest.FormFile{Field: "file", Filename: "jd.pdf", Data: documenttest.PDF("x")})
			req := httptest.NewRequest(http.MethodPost, "/upload-jd", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			handler.UploadJD(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GET /jd", func() {
		It("should list stored job descriptions with their lists intact", func() {
			w := upload(documenttest.FormFile{Field: "file", Filename: "jd.docx", Data: documenttest.DOCX("Job Title: Backend Engineer")})
			Expect(w.Code).To(Equal(http.StatusCreated))

			req := httptest.NewRequest(http.MethodGet, "/jd", nil)
			w = httptest.NewRecorder()
			handler.ListJD(w, req.WithContext(context.Background()))

			Expect(w.Code).To(Equal(http.StatusOK))
			var jds []map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &jds)).To(Succeed())
			Expect(jds).To(HaveLen(1))
			Expect(jds[0]["job_title"]).To(Equal("Backend Engineer"))
			Expect(jds[0]["employment_type"]).To(Equal(""))
			Expect(jds[0]["primary_skills"]).To(Equal([]any{}))
		})
	})
})
