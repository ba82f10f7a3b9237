package resume_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/spf13/afero"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/talent-intake/internal"
	resumeDatamodel "github.com/frahmantamala/talent-intake/internal/core/datamodel/resume"
	"github.com/frahmantamala/talent-intake/internal/document/documenttest"
	"github.com/frahmantamala/talent-intake/internal/extraction"
	"github.com/frahmantamala/talent-intake/internal/llm"
	"github.com/frahmantamala/talent-intake/internal/llm/llmtest"
	"github.com/frahmantamala/talent-intake/internal/resume"
	resumePostgres "github.com/frahmantamala/talent-intake/internal/resume/postgres"
	"github.com/frahmantamala/talent-intake/internal/storage"
	"github.com/frahmantamala/talent-intake/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Resume Handler Integration", func() {
	var (
		db      *gorm.DB
		model   *llmtest.FakeModel
		handler *resume.Handler
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
		Expect(db.AutoMigrate(&resumeDatamodel.Resume{})).To(Succeed())

		model = llmtest.NewFakeModel(llmtest.ToolCall("record_resume",
			`{"name":"Jane Doe","education":["BSc Computer Science"],"skills":["Go","SQL"],"experience_year":4}`))
		pipeline := extraction.NewPipeline(
			storage.NewLocalStorageWithFs(afero.NewMemMapFs(), "/data"),
			llm.NewClient(model, 0, logger.Discard()),
			1<<20,
			logger.Discard(),
		)
		handler = resume.NewHandler(resume.NewService(resumePostgres.NewResumeRepository(db), pipeline, nil, "resume_uploads", logger.Discard()), 1<<20)
	})

	post := func(h http.HandlerFunc, path string, file documenttest.FormFile) *httptest.ResponseRecorder {
		body, contentType := documenttest.Multipart(file)
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(internal.ContextWithUser(req.Context(), &internal.User{ID: 1, Username: "alice", Roles: []string{"User"}}))
		w := httptest.NewRecorder()
		h(w, req)
		return w
	}

	It("should upload and then list a resume", func() {
		w := post(handler.UploadResume, "/upload-resume", documenttest.FormFile{Field: "file", Filename: "cv.PDF", Data: documenttest.PDF("Jane Doe", "Go, SQL")})
		Expect(w.Code).To(Equal(http.StatusCreated))

		req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
		w = httptest.NewRecorder()
		handler.ListResumes(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resumes []resume.Resume
		Expect(json.Unmarshal(w.Body.Bytes(), &resumes)).To(Succeed())
		Expect(resumes).To(HaveLen(1))
		Expect(resumes[0].ID).To(Equal(int64(1)))
		Expect(resumes[0].Name).To(Equal("Jane Doe"))
		Expect(resumes[0].Skills).To(Equal([]string{"Go", "SQL"}))
		Expect(*resumes[0].ExperienceYear).To(Equal(4))
	})

	It("should answer 422 when the model finds no name", func() {
		model.Script(llmtest.ToolCall("record_resume", `{"skills":["Go"]}`))

		w := post(handler.UploadResume, "/upload-resume", documenttest.FormFile{Field: "file", Filename: "cv.pdf", Data: documenttest.PDF("Go")})

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(w.Body.String()).To(ContainSubstring("AI did not return required job details."))
		var count int64
		Expect(db.Model(&resumeDatamodel.Resume{}).Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})

	Describe("POST /resume_detials/", func() {
		It("should return the details object", func() {
			model.Script(llmtest.Text(`{"name":"Jane Doe"}`))

			w := post(handler.ResumeDetails, "/resume_detials/", documenttest.FormFile{Field: "resume", Filename: "cv.pdf", Data: documenttest.PDF("Jane Doe")})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"name":"Jane Doe"}`))
		})

		It("should answer 400 for unsupported files", func() {
			w := post(handler.ResumeDetails, "/resume_detials/", documenttest.FormFile{Field: "resume", Filename: "cv.png", Data: []byte{0x89, 'P', 'N', 'G'}})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
