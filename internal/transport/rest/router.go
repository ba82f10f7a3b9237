package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/talent-intake/api"
	"github.com/frahmantamala/talent-intake/internal/auth"
	"github.com/frahmantamala/talent-intake/internal/jobdescription"
	"github.com/frahmantamala/talent-intake/internal/matcher"
	"github.com/frahmantamala/talent-intake/internal/resume"
	"github.com/frahmantamala/talent-intake/internal/role"
	"github.com/frahmantamala/talent-intake/internal/transport/middleware"
	"github.com/frahmantamala/talent-intake/internal/transport/swagger"
	"github.com/frahmantamala/talent-intake/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups everything the router mounts. A nil handler leaves its
// routes unregistered.
type Handlers struct {
	Auth           *auth.Handler
	AuthService    *auth.Service
	User           *user.Handler
	Role           *role.Handler
	JobDescription *jobdescription.Handler
	Resume         *resume.Handler
	Matcher        *matcher.Handler

	// HealthChecks are probed by /health next to the database.
	HealthChecks []Check
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, h.HealthChecks...)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get(swagger.SpecPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Spec())
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	if h.User != nil {
		router.Post("/register", h.User.Register)
	}

	if h.Auth == nil || h.AuthService == nil {
		return
	}
	router.Post("/token", h.Auth.Login)

	rbac := h.AuthService.RBACAuthorization()

	// Protected routes that require authentication
	router.Group(func(pr chi.Router) {
		pr.Use(h.Auth.AuthMiddleware)
		pr.Use(middleware.UserContext)

		if h.User != nil {
			pr.Get("/users/me", h.User.GetCurrentUser)
			// self-or-admin is checked by the service
			pr.Put("/users/{id}", h.User.UpdateUser)

			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequireAdmin())
				ar.Get("/users/{id}", h.User.GetUser)
				ar.Delete("/users/{id}", h.User.DeleteUser)
				ar.Post("/roles/assign", h.User.AssignRole)
			})
		}

		if h.Role != nil {
			pr.With(rbac.RequireModerator()).Get("/roles", h.Role.GetRoles)
		}

		if h.JobDescription != nil {
			pr.Post("/upload-jd", h.JobDescription.UploadJD)
			pr.Get("/jd", h.JobDescription.ListJD)
		}

		if h.Resume != nil {
			pr.Post("/upload-resume", h.Resume.UploadResume)
			pr.Get("/resumes", h.Resume.ListResumes)
			pr.Post("/resume_detials/", h.Resume.ResumeDetails)
		}

		if h.Matcher != nil {
			pr.Post("/resume_matcher/", h.Matcher.MatchResume)
		}
	})
}
