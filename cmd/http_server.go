package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/talent-intake/internal"
	"github.com/frahmantamala/talent-intake/internal/auth"
	authPostgres "github.com/frahmantamala/talent-intake/internal/auth/postgres"
	"github.com/frahmantamala/talent-intake/internal/core/events"
	"github.com/frahmantamala/talent-intake/internal/extraction"
	"github.com/frahmantamala/talent-intake/internal/jobdescription"
	jdPostgres "github.com/frahmantamala/talent-intake/internal/jobdescription/postgres"
	"github.com/frahmantamala/talent-intake/internal/llm"
	"github.com/frahmantamala/talent-intake/internal/matcher"
	"github.com/frahmantamala/talent-intake/internal/resume"
	resumePostgres "github.com/frahmantamala/talent-intake/internal/resume/postgres"
	"github.com/frahmantamala/talent-intake/internal/role"
	rolePostgres "github.com/frahmantamala/talent-intake/internal/role/postgres"
	"github.com/frahmantamala/talent-intake/internal/storage"
	"github.com/frahmantamala/talent-intake/internal/transport"
	"github.com/frahmantamala/talent-intake/internal/transport/rest"
	"github.com/frahmantamala/talent-intake/internal/user"
	userPostgres "github.com/frahmantamala/talent-intake/internal/user/postgres"
	"github.com/frahmantamala/talent-intake/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Gorm     *gorm.DB
	Storage  storage.ObjectStorage
	Model    *llm.Client
	EventBus *events.EventBus
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	ctx := context.Background()

	deps, err := initializeDependencies(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	cfg := deps.Config
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "config", cfg)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.EventBus.Drain(shutdownCtx); err != nil {
			deps.Logger.Warn("Event handlers still running at shutdown", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			_ = deps.DB.Close()
			os.Exit(1)
		}
	}

	if err := deps.DB.Close(); err != nil {
		deps.Logger.Error("Database close error", "error", err)
	}
	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger
	base := transport.NewBaseHandler(lg)

	// auth
	tokenGen := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, cfg.Security.AccessTokenDuration)
	authService := auth.NewService(authPostgres.NewRepository(deps.DB), tokenGen, lg)

	// users and roles
	userService := user.NewService(userPostgres.NewUserRepository(deps.Gorm), cfg.Security.BCryptCost, lg).
		WithPublisher(deps.EventBus)
	roleService := role.NewService(rolePostgres.NewRoleRepository(deps.Gorm), lg)

	// document intake
	pipeline := extraction.NewPipeline(deps.Storage, deps.Model, cfg.Storage.MaxUploadBytes, lg)
	jdService := jobdescription.NewService(
		jdPostgres.NewJobDescriptionRepository(deps.Gorm), pipeline, deps.EventBus, cfg.Storage.JobDescriptionDir, lg)
	resumeService := resume.NewService(
		resumePostgres.NewResumeRepository(deps.Gorm), pipeline, deps.EventBus, cfg.Storage.ResumeDir, lg)
	matcherService := matcher.NewService(pipeline, lg)

	var checks []rest.Check
	if p, ok := deps.Storage.(storage.Pinger); ok {
		checks = append(checks, rest.Check{Name: "storage", Probe: p.Ping, Failure: "storage unreachable"})
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, rest.Handlers{
		Auth:           auth.NewHandler(authService),
		AuthService:    authService,
		User:           user.NewHandler(userService),
		Role:           role.NewHandler(base, roleService),
		JobDescription: jobdescription.NewHandler(jdService, cfg.Storage.MaxUploadBytes),
		Resume:         resume.NewHandler(resumeService, cfg.Storage.MaxUploadBytes),
		Matcher:        matcher.NewHandler(base, matcherService, cfg.Storage.MaxUploadBytes),
		HealthChecks:   checks,
	}, lg)
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	store, err := storage.New(ctx, config.Storage)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	model, err := llm.New(ctx, config.LLM, lg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Gorm:     gormDB,
		Storage:  store,
		Model:    model,
		EventBus: newEventBus(lg),
		Router:   chi.NewRouter(),
	}, nil
}

// newEventBus wires the audit trail for every domain event.
func newEventBus(lg *slog.Logger) *events.EventBus {
	bus := events.NewEventBus(lg)
	audit := events.AuditLogger(lg)
	bus.Subscribe(events.EventTypeDocumentExtracted, audit)
	bus.Subscribe(events.EventTypeUserRegistered, audit)
	return bus
}

// initDB opens the shared pool. The same *sql.DB backs sqlx, gorm and the
// health check.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	dbConn, err := sqlx.Open(cfg.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection to %s: %w", cfg.RedactedDSN(), err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.RedactedDSN(), err)
	}

	return dbConn, nil
}

func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
	})
}
