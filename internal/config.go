package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string         `mapstructure:"env" validate:"omitempty,oneof=development staging production test"`
	Server   ServerConfig   `mapstructure:"http_server"`
	Database DatabaseConfig `mapstructure:"database"`
	Security SecurityConfig `mapstructure:"security" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	BaseURL           string        `mapstructure:"base_url"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"required"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"required,min=1m"`
}

type SecurityConfig struct {
	JWTSecret           string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	JWTIssuer           string        `mapstructure:"jwt_issuer"`
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration" validate:"required,min=1m"`
	BCryptCost          int           `mapstructure:"bcrypt_cost" validate:"required,min=4,max=15"`
}

type LLMConfig struct {
	Provider string        `mapstructure:"provider" validate:"required,oneof=googleai openai"`
	APIKey   string        `mapstructure:"api_key" validate:"required"`
	Model    string        `mapstructure:"model" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"required,min=1s"`
}

type StorageConfig struct {
	Driver            string      `mapstructure:"driver" validate:"required,oneof=local minio"`
	LocalRoot         string      `mapstructure:"local_root"`
	JobDescriptionDir string      `mapstructure:"job_description_dir" validate:"required"`
	ResumeDir         string      `mapstructure:"resume_dir" validate:"required"`
	MaxUploadBytes    int64       `mapstructure:"max_upload_bytes" validate:"required,min=1"`
	Minio             MinioConfig `mapstructure:"minio"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ApplyDefaults fills zero values. Secrets never get a default.
func (c *Config) ApplyDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		// model calls run inside the request
		c.Server.WriteTimeout = 120 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "pgx"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = 5 * time.Minute
	}

	if c.Security.AccessTokenDuration == 0 {
		c.Security.AccessTokenDuration = 60 * time.Minute
	}
	if c.Security.BCryptCost == 0 {
		c.Security.BCryptCost = 12
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "googleai"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 90 * time.Second
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = "local"
	}
	if c.Storage.LocalRoot == "" {
		c.Storage.LocalRoot = "."
	}
	if c.Storage.JobDescriptionDir == "" {
		c.Storage.JobDescriptionDir = "jd_uploads"
	}
	if c.Storage.ResumeDir == "" {
		c.Storage.ResumeDir = "resume_uploads"
	}
	if c.Storage.MaxUploadBytes == 0 {
		c.Storage.MaxUploadBytes = 10 << 20
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// LoadConfigFromEnv builds the configuration purely from APP_* variables,
// used for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Env: getEnv("APP_ENV", "production"),
		Server: ServerConfig{
			Port:    getEnvAsInt("APP_HTTP_SERVER_PORT", 8080),
			BaseURL: getEnv("APP_HTTP_SERVER_BASE_URL", ""),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("APP_DATABASE_DRIVER", "pgx"),
			Host:         getEnv("APP_DATABASE_HOST", "localhost"),
			Port:         getEnvAsInt("APP_DATABASE_PORT", 5432),
			User:         getEnv("APP_DATABASE_USER", ""),
			Password:     getEnv("APP_DATABASE_PASSWORD", ""),
			Name:         getEnv("APP_DATABASE_NAME", ""),
			SSLMode:      getEnv("APP_DATABASE_SSLMODE", "disable"),
			Source:       getEnv("APP_DATABASE_SOURCE", ""),
			MaxOpenConns: getEnvAsInt("APP_DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("APP_DATABASE_MAX_IDLE_CONNS", 5),
		},
		Security: SecurityConfig{
			JWTSecret:           getEnv("APP_SECURITY_JWT_SECRET", ""),
			JWTIssuer:           getEnv("APP_SECURITY_JWT_ISSUER", ""),
			AccessTokenDuration: getEnvAsDuration("APP_SECURITY_ACCESS_TOKEN_DURATION", 60*time.Minute),
			BCryptCost:          getEnvAsInt("APP_SECURITY_BCRYPT_COST", 12),
		},
		LLM: LLMConfig{
			Provider: getEnv("APP_LLM_PROVIDER", "googleai"),
			APIKey:   getEnv("APP_LLM_API_KEY", ""),
			Model:    getEnv("APP_LLM_MODEL", "gemini-2.5-flash"),
			Timeout:  getEnvAsDuration("APP_LLM_TIMEOUT", 90*time.Second),
		},
		Storage: StorageConfig{
			Driver:            getEnv("APP_STORAGE_DRIVER", "local"),
			LocalRoot:         getEnv("APP_STORAGE_LOCAL_ROOT", "."),
			JobDescriptionDir: getEnv("APP_STORAGE_JOB_DESCRIPTION_DIR", "jd_uploads"),
			ResumeDir:         getEnv("APP_STORAGE_RESUME_DIR", "resume_uploads"),
			MaxUploadBytes:    int64(getEnvAsInt("APP_STORAGE_MAX_UPLOAD_BYTES", 10<<20)),
			Minio: MinioConfig{
				Endpoint:  getEnv("APP_STORAGE_MINIO_ENDPOINT", ""),
				AccessKey: getEnv("APP_STORAGE_MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("APP_STORAGE_MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("APP_STORAGE_MINIO_BUCKET", ""),
				Region:    getEnv("APP_STORAGE_MINIO_REGION", ""),
				UseSSL:    getEnv("APP_STORAGE_MINIO_USE_SSL", "false") == "true",
			},
		},
		Logging: LoggingConfig{
			Level:  getEnv("APP_LOGGING_LEVEL", "info"),
			Format: getEnv("APP_LOGGING_FORMAT", "json"),
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

var configValidator = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	var errs []string

	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	if c.Source == "" && (c.Host == "" || c.Name == "") {
		return errors.New("either source or host and name are required")
	}
	return nil
}

// GetDSN returns the connection string, building a postgres URL from the
// discrete fields when no explicit source is configured.
func (c *DatabaseConfig) GetDSN() string {
	if c.Source != "" {
		return c.Source
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// RedactedDSN is safe to log.
func (c *DatabaseConfig) RedactedDSN() string {
	u, err := url.Parse(c.GetDSN())
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "[REDACTED]"
	}
	return u.Redacted()
}

func (c *StorageConfig) Validate() error {
	if c.Driver != "minio" {
		return nil
	}
	m := c.Minio
	if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
		return errors.New("minio driver requires endpoint, access_key, secret_key and bucket")
	}
	return nil
}

// LogValue keeps secrets out of structured logs.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", c.Env),
		slog.Int("http_port", c.Server.Port),
		slog.String("database", c.Database.RedactedDSN()),
		slog.Duration("access_token_duration", c.Security.AccessTokenDuration),
		slog.String("llm_provider", c.LLM.Provider),
		slog.String("llm_model", c.LLM.Model),
		slog.Bool("llm_api_key_set", c.LLM.APIKey != ""),
		slog.String("storage_driver", c.Storage.Driver),
		slog.String("log_level", c.Logging.Level),
	)
}
