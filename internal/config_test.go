package internal_test

import (
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/talent-intake/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() *internal.Config {
	cfg := &internal.Config{
		Database: internal.DatabaseConfig{Host: "db", Name: "talent", User: "app", Password: "hunter2"},
		Security: internal.SecurityConfig{JWTSecret: strings.Repeat("k", 32)},
		LLM:      internal.LLMConfig{APIKey: "key"},
	}
	cfg.ApplyDefaults()
	return cfg
}

var _ = Describe("Config", func() {
	Describe("ApplyDefaults", func() {
		It("should fill the documented defaults", func() {
			cfg := validConfig()

			Expect(cfg.Server.Port).To(Equal(8080))
			Expect(cfg.Security.AccessTokenDuration).To(Equal(60 * time.Minute))
			Expect(cfg.LLM.Provider).To(Equal("googleai"))
			Expect(cfg.LLM.Model).To(Equal("gemini-2.5-flash"))
			Expect(cfg.Storage.Driver).To(Equal("local"))
			Expect(cfg.Storage.JobDescriptionDir).To(Equal("jd_uploads"))
		})

		It("should never default a secret", func() {
			cfg := &internal.Config{}
			cfg.ApplyDefaults()

			Expect(cfg.Security.JWTSecret).To(BeEmpty())
			Expect(cfg.LLM.APIKey).To(BeEmpty())
		})
	})

	Describe("Validate", func() {
		It("should accept a complete configuration", func() {
			Expect(validConfig().Validate()).To(Succeed())
		})

		It("should reject a short jwt secret", func() {
			cfg := validConfig()
			cfg.Security.JWTSecret = "short"

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("JWTSecret")))
		})

		It("should require minio credentials for the minio driver", func() {
			cfg := validConfig()
			cfg.Storage.Driver = "minio"

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("minio driver requires")))
		})

		It("should reject more idle than open connections", func() {
			cfg := validConfig()
			cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("max_idle_conns")))
		})
	})

	Describe("DSN", func() {
		It("should build a postgres url from the parts", func() {
			cfg := validConfig()
			Expect(cfg.Database.GetDSN()).To(Equal("postgres://app:hunter2@db:5432/talent?sslmode=disable"))
		})

		It("should prefer an explicit source", func() {
			cfg := validConfig()
			cfg.Database.Source = "postgres://x@y/z"
			Expect(cfg.Database.GetDSN()).To(Equal("postgres://x@y/z"))
		})

		It("should redact the password", func() {
			cfg := validConfig()
			Expect(cfg.Database.RedactedDSN()).NotTo(ContainSubstring("hunter2"))
		})
	})

	It("should keep secrets out of LogValue", func() {
		cfg := validConfig()
		var sb strings.Builder
		slog.New(slog.NewTextHandler(&sb, nil)).Info("cfg", "config", cfg)

		Expect(sb.String()).NotTo(ContainSubstring("hunter2"))
		Expect(sb.String()).NotTo(ContainSubstring(cfg.Security.JWTSecret))
		Expect(sb.String()).To(ContainSubstring("llm_api_key_set=true"))
	})

	It("should load from APP_ variables", func() {
		GinkgoT().Setenv("APP_LLM_PROVIDER", "openai")
		GinkgoT().Setenv("APP_HTTP_SERVER_PORT", "9000")

		cfg := internal.LoadConfigFromEnv()

		Expect(cfg.LLM.Provider).To(Equal("openai"))
		Expect(cfg.Server.Port).To(Equal(9000))
		Expect(cfg.Env).To(Equal("production"))
	})
})
