package cmd

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testConfigYML = `
http_server:
  port: 9090
database:
  host: db
  name: talent
  user: app
  password: hunter2
security:
  jwt_secret: 0123456789abcdef0123456789abcdef
  access_token_duration: 15m
llm:
  provider: openai
  api_key: sk-test
  model: gpt-4o-mini
storage:
  driver: local
`

var _ = Describe("loadConfigFile", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "config.yml"), []byte(testConfigYML), 0o600)).To(Succeed())
	})

	It("should read the file and leave defaults to ApplyDefaults", func() {
		cfg, err := loadConfigFile(dir)
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.Server.Port).To(Equal(9090))
		Expect(cfg.Security.AccessTokenDuration).To(Equal(15 * time.Minute))
		Expect(cfg.LLM.Provider).To(Equal("openai"))

		cfg.ApplyDefaults()
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Storage.ResumeDir).To(Equal("resume_uploads"))
		Expect(cfg.Database.GetDSN()).To(ContainSubstring("db:5432/talent"))
	})

	It("should let APP_ variables override the file", func() {
		GinkgoT().Setenv("APP_HTTP_SERVER_PORT", "7070")

		cfg, err := loadConfigFile(dir)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Port).To(Equal(7070))
	})

	It("should fail without a config file", func() {
		_, err := loadConfigFile(GinkgoT().TempDir())
		Expect(err).To(MatchError(ContainSubstring("error reading config")))
	})
})
