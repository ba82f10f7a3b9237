package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/talent-intake/internal/transport/rest"
	"github.com/frahmantamala/talent-intake/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Health", func() {
	health := func(checks ...rest.Check) (int, rest.HealthResponse) {
		router := chi.NewRouter()
		rest.RegisterAllRoutes(router, nil, rest.Handlers{HealthChecks: checks}, logger.Discard())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		var resp rest.HealthResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return w.Code, resp
	}

	It("should report every component without leaking probe errors", func() {
		code, resp := health(rest.Check{
			Name:    "storage",
			Failure: "storage unreachable",
			Probe: func(ctx context.Context) error {
				return errors.New("dial tcp minio:9000: secret-host")
			},
		})

		Expect(code).To(Equal(http.StatusServiceUnavailable))
		Expect(resp.Status).To(Equal(rest.HealthUnhealthy))
		Expect(resp.Components).To(HaveKeyWithValue("postgres", HaveField("Message", "database unreachable")))
		Expect(resp.Components).To(HaveKeyWithValue("storage", HaveField("Message", "storage unreachable")))
	})

	It("should mark passing components healthy", func() {
		_, resp := health(rest.Check{
			Name:  "storage",
			Probe: func(ctx context.Context) error { return nil },
		})

		Expect(resp.Components["storage"].Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components["postgres"].Status).To(Equal(rest.HealthUnhealthy))
	})
})
