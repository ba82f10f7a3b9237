package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SpecPath is where the router serves the embedded OpenAPI document.
const SpecPath = "/openapi.yml"

// Handler serves Swagger UI for the embedded contract. Upload endpoints
// are multipart, so the UI keeps operations collapsed by default.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(SpecPath),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
	)
}
