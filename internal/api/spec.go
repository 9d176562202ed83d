package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

// LoadSpec converts the generated Swagger 2.0 document to OpenAPI 3 and
// validates it. Servers are dropped so routes match on path alone.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	var doc2 openapi2.T
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc2); err != nil {
		return nil, fmt.Errorf("failed to parse swagger document: %w", err)
	}

	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("failed to convert swagger document: %w", err)
	}
	doc3.Servers = nil

	if err := doc3.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	return doc3, nil
}

// NewRouter builds the route matcher used for request validation.
func NewRouter(doc *openapi3.T) (routers.Router, error) {
	return legacy.NewRouter(doc)
}

// RegisterDocsRoutes serves the Swagger 2.0 source and its OpenAPI 3 form.
func RegisterDocsRoutes(mux *http.ServeMux, doc *openapi3.T) {
	mux.HandleFunc("GET /api/docs/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(SwaggerInfo.ReadDoc()))
	})

	mux.HandleFunc("GET /api/docs/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	})
}
