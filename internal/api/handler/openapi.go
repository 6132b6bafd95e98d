package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"sigs.k8s.io/yaml"

	"github.com/redeinformatica/vitrine/internal/api/middleware"
	"github.com/redeinformatica/vitrine/internal/api/response"
)

// OpenAPIHandler serves the OpenAPI document as JSON.
type OpenAPIHandler struct {
	jsonSpec []byte
}

// NewOpenAPIHandler converts the YAML document to JSON once, stamping
// info.version with the running build's version when one is given.
func NewOpenAPIHandler(yamlSpec []byte, version string) (*OpenAPIHandler, error) {
	raw, err := yaml.YAMLToJSON(yamlSpec)
	if err != nil {
		return nil, fmt.Errorf("converting OpenAPI document to JSON: %w", err)
	}
	if version == "" {
		return &OpenAPIHandler{jsonSpec: raw}, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding OpenAPI document: %w", err)
	}
	info, _ := doc["info"].(map[string]any)
	if info == nil {
		info = map[string]any{}
		doc["info"] = info
	}
	info["version"] = version

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding OpenAPI document: %w", err)
	}
	return &OpenAPIHandler{jsonSpec: out}, nil
}

// ServeHTTP writes the cached JSON document.
func (h *OpenAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if len(h.jsonSpec) == 0 {
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "OpenAPI document unavailable", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.jsonSpec); err != nil {
		slog.Error("failed to write OpenAPI spec response", "error", err)
	}
}
