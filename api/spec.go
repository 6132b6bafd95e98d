// Package api holds the OpenAPI document served at /openapi.json.
package api

import _ "embed"

// OpenAPISpec is the YAML OpenAPI 3 document for the HTTP API.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
