// Package swagger serves the OpenAPI description of the read API.
package swagger

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"
)

// Error constants.
var (
	ErrServe = errors.New("swagger serve failed")
)

var (
	jsonOnce sync.Once //nolint:gochecknoglobals // lazily converted document
	jsonDoc  []byte    //nolint:gochecknoglobals // lazily converted document
	jsonErr  error     //nolint:gochecknoglobals // lazily converted document
)

// Register attaches the API docs routes to mux.
// Routes:
//
//	GET /api-docs      -> ReDoc HTML
//	GET /openapi.yaml  -> embedded OpenAPI document
//	GET /openapi.json  -> the same document as JSON
func Register(mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/api-docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	})

	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})

	mux.HandleFunc("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		doc, err := JSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(doc)
	})
}

// JSON returns the OpenAPI document converted to JSON.
func JSON() ([]byte, error) {
	jsonOnce.Do(func() {
		m, err := yaml.Parser().Unmarshal(OpenAPI)
		if err != nil {
			jsonErr = fmt.Errorf("%w: parse openapi: %w", ErrServe, err)
			return
		}
		jsonDoc, jsonErr = json.Marshal(m)
		if jsonErr != nil {
			jsonErr = fmt.Errorf("%w: encode openapi: %w", ErrServe, jsonErr)
		}
	})
	return jsonDoc, jsonErr
}

const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>fflboard API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container" spec-url="/openapi.yaml"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
  </body>
</html>`
