package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

var registerSwagOnce sync.Once

// APIDocument is the validated OpenAPI document of the REST surface.
type APIDocument struct {
	doc  *openapi3.T
	json []byte
}

// LoadAPIDocument parses and validates the embedded document and makes it
// the document behind /swagger/*.
func LoadAPIDocument(ctx context.Context) (*APIDocument, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openapi document: %w", err)
	}

	d := &APIDocument{doc: doc, json: raw}
	registerSwagOnce.Do(func() {
		swag.Register(swag.Name, d)
	})
	return d, nil
}

// ReadDoc implements swag.Swagger.
func (d *APIDocument) ReadDoc() string {
	return string(d.json)
}

func (d *APIDocument) Version() string {
	return d.doc.Info.Version
}

// HasOperation reports whether the document describes method on path.
func (d *APIDocument) HasOperation(method, path string) bool {
	item := d.doc.Paths.Find(path)
	if item == nil {
		return false
	}
	return item.GetOperation(method) != nil
}

// Serve handles GET /openapi.json.
func (d *APIDocument) Serve(ctx echo.Context) error {
	return ctx.JSONBlob(http.StatusOK, d.json)
}
