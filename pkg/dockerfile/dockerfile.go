// Package dockerfile synthesizes Dockerfile text for batch function images.
//
// Two dialects exist: the default image is rendered from a fixed multi-stage
// template, custom images substitute generated per-function build steps into
// a user-supplied template at a single placeholder token.
package dockerfile

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/akarol/batch-image-builder/pkg/config"
)

// Generator holds the immutable configuration snapshot both dialects read.
type Generator struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

func templateString(pattern string, args map[string]interface{}) (string, error) {
	var output bytes.Buffer
	t := template.Must(template.New(pattern).Funcs(sprig.TxtFuncMap()).Parse(pattern))
	if err := t.Execute(&output, args); err != nil {
		return "", err
	}

	return output.String(), nil
}
