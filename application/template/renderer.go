// Package template renders descriptor files against server configuration
// values, so one descriptor can serve several server setups.
package template

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
)

type templateConfig struct {
	strict bool // fail on missing keys
}

func defaultTemplateConfig() templateConfig {
	return templateConfig{
		strict: true,
	}
}

// TemplateOption configures a GoTemplateEngine.
type TemplateOption func(*templateConfig)

// WithStrict enables or disables strict mode for missing keys. When enabled
// (the default), rendering fails if a referenced key is missing.
func WithStrict(enabled bool) TemplateOption {
	return func(c *templateConfig) {
		c.strict = enabled
	}
}

// GoTemplateEngine implements TemplateEngine using text/template.
type GoTemplateEngine struct {
	config templateConfig
}

// NewGoTemplateEngine creates a new GoTemplateEngine.
func NewGoTemplateEngine(opts ...TemplateOption) ports.TemplateEngine {
	cfg := defaultTemplateConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GoTemplateEngine{config: cfg}
}

// Render processes raw descriptor bytes with the provided server values.
// Values are exposed under the "server" key, matching {{.server.key}} usage
// in descriptor files.
func (e *GoTemplateEngine) Render(raw []byte, values map[string]interface{}) ([]byte, error) {
	tmpl := template.New("descriptor")

	if e.config.strict {
		tmpl = tmpl.Option("missingkey=error")
	}

	tmpl, err := tmpl.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse descriptor template: %w", err)
	}

	var buf bytes.Buffer
	data := map[string]interface{}{
		"server": values,
	}

	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute descriptor template: %w", err)
	}

	return buf.Bytes(), nil
}
