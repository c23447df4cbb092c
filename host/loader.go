package host

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	apptemplate "github.com/tickgate-dev/tickgate-sdk/application/template"
	"github.com/tickgate-dev/tickgate-sdk/application/validation"
	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
	"github.com/tickgate-dev/tickgate-sdk/infrastructure/parser"
)

// structValidate checks the required fields of a parsed descriptor.
var structValidate = validator.New()

// loaderConfig holds configuration for the Loader.
type loaderConfig struct {
	registry        ports.CapabilityRegistry
	templateEngine  ports.TemplateEngine
	parser          ports.DescriptorParser
	strictTemplates bool
}

func defaultLoaderConfig() loaderConfig {
	return loaderConfig{
		parser:          parser.NewYamlDescriptorParser(),
		strictTemplates: true,
	}
}

// Loader orchestrates the descriptor loading pipeline: template rendering,
// parsing, struct validation, and capability schema validation.
type Loader struct {
	validator ports.DescriptorValidator
	config    loaderConfig
}

// LoaderOption configures the Loader.
type LoaderOption func(*loaderConfig)

// WithRegistry configures the loader with a capability registry. Without one,
// capability grants are not schema-checked.
func WithRegistry(r ports.CapabilityRegistry) LoaderOption {
	return func(c *loaderConfig) {
		c.registry = r
	}
}

// WithParser sets a custom descriptor parser.
func WithParser(p ports.DescriptorParser) LoaderOption {
	return func(c *loaderConfig) {
		c.parser = p
	}
}

// WithTemplateEngine sets a template engine.
func WithTemplateEngine(t ports.TemplateEngine) LoaderOption {
	return func(c *loaderConfig) {
		c.templateEngine = t
	}
}

// WithStrictTemplates enables or disables strict template mode. When enabled
// (the default), rendering fails if a referenced key is missing.
func WithStrictTemplates(enabled bool) LoaderOption {
	return func(c *loaderConfig) {
		c.strictTemplates = enabled
	}
}

// NewLoader creates a new Loader with defaults.
func NewLoader(opts ...LoaderOption) *Loader {
	cfg := defaultLoaderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.templateEngine == nil {
		cfg.templateEngine = apptemplate.NewGoTemplateEngine(
			apptemplate.WithStrict(cfg.strictTemplates),
		)
	}

	l := &Loader{config: cfg}
	if cfg.registry != nil {
		l.validator = validation.NewDescriptorValidator(cfg.registry)
	}
	return l
}

// LoadDescriptor renders, parses, and validates a plugin descriptor. All
// validation failures are folded into one error so operators see the full
// list at once.
func (l *Loader) LoadDescriptor(raw []byte, serverValues map[string]interface{}) (*entities.Descriptor, error) {
	data := raw

	if l.config.templateEngine != nil {
		var err error
		data, err = l.config.templateEngine.Render(raw, serverValues)
		if err != nil {
			return nil, fmt.Errorf("failed to render descriptor: %w", err)
		}
	}

	desc, err := l.config.parser.Parse(data)
	if err != nil {
		return nil, err
	}

	var merr *multierror.Error
	if err := structValidate.Struct(desc); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("descriptor validation failed: %w", err))
	}

	if l.validator != nil {
		res, verr := l.validator.Validate(desc)
		if verr != nil {
			merr = multierror.Append(merr, fmt.Errorf("capability validation error: %w", verr))
		} else {
			for _, ve := range res.Errors {
				merr = multierror.Append(merr, fmt.Errorf("capability %s: %s", ve.Field, ve.Message))
			}
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return desc, nil
}
