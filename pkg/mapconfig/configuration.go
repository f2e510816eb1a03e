// Package mapconfig declares which converters run for each field type tag,
// along with the mapper's behavioural toggles.
package mapconfig

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Ramsey-B/fern/pkg/converters"
	"github.com/Ramsey-B/fern/pkg/converters/registry"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

//go:embed default.yaml
var defaultDocument []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

type FieldType struct {
	TypeTag    string   `yaml:"type_tag" validate:"required"`
	Converters []string `yaml:"converters" validate:"required,min=1,dive,required"`
}

// Configuration is immutable once parsed. Converter instances are built
// through the registry the first time a type tag is requested.
type Configuration struct {
	ContinueOnError    bool        `yaml:"continue_on_error"`
	IgnoreSystemFields bool        `yaml:"ignore_system_fields"`
	SystemFieldPrefix  string      `yaml:"system_field_prefix"`
	DefaultConverter   string      `yaml:"default_converter" validate:"required"`
	FieldTypes         []FieldType `yaml:"field_types" validate:"dive"`

	registry *registry.Registry
	byTag    map[string][]string

	mu       sync.RWMutex
	resolved map[string][]converters.Converter
}

// Option customises a parsed configuration.
type Option func(*Configuration)

// WithRegistry resolves converter keys against r instead of the default
// registry.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Configuration) {
		c.registry = r
	}
}

// Parse reads a YAML configuration document. Keys missing from the document
// keep their built-in defaults.
func Parse(data []byte, opts ...Option) (*Configuration, error) {
	c := &Configuration{
		ContinueOnError:    true,
		IgnoreSystemFields: true,
		SystemFieldPrefix:  "__",
		DefaultConverter:   converters.FieldKey,
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.WrapConfigurationError(err, "invalid configuration document")
	}
	if err := validate.Struct(c); err != nil {
		return nil, errors.WrapConfigurationError(validationError(err), "invalid configuration")
	}

	c.byTag = make(map[string][]string, len(c.FieldTypes))
	for _, fieldType := range c.FieldTypes {
		tag := models.NormalizeTypeTag(fieldType.TypeTag)
		if _, exists := c.byTag[tag]; exists {
			return nil, errors.NewConfigurationError("type tag declared more than once").AddTypeTag(tag)
		}
		c.byTag[tag] = append([]string{}, fieldType.Converters...)
	}

	c.registry = registry.Default()
	for _, opt := range opts {
		opt(c)
	}
	c.resolved = map[string][]converters.Converter{}
	return c, nil
}

// Load parses the configuration file at path.
func Load(path string, opts ...Option) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigurationError(err, fmt.Sprintf("failed to read %s", path))
	}
	return Parse(data, opts...)
}

// Default returns the built-in configuration.
func Default(opts ...Option) *Configuration {
	c, err := Parse(defaultDocument, opts...)
	if err != nil {
		panic(fmt.Sprintf("built-in mapper configuration is invalid: %v", err))
	}
	return c
}

// ConverterKeysFor lists the converter keys declared for a type tag, falling
// back to the default converter.
func (c *Configuration) ConverterKeysFor(typeTag string) []string {
	if keys, ok := c.byTag[models.NormalizeTypeTag(typeTag)]; ok {
		return keys
	}
	return []string{c.DefaultConverter}
}

// GetConvertersFor returns the ordered converters for a type tag. Unknown
// converter keys and failing factories produce a ConfigurationError.
func (c *Configuration) GetConvertersFor(typeTag string) ([]converters.Converter, error) {
	tag := models.NormalizeTypeTag(typeTag)

	c.mu.RLock()
	resolved, ok := c.resolved[tag]
	c.mu.RUnlock()
	if ok {
		return resolved, nil
	}

	keys := c.ConverterKeysFor(tag)
	built := make([]converters.Converter, 0, len(keys))
	for _, key := range keys {
		converter, err := c.registry.Get(key)
		if err != nil {
			if configError, ok := errors.AsConfigurationError(err); ok {
				return nil, configError.AddTypeTag(tag)
			}
			return nil, errors.WrapConfigurationError(err, "failed to build converter").AddTypeTag(tag).AddConverter(key)
		}
		built = append(built, converter)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.resolved[tag]; ok {
		return existing, nil
	}
	c.resolved[tag] = built
	return built, nil
}

// Validate checks every declared converter key against the registry.
func (c *Configuration) Validate() error {
	keys := []string{c.DefaultConverter}
	for _, fieldType := range c.FieldTypes {
		keys = append(keys, fieldType.Converters...)
	}
	for _, key := range keys {
		if !c.registry.Has(key) {
			return errors.NewConfigurationError("converter not found").AddConverter(key)
		}
	}
	return nil
}

// IsSystemField reports whether a field is excluded from mapping.
func (c *Configuration) IsSystemField(name string) bool {
	return c.IgnoreSystemFields && c.SystemFieldPrefix != "" && strings.HasPrefix(name, c.SystemFieldPrefix)
}

func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fmt.Sprintf("field '%s' failed rule '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}
