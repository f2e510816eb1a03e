package errors

import (
	"errors"
	"fmt"
	"strings"
)

// MappingError describes a failure tied to a model, field, property or
// converter. Field-level mapping errors are normally isolated and only
// surface when the engine is configured to stop on the first failure.
type MappingError struct {
	Model     string
	Field     string
	Property  string
	Converter string
	Message   string
	cause     error
}

func NewMappingError(msg string) *MappingError {
	return &MappingError{
		Message: msg,
	}
}

// NewMappingErrorf creates a MappingError with a formatted message. A %w verb
// keeps the wrapped error reachable through errors.Unwrap.
func NewMappingErrorf(format string, args ...any) *MappingError {
	err := fmt.Errorf(format, args...)
	return &MappingError{
		Message: err.Error(),
		cause:   errors.Unwrap(err),
	}
}

func WrapMappingError(e error) *MappingError {
	if e == nil {
		return nil
	}

	var mappingError *MappingError
	if errors.As(e, &mappingError) {
		return mappingError
	}

	return &MappingError{
		Message: e.Error(),
		cause:   e,
	}
}

func (e *MappingError) Error() string {
	path := []string{}
	if e.Model != "" {
		path = append(path, fmt.Sprintf("model '%s'", e.Model))
	}
	if e.Field != "" {
		path = append(path, fmt.Sprintf("field '%s'", e.Field))
	}
	if e.Property != "" {
		path = append(path, fmt.Sprintf("property '%s'", e.Property))
	}
	if e.Converter != "" {
		path = append(path, fmt.Sprintf("converter '%s'", e.Converter))
	}

	if len(path) == 0 {
		return e.Message
	}

	return strings.Join(path, " -> ") + ": " + e.Message
}

func (e *MappingError) Unwrap() error {
	return e.cause
}

func (e *MappingError) AddModel(model string) *MappingError {
	e.Model = model
	return e
}

func (e *MappingError) AddField(fieldName string) *MappingError {
	e.Field = fieldName
	return e
}

func (e *MappingError) AddProperty(property string) *MappingError {
	e.Property = property
	return e
}

func (e *MappingError) AddConverter(converter string) *MappingError {
	e.Converter = converter
	return e
}

func IsMappingError(err error) bool {
	var mappingError *MappingError
	return errors.As(err, &mappingError)
}

// ConfigurationError signals a deployment defect: an unknown or
// unconstructible converter, or an invalid mapper configuration. It is always
// fatal for the mapping call that hits it.
type ConfigurationError struct {
	TypeTag   string
	Converter string
	Message   string
	cause     error
}

func NewConfigurationError(msg string) *ConfigurationError {
	return &ConfigurationError{Message: msg}
}

func WrapConfigurationError(e error, msg string) *ConfigurationError {
	if e == nil {
		return nil
	}
	return &ConfigurationError{Message: msg, cause: e}
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("mapper configuration")
	if e.TypeTag != "" {
		fmt.Fprintf(&b, " type tag '%s'", e.TypeTag)
	}
	if e.Converter != "" {
		fmt.Fprintf(&b, " converter '%s'", e.Converter)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.cause
}

func (e *ConfigurationError) AddTypeTag(tag string) *ConfigurationError {
	e.TypeTag = tag
	return e
}

func (e *ConfigurationError) AddConverter(name string) *ConfigurationError {
	e.Converter = name
	return e
}

func IsConfigurationError(err error) bool {
	var configError *ConfigurationError
	return errors.As(err, &configError)
}

// AsConfigurationError returns the configuration error in err's chain.
func AsConfigurationError(err error) (*ConfigurationError, bool) {
	var configError *ConfigurationError
	if errors.As(err, &configError) {
		return configError, true
	}
	return nil, false
}
