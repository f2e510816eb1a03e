package converters

import (
	"context"
	"fmt"
	"reflect"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/properties"
)

// Extractor produces a typed value for prop from field. A status other than
// Success reports why no value was produced; an error is logged and reported
// as ExceptionHandled.
type Extractor func(ctx context.Context, mc *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error)

// FieldConverter maps a field onto the property named after it. Text
// properties receive the node store's rendering of the field; other
// properties receive the value produced by the converter's extractor.
type FieldConverter struct {
	name    string
	extract Extractor
	// resolvesURL lets RenderAsURL text properties receive the extracted
	// address instead of the rendered field.
	resolvesURL bool
}

// NewFieldConverter creates the generic converter. Without an extractor, non
// text properties report TypeMismatch.
func NewFieldConverter(name string, extract Extractor, resolvesURL bool) *FieldConverter {
	return &FieldConverter{
		name:        name,
		extract:     extract,
		resolvesURL: resolvesURL,
	}
}

func (c *FieldConverter) Name() string {
	return c.name
}

func (c *FieldConverter) Map(ctx context.Context, mc *Context, field models.Field) (status models.MapStatus) {
	defer recoverStatus(ctx, mc, c.name, field, &status)

	prop, ok := mc.Descriptor.Lookup(field.Name)
	if !ok {
		return models.MapStatusNoMatchingProperty
	}

	status, err := c.mapProperty(ctx, mc, field, prop)
	if err != nil {
		logException(ctx, mc, c.name, field, prop.Name, err)
		return models.MapStatusExceptionHandled
	}
	return status
}

func (c *FieldConverter) mapProperty(ctx context.Context, mc *Context, field models.Field, prop *properties.Property) (models.MapStatus, error) {
	directive := prop.Directive

	switch {
	case directive.Ignore():
		return models.MapStatusExplicitIgnore, nil
	case directive.RawValueOnly():
		if !isTextType(baseType(prop.Type)) {
			return models.MapStatusTypeMismatch, nil
		}
		return assign(mc, prop, textValue(prop.Type, field.RawValue))
	case directive.HasRenderParameters():
		if !isTextType(baseType(prop.Type)) {
			return models.MapStatusTypeMismatch, nil
		}
		rendered, err := mc.Store.RenderWithParameters(ctx, mc.Node, field.Name, directive.RenderParameters)
		if err != nil {
			return models.MapStatusExceptionHandled, fmt.Errorf("failed to render field with parameters: %w", err)
		}
		return assign(mc, prop, textValue(prop.Type, rendered))
	}

	if isTextType(baseType(prop.Type)) && !c.wantsURL(ctx, directive) {
		rendered, err := mc.Store.RenderDefault(ctx, mc.Node, field.Name)
		if err != nil {
			return models.MapStatusExceptionHandled, fmt.Errorf("failed to render field: %w", err)
		}
		// an empty rendering is still a successful mapping
		return assign(mc, prop, textValue(prop.Type, rendered))
	}

	if c.extract == nil {
		return models.MapStatusTypeMismatch, nil
	}
	value, status, err := c.extract(ctx, mc, field, prop)
	if err != nil {
		return models.MapStatusExceptionHandled, err
	}
	if status != models.MapStatusSuccess {
		return status, nil
	}
	return assign(mc, prop, value)
}

func (c *FieldConverter) wantsURL(ctx context.Context, directive properties.Directive) bool {
	if !c.resolvesURL || !directive.RenderAsURL {
		return false
	}
	return !(directive.EditFallback && IsEditing(ctx))
}

func assign(mc *Context, prop *properties.Property, value reflect.Value) (models.MapStatus, error) {
	if !prop.Assign(mc.Model, value) {
		return models.MapStatusTypeMismatch, nil
	}
	return models.MapStatusSuccess, nil
}
