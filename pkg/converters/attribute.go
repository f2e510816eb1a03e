package converters

import (
	"context"
	"fmt"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Attribute suffixes appended to a field's property name.
const (
	SuffixURL         = "Url"
	SuffixAlt         = "Alt"
	SuffixTarget      = "Target"
	SuffixText        = "Text"
	SuffixTitle       = "Title"
	SuffixTargetItem  = "TargetItem"
	SuffixWidth       = "Width"
	SuffixHeight      = "Height"
	SuffixSvg         = "Svg"
	SuffixAnchor      = "Anchor"
	SuffixQueryString = "QueryString"
)

// AttributeConverter maps one attribute of a composite field onto the
// property "<FieldName><Suffix>". Several attribute converters run for the
// same field, each reporting its own status.
type AttributeConverter struct {
	name    string
	suffix  string
	extract Extractor
}

func NewAttributeConverter(name, suffix string, extract Extractor) *AttributeConverter {
	return &AttributeConverter{
		name:    name,
		suffix:  suffix,
		extract: extract,
	}
}

func (c *AttributeConverter) Name() string {
	return c.name
}

func (c *AttributeConverter) Suffix() string {
	return c.suffix
}

func (c *AttributeConverter) Map(ctx context.Context, mc *Context, field models.Field) (status models.MapStatus) {
	defer recoverStatus(ctx, mc, c.name, field, &status)

	prop, ok := mc.Descriptor.LookupSuffixed(field.Name, c.suffix)
	if !ok {
		return models.MapStatusNoMatchingProperty
	}
	if prop.Directive.Ignore() {
		return models.MapStatusExplicitIgnore
	}

	value, status, err := c.extract(ctx, mc, field, prop)
	if err != nil {
		logException(ctx, mc, c.name, field, prop.Name, fmt.Errorf("failed to map %s attribute: %w", c.suffix, err))
		return models.MapStatusExceptionHandled
	}
	if status != models.MapStatusSuccess {
		return status
	}
	if !prop.Assign(mc.Model, value) {
		return models.MapStatusTypeMismatch
	}
	return models.MapStatusSuccess
}
