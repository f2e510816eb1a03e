package properties

import (
	"reflect"
	"strings"
)

// TagName is the struct tag holding mapping directives.
const TagName = "fern"

// DirectiveKind is the conversion override declared on a property.
type DirectiveKind int

const (
	DirectiveNone DirectiveKind = iota
	DirectiveRenderParameters
	DirectiveRawValueOnly
	DirectiveIgnore
)

// Directive is the parsed form of a property's fern tag.
//
//	Title    string        `fern:"-"`                    // never mapped
//	Body     template.HTML `fern:"raw"`                  // unprocessed raw value
//	Hero     template.HTML `fern:"render=mw=640&mh=480"` // rendered with parameters
//	Cta      string        `fern:"url,editfallback"`     // resolved address
//	Headline string        `fern:"field=Page Title"`     // explicit field binding
type Directive struct {
	Kind             DirectiveKind
	RenderParameters string
	RenderAsURL      bool
	EditFallback     bool
	FieldName        string
}

// Ignore reports whether the property must never receive a value.
func (d Directive) Ignore() bool {
	return d.Kind == DirectiveIgnore
}

// RawValueOnly reports whether conversion is skipped in favour of the raw value.
func (d Directive) RawValueOnly() bool {
	return d.Kind == DirectiveRawValueOnly
}

// HasRenderParameters reports whether the node store renderer is invoked
// with explicit parameters.
func (d Directive) HasRenderParameters() bool {
	return d.Kind == DirectiveRenderParameters
}

// ReadDirective parses the fern tag of a struct field. When several of
// ignore, raw and render are declared the strongest wins:
// ignore > raw > render.
func ReadDirective(field reflect.StructField) Directive {
	var directive Directive

	tag, ok := field.Tag.Lookup(TagName)
	if !ok {
		return directive
	}

	for _, option := range strings.Split(tag, ",") {
		option = strings.TrimSpace(option)
		key, value, _ := strings.Cut(option, "=")
		switch strings.ToLower(key) {
		case "-", "ignore":
			directive.raise(DirectiveIgnore)
		case "raw":
			directive.raise(DirectiveRawValueOnly)
		case "render":
			directive.raise(DirectiveRenderParameters)
			directive.RenderParameters = value
		case "url":
			directive.RenderAsURL = true
		case "editfallback":
			directive.EditFallback = true
		case "field":
			directive.FieldName = strings.TrimSpace(value)
		}
	}

	return directive
}

func (d *Directive) raise(kind DirectiveKind) {
	if kind > d.Kind {
		d.Kind = kind
	}
}
