// Package converters holds the field conversion strategies. Each converter
// takes one field of a node and assigns it, or values derived from it, to one
// or more properties of a model.
package converters

import (
	"context"
	"fmt"
	"net/url"
	"reflect"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/properties"
)

// Converter maps one field onto the model held by mc.
type Converter interface {
	Name() string
	Map(ctx context.Context, mc *Context, field models.Field) models.MapStatus
}

// Factory constructs a converter. Converters are stateless, so a factory is
// invoked once per configuration and the instance is shared.
type Factory func() (Converter, error)

// ModelMapper maps a node into a freshly allocated model. The engine provides
// it so link and list converters can build nested models.
type ModelMapper interface {
	MapInto(ctx context.Context, node *models.Node, target reflect.Value) error
}

// Services are the collaborators available to converters.
type Services struct {
	Store  models.NodeStore
	Links  models.LinkResolver
	Media  models.MediaService
	Logger ectologger.Logger
	Mapper ModelMapper
}

// Context is the per-node state shared by the converters of one mapping call.
type Context struct {
	Services
	Node       *models.Node
	Model      reflect.Value
	Descriptor *properties.Descriptor

	fatal error
}

// NewContext prepares a converter context for an addressable struct value.
func NewContext(services Services, node *models.Node, model reflect.Value, descriptor *properties.Descriptor) *Context {
	return &Context{
		Services:   services,
		Node:       node,
		Model:      model,
		Descriptor: descriptor,
	}
}

// Abort records an error that must stop the whole mapping call, such as a
// configuration error raised by a nested mapping.
func (mc *Context) Abort(err error) {
	if mc.fatal == nil {
		mc.fatal = err
	}
}

// Fatal returns the error recorded by Abort.
func (mc *Context) Fatal() error {
	return mc.fatal
}

type editModeKey struct{}

// WithEditMode marks ctx as an authoring context. Converters honouring
// RenderAsURL with edit fallback render instead of resolving addresses.
func WithEditMode(ctx context.Context) context.Context {
	return context.WithValue(ctx, editModeKey{}, true)
}

// IsEditing reports whether ctx was marked with WithEditMode.
func IsEditing(ctx context.Context) bool {
	editing, _ := ctx.Value(editModeKey{}).(bool)
	return editing
}

var (
	urlType    = reflect.TypeOf(url.URL{})
	urlPtrType = reflect.TypeOf(&url.URL{})
)

// isTextType reports whether t is a string or trusted markup type.
func isTextType(t reflect.Type) bool {
	return t.Kind() == reflect.String
}

func isURLType(t reflect.Type) bool {
	return t == urlType || t == urlPtrType
}

// baseType strips one level of pointer.
func baseType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// textValue builds a value of the property's string kind type from s, so
// template.HTML and named string types receive their own type.
func textValue(t reflect.Type, s string) reflect.Value {
	return reflect.ValueOf(s).Convert(baseType(t))
}

// urlValue builds a string or url.URL value for an address.
func urlValue(t reflect.Type, address string) (reflect.Value, error) {
	bt := baseType(t)
	if bt.Kind() == reflect.String {
		return textValue(bt, address), nil
	}
	parsed, err := url.Parse(address)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("invalid address %q: %w", address, err)
	}
	return reflect.ValueOf(*parsed), nil
}

// newModelValue allocates a model of type t (a struct or pointer to struct).
// It returns the value to assign and the addressable struct to map into.
func newModelValue(t reflect.Type) (assign reflect.Value, target reflect.Value) {
	if t.Kind() == reflect.Pointer {
		ptr := reflect.New(t.Elem())
		return ptr, ptr.Elem()
	}
	v := reflect.New(t).Elem()
	return v, v
}

// mapNested maps node into a fresh instance of t. Configuration errors abort
// the enclosing call.
func mapNested(ctx context.Context, mc *Context, node *models.Node, t reflect.Type) (reflect.Value, error) {
	if mc.Mapper == nil {
		return reflect.Value{}, fmt.Errorf("nested mapping is not available")
	}
	assign, target := newModelValue(t)
	if err := mc.Mapper.MapInto(ctx, node, target); err != nil {
		if errors.IsConfigurationError(err) {
			mc.Abort(err)
		}
		return reflect.Value{}, err
	}
	return assign, nil
}

// recoverStatus turns a converter panic into ExceptionHandled.
func recoverStatus(ctx context.Context, mc *Context, converter string, field models.Field, status *models.MapStatus) {
	if r := recover(); r != nil {
		logException(ctx, mc, converter, field, "", fmt.Errorf("converter panicked: %v", r))
		*status = models.MapStatusExceptionHandled
	}
}

func logException(ctx context.Context, mc *Context, converter string, field models.Field, property string, err error) {
	if mc.Logger == nil {
		return
	}
	mc.Logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
		"field":     field.Name,
		"type_tag":  field.TypeTag,
		"converter": converter,
		"property":  property,
		"node_id":   field.OwningNodeID.String(),
	}).Warn("Field conversion failed")
}
