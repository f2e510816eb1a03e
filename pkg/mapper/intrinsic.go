package mapper

import (
	"context"
	"net/url"
	"reflect"

	"github.com/google/uuid"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/properties"
)

// Properties filled from the node rather than from its fields.
const (
	PropertyName        = "Name"
	PropertyDisplayName = "DisplayName"
	PropertyID          = "ID"
	PropertyURL         = "URL"
	PropertyParent      = "Parent"
)

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	urlType  = reflect.TypeOf(url.URL{})
)

// mapIntrinsic fills the intrinsic properties the model declares. Unlike
// field mapping, any failure here fails the call.
func (m *Mapper) mapIntrinsic(ctx context.Context, node *models.Node, target reflect.Value, descriptor *properties.Descriptor) error {
	modelName := target.Type().String()
	intrinsic := func(name string) (*properties.Property, bool) {
		prop, ok := descriptor.Lookup(name)
		if !ok || prop.Directive.Ignore() {
			return nil, false
		}
		return prop, true
	}

	if prop, ok := intrinsic(PropertyName); ok && isText(prop.Type) {
		prop.Assign(target, textValue(prop.Type, node.Name))
	}
	if prop, ok := intrinsic(PropertyDisplayName); ok && isText(prop.Type) {
		prop.Assign(target, textValue(prop.Type, node.GetDisplayName()))
	}

	if prop, ok := intrinsic(PropertyID); ok {
		switch {
		case baseType(prop.Type) == uuidType:
			prop.Assign(target, reflect.ValueOf(node.ID))
		case isText(prop.Type):
			prop.Assign(target, textValue(prop.Type, node.ID.String()))
		}
	}

	if prop, ok := intrinsic(PropertyURL); ok && m.links != nil && (isText(prop.Type) || baseType(prop.Type) == urlType) {
		address, err := m.links.ResolveAbsoluteURL(ctx, node)
		if err != nil {
			return errors.NewMappingErrorf("failed to resolve node address: %w", err).AddModel(modelName).AddProperty(prop.Name)
		}
		if err := assignAddress(target, prop, address); err != nil {
			return errors.WrapMappingError(err).AddModel(modelName).AddProperty(prop.Name)
		}
	}

	if prop, ok := intrinsic(PropertyParent); ok && properties.IsModelType(prop.Type) {
		parent, err := m.store.GetParent(ctx, node)
		if err != nil {
			return errors.NewMappingErrorf("failed to read parent node: %w", err).AddModel(modelName).AddProperty(prop.Name)
		}
		if parent == nil {
			return nil
		}

		parentCtx, ok := climb(ctx, node)
		if !ok {
			return errors.NewMappingErrorf("parent chain of node %s loops", node.ID).AddModel(modelName).AddProperty(prop.Name)
		}
		value, parentTarget := newModel(prop.Type)
		if err := m.mapInto(parentCtx, parent, parentTarget, nil); err != nil {
			if errors.IsConfigurationError(err) {
				return err
			}
			return errors.NewMappingErrorf("failed to map parent node %s: %w", parent.ID, err).AddModel(modelName).AddProperty(prop.Name)
		}
		prop.Assign(target, value)
	}

	return nil
}

func assignAddress(target reflect.Value, prop *properties.Property, address string) error {
	if address == "" {
		return nil
	}
	if isText(prop.Type) {
		prop.Assign(target, textValue(prop.Type, address))
		return nil
	}
	parsed, err := url.Parse(address)
	if err != nil {
		return errors.NewMappingErrorf("invalid node address %q: %w", address, err)
	}
	prop.Assign(target, reflect.ValueOf(*parsed))
	return nil
}

func baseType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func isText(t reflect.Type) bool {
	return baseType(t).Kind() == reflect.String
}

func textValue(t reflect.Type, s string) reflect.Value {
	return reflect.ValueOf(s).Convert(baseType(t))
}

func newModel(t reflect.Type) (value reflect.Value, target reflect.Value) {
	if t.Kind() == reflect.Pointer {
		ptr := reflect.New(t.Elem())
		return ptr, ptr.Elem()
	}
	v := reflect.New(t).Elem()
	return v, v
}
