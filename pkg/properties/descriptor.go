// Package properties introspects model types: it enumerates the writable
// properties of a struct, reads their mapping directives and resolves field
// names to properties using the TitleCase naming convention.
package properties

import (
	"fmt"
	"reflect"
	"sync"
)

// Property is one exported, settable field of a model struct.
type Property struct {
	Name      string
	Index     []int
	Type      reflect.Type
	Directive Directive
}

// Field returns the property's value inside model, which must be an
// addressable struct value of the described type.
func (p *Property) Field(model reflect.Value) reflect.Value {
	return model.FieldByIndex(p.Index)
}

// Assign sets value on the property, converting between assignable or
// convertible types. It reports false when the types do not fit.
func (p *Property) Assign(model reflect.Value, value reflect.Value) bool {
	target := p.Field(model)
	if !target.CanSet() || !value.IsValid() {
		return false
	}

	switch {
	case value.Type().AssignableTo(p.Type):
		target.Set(value)
	case value.Type().ConvertibleTo(p.Type) && value.Kind() == p.Type.Kind():
		target.Set(value.Convert(p.Type))
	case p.Type.Kind() == reflect.Pointer && value.Type().AssignableTo(p.Type.Elem()):
		ptr := reflect.New(p.Type.Elem())
		ptr.Elem().Set(value)
		target.Set(ptr)
	default:
		return false
	}
	return true
}

// Descriptor lists the properties of a model type.
type Descriptor struct {
	Type       reflect.Type
	Properties []Property
	byKey      map[string]int
}

// Lookup resolves a field name, or a property name, to a property using the
// naming convention. Explicit field bindings take precedence.
func (d *Descriptor) Lookup(name string) (*Property, bool) {
	idx, ok := d.byKey[lookupKey(name)]
	if !ok {
		return nil, false
	}
	return &d.Properties[idx], true
}

// LookupSuffixed resolves the derived property "<FieldName><Suffix>".
func (d *Descriptor) LookupSuffixed(fieldName, suffix string) (*Property, bool) {
	return d.Lookup(PropertyName(fieldName) + suffix)
}

var descriptors sync.Map // reflect.Type -> *Descriptor

// Describe returns the cached descriptor for a struct type or a pointer to
// one.
func Describe(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("cannot describe nil type")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model type %s is not a struct", t)
	}

	if cached, ok := descriptors.Load(t); ok {
		return cached.(*Descriptor), nil
	}

	d := &Descriptor{
		Type:  t,
		byKey: make(map[string]int),
	}
	d.collect(t, nil)

	actual, _ := descriptors.LoadOrStore(t, d)
	return actual.(*Descriptor), nil
}

// IsModelType reports whether t can be the target of a nested mapping: a
// struct or a pointer to a struct, excluding well known value structs.
func IsModelType(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	switch t.PkgPath() {
	case "time", "net/url", "math/big":
		return false
	}
	return true
}

func (d *Descriptor) collect(t reflect.Type, parent []int) {
	var embedded []reflect.StructField

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			embedded = append(embedded, sf)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		index := append(append([]int{}, parent...), i)
		prop := Property{
			Name:      sf.Name,
			Index:     index,
			Type:      sf.Type,
			Directive: ReadDirective(sf),
		}
		d.add(prop)
	}

	// outer fields shadow promoted ones
	for _, sf := range embedded {
		d.collect(sf.Type, append(append([]int{}, parent...), sf.Index...))
	}
}

func (d *Descriptor) add(prop Property) {
	d.Properties = append(d.Properties, prop)
	idx := len(d.Properties) - 1

	if prop.Directive.FieldName != "" {
		// an explicit binding replaces whatever the convention matched
		d.byKey[lookupKey(prop.Directive.FieldName)] = idx
	}
	key := lookupKey(prop.Name)
	if _, exists := d.byKey[key]; !exists {
		d.byKey[key] = idx
	}
}
