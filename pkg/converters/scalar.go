package converters

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/properties"
)

var timeType = reflect.TypeOf(time.Time{})

// dateLayouts are tried in order when parsing date and datetime fields.
var dateLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"20060102",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ExtractCheckbox reads "1" or "true" as true. An empty value is false.
func ExtractCheckbox(_ context.Context, _ *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	if baseType(prop.Type).Kind() != reflect.Bool {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}

	raw := strings.TrimSpace(field.RawValue)
	if raw == "" {
		return reflect.ValueOf(false), models.MapStatusSuccess, nil
	}
	checked, err := strconv.ParseBool(raw)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("invalid checkbox value %q", raw)
	}
	return reflect.ValueOf(checked).Convert(baseType(prop.Type)), models.MapStatusSuccess, nil
}

// ExtractDate parses date and datetime fields into time.Time.
func ExtractDate(_ context.Context, _ *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	if baseType(prop.Type) != timeType {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}

	raw := strings.TrimSpace(field.RawValue)
	if raw == "" {
		return reflect.Value{}, models.MapStatusFieldEmpty, nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, err
	}
	if parsed.IsZero() {
		return reflect.Value{}, models.MapStatusValueEmpty, nil
	}
	return reflect.ValueOf(parsed), models.MapStatusSuccess, nil
}

// ParseDate parses a stored date value. Values without a zone are UTC.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date value %q", raw)
}

// ExtractNumber parses integer and number fields into any integer or
// floating point property. Integer properties reject fractional values.
func ExtractNumber(_ context.Context, _ *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	target := baseType(prop.Type)
	if !isNumericKind(target.Kind()) {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}

	raw := strings.TrimSpace(field.RawValue)
	if raw == "" {
		return reflect.Value{}, models.MapStatusFieldEmpty, nil
	}

	value := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, target.Bits())
		if err != nil {
			return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("invalid integer value %q: %w", raw, err)
		}
		value.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, target.Bits())
		if err != nil {
			return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("invalid integer value %q: %w", raw, err)
		}
		value.SetUint(n)
	default:
		n, err := strconv.ParseFloat(raw, target.Bits())
		if err != nil {
			return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("invalid number value %q: %w", raw, err)
		}
		value.SetFloat(n)
	}
	return value, models.MapStatusSuccess, nil
}

func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

var (
	stringMapType = reflect.TypeOf(map[string]string{})
	urlValuesType = reflect.TypeOf(url.Values{})
)

// ExtractNameValueList decodes a query encoded name value list into
// map[string]string or url.Values.
func ExtractNameValueList(_ context.Context, _ *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	target := baseType(prop.Type)
	if target != stringMapType && target != urlValuesType {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}

	raw := strings.TrimSpace(field.RawValue)
	if raw == "" {
		return reflect.Value{}, models.MapStatusFieldEmpty, nil
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("invalid name value list: %w", err)
	}
	if len(values) == 0 {
		return reflect.Value{}, models.MapStatusValueEmpty, nil
	}

	if target == urlValuesType {
		return reflect.ValueOf(values), models.MapStatusSuccess, nil
	}
	pairs := make(map[string]string, len(values))
	for key := range values {
		pairs[key] = values.Get(key)
	}
	return reflect.ValueOf(pairs), models.MapStatusSuccess, nil
}
