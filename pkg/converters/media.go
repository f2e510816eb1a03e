package converters

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/properties"
)

// SvgContentKind is the asset kind whose content is inlined into Svg
// properties.
const SvgContentKind = "image/svg+xml"

// ExtractMedia maps an image or file field onto the media node's address,
// its id or a model built from the media node.
func ExtractMedia(ctx context.Context, mc *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	media, status, err := parseMediaField(field)
	if status != models.MapStatusSuccess {
		return reflect.Value{}, status, err
	}
	id, err := models.ParseReference(media.MediaID)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, err
	}
	return targetValue(ctx, mc, prop, id)
}

// parseMediaField reports FieldEmpty for an empty raw value and ValueEmpty
// when no media item is referenced.
func parseMediaField(field models.Field) (models.MediaValue, models.MapStatus, error) {
	if strings.TrimSpace(field.RawValue) == "" {
		return models.MediaValue{}, models.MapStatusFieldEmpty, nil
	}
	media, err := models.ParseMedia(field.RawValue)
	if err != nil {
		return media, models.MapStatusExceptionHandled, err
	}
	if !media.HasMedia() {
		return media, models.MapStatusValueEmpty, nil
	}
	return media, models.MapStatusSuccess, nil
}

func extractMediaURL(ctx context.Context, mc *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	target := baseType(prop.Type)
	if !isURLType(target) && !isTextType(target) {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}
	return ExtractMedia(ctx, mc, field, prop)
}

func extractMediaAlt(_ context.Context, _ *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	if !isTextType(baseType(prop.Type)) {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}
	media, status, err := parseMediaField(field)
	if status != models.MapStatusSuccess {
		return reflect.Value{}, status, err
	}
	return textAttribute(prop, media.Alt)
}

// mediaDimension builds an extractor for the width or height of an image,
// assignable to text or integer properties.
func mediaDimension(get func(models.MediaValue) string) Extractor {
	return func(_ context.Context, _ *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
		target := baseType(prop.Type)
		if !isTextType(target) && !isNumericKind(target.Kind()) {
			return reflect.Value{}, models.MapStatusTypeMismatch, nil
		}
		media, status, err := parseMediaField(field)
		if status != models.MapStatusSuccess {
			return reflect.Value{}, status, err
		}

		dimension := strings.TrimSpace(get(media))
		if dimension == "" {
			return reflect.Value{}, models.MapStatusValueEmpty, nil
		}
		if isTextType(target) {
			return textValue(prop.Type, dimension), models.MapStatusSuccess, nil
		}
		n, err := strconv.ParseFloat(dimension, 64)
		if err != nil {
			return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("invalid media dimension %q", dimension)
		}
		value := reflect.New(target).Elem()
		switch {
		case value.CanInt():
			value.SetInt(int64(n))
		case value.CanUint():
			value.SetUint(uint64(n))
		default:
			value.SetFloat(n)
		}
		return value, models.MapStatusSuccess, nil
	}
}

// extractMediaSvg inlines the content of an SVG asset. Other asset kinds
// produce no value.
func extractMediaSvg(ctx context.Context, mc *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	if !isTextType(baseType(prop.Type)) {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}
	media, status, err := parseMediaField(field)
	if status != models.MapStatusSuccess {
		return reflect.Value{}, status, err
	}
	if mc.Media == nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("no media service configured")
	}

	reference := strings.Trim(strings.TrimSpace(media.MediaID), "{}")
	kind, err := mc.Media.GetAssetContentKind(ctx, reference)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("failed to read asset kind of %s: %w", reference, err)
	}
	if !strings.EqualFold(strings.TrimSpace(kind), SvgContentKind) {
		return reflect.Value{}, models.MapStatusValueEmpty, nil
	}

	stream, err := mc.Media.GetAssetContentStream(ctx, reference)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("failed to open asset %s: %w", reference, err)
	}
	if stream == nil {
		return reflect.Value{}, models.MapStatusValueEmpty, nil
	}
	defer stream.Close()

	content, err := io.ReadAll(stream)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("failed to read asset %s: %w", reference, err)
	}
	return textAttribute(prop, string(content))
}
