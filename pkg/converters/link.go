package converters

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/properties"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

// ExtractGeneralLink maps a general link onto an address, the id of the
// linked node or a model built from the linked node.
func ExtractGeneralLink(ctx context.Context, mc *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	if strings.TrimSpace(field.RawValue) == "" {
		return reflect.Value{}, models.MapStatusFieldEmpty, nil
	}
	link, err := models.ParseLink(field.RawValue)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, err
	}

	target := baseType(prop.Type)
	if isURLType(target) || isTextType(target) {
		return linkAddressValue(ctx, mc, link, prop)
	}
	if !link.IsInternal() {
		if target == uuidType || properties.IsModelType(prop.Type) {
			return reflect.Value{}, models.MapStatusValueEmpty, nil
		}
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}
	id, err := link.TargetID()
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, err
	}
	return targetValue(ctx, mc, prop, id)
}

// ExtractReference maps a single reference field (internal link, droplink,
// droptree) onto the referenced node.
func ExtractReference(ctx context.Context, mc *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	if strings.TrimSpace(field.RawValue) == "" {
		return reflect.Value{}, models.MapStatusFieldEmpty, nil
	}
	id, err := models.ParseReference(field.RawValue)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, err
	}
	return targetValue(ctx, mc, prop, id)
}

// targetValue builds the value of prop from the node with the given id:
// the id itself, the node's address or a nested model.
func targetValue(ctx context.Context, mc *Context, prop *properties.Property, id uuid.UUID) (reflect.Value, models.MapStatus, error) {
	target := baseType(prop.Type)
	if target == uuidType {
		return reflect.ValueOf(id), models.MapStatusSuccess, nil
	}
	if !isURLType(target) && !isTextType(target) && !properties.IsModelType(prop.Type) {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}

	node, err := mc.Store.GetNode(ctx, id)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("failed to load referenced node %s: %w", id, err)
	}
	if node == nil {
		return reflect.Value{}, models.MapStatusValueEmpty, nil
	}

	if properties.IsModelType(prop.Type) {
		value, err := mapNested(ctx, mc, node, prop.Type)
		if err != nil {
			return reflect.Value{}, models.MapStatusExceptionHandled, err
		}
		return value, models.MapStatusSuccess, nil
	}

	address, err := resolveAddress(ctx, mc, node)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, err
	}
	return addressValue(prop, address)
}

// linkAddress resolves the address a link points at. Internal links are
// resolved through the link resolver and keep their query string and anchor.
func linkAddress(ctx context.Context, mc *Context, link models.LinkValue) (string, error) {
	switch {
	case link.IsInternal():
		id, err := link.TargetID()
		if err != nil {
			return "", err
		}
		node, err := mc.Store.GetNode(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to load linked node %s: %w", id, err)
		}
		if node == nil {
			return "", nil
		}
		address, err := resolveAddress(ctx, mc, node)
		if err != nil || address == "" {
			return address, err
		}
		if query := strings.TrimPrefix(link.QueryString, "?"); query != "" {
			address += "?" + query
		}
		if anchor := strings.TrimPrefix(link.Anchor, "#"); anchor != "" {
			address += "#" + anchor
		}
		return address, nil
	case link.LinkType == models.LinkTypeAnchor && link.Anchor != "":
		return "#" + strings.TrimPrefix(link.Anchor, "#"), nil
	case link.LinkType == models.LinkTypeMailto && link.URL != "" && !strings.HasPrefix(link.URL, "mailto:"):
		return "mailto:" + link.URL, nil
	default:
		return link.URL, nil
	}
}

func linkAddressValue(ctx context.Context, mc *Context, link models.LinkValue, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	address, err := linkAddress(ctx, mc, link)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, err
	}
	return addressValue(prop, address)
}

func addressValue(prop *properties.Property, address string) (reflect.Value, models.MapStatus, error) {
	if address == "" {
		return reflect.Value{}, models.MapStatusValueEmpty, nil
	}
	value, err := urlValue(prop.Type, address)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, err
	}
	return value, models.MapStatusSuccess, nil
}

func resolveAddress(ctx context.Context, mc *Context, node *models.Node) (string, error) {
	if mc.Links == nil {
		return "", fmt.Errorf("no link resolver configured")
	}
	address, err := mc.Links.ResolveAbsoluteURL(ctx, node)
	if err != nil {
		return "", fmt.Errorf("failed to resolve address of node %s: %w", node.ID, err)
	}
	return address, nil
}

// link attribute extractors

func extractLinkURL(ctx context.Context, mc *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	target := baseType(prop.Type)
	if !isURLType(target) && !isTextType(target) {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}
	link, status, err := parseLinkField(field)
	if status != models.MapStatusSuccess {
		return reflect.Value{}, status, err
	}
	return linkAddressValue(ctx, mc, link, prop)
}

func extractLinkTargetItem(ctx context.Context, mc *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	if baseType(prop.Type) != uuidType && !properties.IsModelType(prop.Type) {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}
	link, status, err := parseLinkField(field)
	if status != models.MapStatusSuccess {
		return reflect.Value{}, status, err
	}
	if !link.IsInternal() {
		return reflect.Value{}, models.MapStatusValueEmpty, nil
	}
	id, err := link.TargetID()
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, err
	}
	return targetValue(ctx, mc, prop, id)
}

// linkText builds an extractor for one of the link's text attributes.
func linkText(get func(models.LinkValue) string) Extractor {
	return func(_ context.Context, _ *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
		if !isTextType(baseType(prop.Type)) {
			return reflect.Value{}, models.MapStatusTypeMismatch, nil
		}
		link, status, err := parseLinkField(field)
		if status != models.MapStatusSuccess {
			return reflect.Value{}, status, err
		}
		return textAttribute(prop, get(link))
	}
}

func parseLinkField(field models.Field) (models.LinkValue, models.MapStatus, error) {
	if strings.TrimSpace(field.RawValue) == "" {
		return models.LinkValue{}, models.MapStatusFieldEmpty, nil
	}
	link, err := models.ParseLink(field.RawValue)
	if err != nil {
		return link, models.MapStatusExceptionHandled, err
	}
	return link, models.MapStatusSuccess, nil
}

func textAttribute(prop *properties.Property, text string) (reflect.Value, models.MapStatus, error) {
	if text == "" {
		return reflect.Value{}, models.MapStatusValueEmpty, nil
	}
	return textValue(prop.Type, text), models.MapStatusSuccess, nil
}
