package converters

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/Gobusters/ectolinq"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/properties"
)

// ExtractMultilist maps a multi reference field onto a slice of models built
// from the referenced nodes, or onto a slice of their ids. Order follows the
// stored references. An empty field yields an empty, non-nil slice.
func ExtractMultilist(ctx context.Context, mc *Context, field models.Field, prop *properties.Property) (reflect.Value, models.MapStatus, error) {
	sliceType := baseType(prop.Type)
	if sliceType.Kind() != reflect.Slice {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}
	elemType := sliceType.Elem()
	if elemType == uuidType {
		return referenceIDs(field, sliceType)
	}
	if !properties.IsModelType(elemType) {
		return reflect.Value{}, models.MapStatusTypeMismatch, nil
	}

	if strings.TrimSpace(field.RawValue) == "" {
		return reflect.MakeSlice(sliceType, 0, 0), models.MapStatusSuccess, nil
	}

	children, err := mc.Store.GetChildrenReferencedBy(ctx, field)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("failed to load referenced nodes: %w", err)
	}
	children = ectolinq.Filter(children, func(child *models.Node) bool {
		return child != nil
	})

	items := reflect.MakeSlice(sliceType, 0, len(children))
	for _, child := range children {
		item, err := mapNested(ctx, mc, child, elemType)
		if err != nil {
			return reflect.Value{}, models.MapStatusExceptionHandled, fmt.Errorf("failed to map referenced node %s: %w", child.ID, err)
		}
		items = reflect.Append(items, item)
	}
	return items, models.MapStatusSuccess, nil
}

func referenceIDs(field models.Field, sliceType reflect.Type) (reflect.Value, models.MapStatus, error) {
	ids, err := models.ParseReferences(field.RawValue)
	if err != nil {
		return reflect.Value{}, models.MapStatusExceptionHandled, err
	}
	items := reflect.MakeSlice(sliceType, 0, len(ids))
	for _, id := range ids {
		items = reflect.Append(items, reflect.ValueOf(id))
	}
	return items, models.MapStatusSuccess, nil
}
