package mapper

import (
	"context"
	"reflect"

	"github.com/google/uuid"

	"github.com/Ramsey-B/fern/pkg/converters"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/mapconfig"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/plan"
	"github.com/Ramsey-B/fern/pkg/properties"
)

// MaxDepth bounds nested mappings through link and list fields. Parent
// chains are not charged; they end at a root node.
const MaxDepth = 32

type depthKey struct{}

type ancestryKey struct{}

// ancestry lists the nodes of the parent chain being mapped, innermost first.
type ancestry struct {
	id   uuid.UUID
	next *ancestry
}

// enter starts a nested mapping. The nested node begins a parent chain of
// its own.
func enter(ctx context.Context) (context.Context, bool) {
	depth, _ := ctx.Value(depthKey{}).(int)
	if depth >= MaxDepth {
		return ctx, false
	}
	ctx = context.WithValue(ctx, depthKey{}, depth+1)
	return context.WithValue(ctx, ancestryKey{}, (*ancestry)(nil)), true
}

// climb records node on the current parent chain. It fails when node is
// already on it.
func climb(ctx context.Context, node *models.Node) (context.Context, bool) {
	chain, _ := ctx.Value(ancestryKey{}).(*ancestry)
	for a := chain; a != nil; a = a.next {
		if a.id == node.ID {
			return ctx, false
		}
	}
	return context.WithValue(ctx, ancestryKey{}, &ancestry{id: node.ID, next: chain}), true
}

func (m *Mapper) mapNested(ctx context.Context, node *models.Node, target reflect.Value) error {
	ctx, ok := enter(ctx)
	if !ok {
		return errors.NewMappingErrorf("maximum nesting depth of %d exceeded", MaxDepth).AddModel(target.Type().String())
	}
	return m.mapInto(ctx, node, target, nil)
}

func (m *Mapper) mapInto(ctx context.Context, node *models.Node, target reflect.Value, report *Report) error {
	modelName := target.Type().String()

	config, err := m.config.Get()
	if err != nil {
		return err
	}
	descriptor, err := properties.Describe(target.Type())
	if err != nil {
		return errors.WrapMappingError(err).AddModel(modelName)
	}

	if err := m.mapIntrinsic(ctx, node, target, descriptor); err != nil {
		return err
	}

	schema, err := m.store.GetSchemaID(ctx, node)
	if err != nil {
		return errors.NewMappingErrorf("failed to read schema of node %s: %w", node.ID, err).AddModel(modelName)
	}

	mc := converters.NewContext(converters.Services{
		Store:  m.store,
		Links:  m.links,
		Media:  m.media,
		Logger: m.logger,
		Mapper: m,
	}, node, target, descriptor)

	key := plan.NewKey(target.Type(), schema)
	cached, hit := m.plans.Get(ctx, key)
	metrics.RecordPlanLookup(hit)
	if report != nil {
		report.Schema = schema
		report.PlanHit = hit
	}

	if hit {
		return m.replay(ctx, config, mc, cached, report)
	}
	return m.discover(ctx, config, mc, key, report)
}

// discover maps every field of the node and caches the productive ones as
// the plan for key. A failed call caches nothing.
func (m *Mapper) discover(ctx context.Context, config *mapconfig.Configuration, mc *converters.Context, key plan.Key, report *Report) error {
	modelName := mc.Model.Type().String()

	fields, err := m.store.GetFields(ctx, mc.Node)
	if err != nil {
		return errors.NewMappingErrorf("failed to read fields of node %s: %w", mc.Node.ID, err).AddModel(modelName)
	}

	productive := make([]string, 0, len(fields))
	for _, field := range fields {
		if config.IsSystemField(field.Name) {
			continue
		}
		ok, err := m.mapField(ctx, config, mc, field, report)
		if err != nil {
			return err
		}
		if ok {
			productive = append(productive, field.Name)
		}
	}

	p := plan.New(key, productive)
	m.plans.AddOrReplace(ctx, p)
	m.logger.WithContext(ctx).WithFields(map[string]any{
		"plan":   key.String(),
		"fields": p.Len(),
	}).Debug("Cached mapping plan")
	return nil
}

// replay maps only the fields named by a cached plan. Fields the node no
// longer has are skipped.
func (m *Mapper) replay(ctx context.Context, config *mapconfig.Configuration, mc *converters.Context, cached *plan.Plan, report *Report) error {
	modelName := mc.Model.Type().String()

	for _, name := range cached.Fields() {
		field, err := m.store.GetField(ctx, mc.Node, name)
		if err != nil {
			fieldErr := errors.NewMappingErrorf("failed to read field: %w", err).AddModel(modelName).AddField(name)
			if !config.ContinueOnError {
				return fieldErr
			}
			m.logger.WithContext(ctx).WithError(fieldErr).Warn("Skipping planned field")
			continue
		}
		if field == nil {
			continue
		}
		if _, err := m.mapField(ctx, config, mc, *field, report); err != nil {
			return err
		}
	}
	return nil
}

// mapField runs every converter configured for the field's type tag and
// reports whether any of them was productive.
func (m *Mapper) mapField(ctx context.Context, config *mapconfig.Configuration, mc *converters.Context, field models.Field, report *Report) (bool, error) {
	list, err := config.GetConvertersFor(field.TypeTag)
	if err != nil {
		return false, err
	}

	var fieldReport *FieldReport
	if report != nil {
		fieldReport = report.addField(field)
	}

	productive := false
	for _, converter := range list {
		status := converter.Map(ctx, mc, field)
		if err := mc.Fatal(); err != nil {
			return false, err
		}

		metrics.RecordFieldConversion(models.NormalizeTypeTag(field.TypeTag), converter.Name(), status.String())
		m.logger.WithContext(ctx).WithFields(map[string]any{
			"model":     mc.Model.Type().String(),
			"field":     field.Name,
			"converter": converter.Name(),
			"status":    status.String(),
		}).Debug("Mapped field")
		if fieldReport != nil {
			fieldReport.add(converter.Name(), status)
		}
		if status.Productive() {
			productive = true
		}
		if status == models.MapStatusExceptionHandled && !config.ContinueOnError {
			return false, errors.NewMappingError("field conversion failed").
				AddModel(mc.Model.Type().String()).
				AddField(field.Name).
				AddConverter(converter.Name())
		}
	}
	return productive, nil
}
