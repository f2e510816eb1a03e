package mapper

import (
	"context"
	"reflect"
	"time"

	"github.com/Gobusters/ectologger"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/mapconfig"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/plan"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Mapper is safe for concurrent use.
type Mapper struct {
	store  models.NodeStore
	links  models.LinkResolver
	media  models.MediaService
	logger ectologger.Logger
	plans  plan.Cache
	config *mapconfig.Provider
}

type Option func(*Mapper)

func WithNodeStore(store models.NodeStore) Option {
	return func(m *Mapper) {
		m.store = store
	}
}

func WithLinkResolver(links models.LinkResolver) Option {
	return func(m *Mapper) {
		m.links = links
	}
}

func WithMediaService(media models.MediaService) Option {
	return func(m *Mapper) {
		m.media = media
	}
}

func WithLogger(logger ectologger.Logger) Option {
	return func(m *Mapper) {
		m.logger = logger
	}
}

// WithPlanCache replaces the process-wide plan cache.
func WithPlanCache(cache plan.Cache) Option {
	return func(m *Mapper) {
		m.plans = cache
	}
}

// WithConfiguration uses a fixed mapper configuration.
func WithConfiguration(c *mapconfig.Configuration) Option {
	return func(m *Mapper) {
		m.config = mapconfig.Static(c)
	}
}

// WithConfigurationProvider loads the configuration lazily from p.
func WithConfigurationProvider(p *mapconfig.Provider) Option {
	return func(m *Mapper) {
		m.config = p
	}
}

// New creates a mapper. A node store is required; the plan cache and the
// configuration default to the process-wide instances.
func New(opts ...Option) (*Mapper, error) {
	m := &Mapper{}
	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		return nil, errors.NewMappingError("a node store is required")
	}
	if m.logger == nil {
		m.logger = ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	}
	if m.plans == nil {
		m.plans = plan.Default()
	}
	if m.config == nil {
		m.config = mapconfig.DefaultProvider()
	}
	return m, nil
}

// MapTo maps node onto model, which must be a non-nil pointer to a struct.
func (m *Mapper) MapTo(ctx context.Context, node *models.Node, model any) error {
	_, err := m.mapTop(ctx, node, model, false)
	return err
}

// MapToWithReport maps like MapTo and reports the outcome of every
// converter that ran.
func (m *Mapper) MapToWithReport(ctx context.Context, node *models.Node, model any) (*Report, error) {
	return m.mapTop(ctx, node, model, true)
}

func (m *Mapper) mapTop(ctx context.Context, node *models.Node, model any, withReport bool) (report *Report, err error) {
	target, err := modelTarget(model)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, errors.NewMappingError("node is required").AddModel(target.Type().String())
	}

	modelName := target.Type().String()
	ctx, span := tracing.StartSpan(ctx, "mapper.MapTo",
		attribute.String("fern.model", modelName),
		attribute.String("fern.node_id", node.ID.String()),
	)
	start := time.Now()
	defer func() {
		metrics.RecordMap(modelName, resultLabel(err), time.Since(start).Seconds())
		tracing.EndSpan(span, err)
	}()

	if withReport {
		report = &Report{Model: modelName, NodeID: node.ID}
	}
	if err = m.mapInto(ctx, node, target, report); err != nil {
		return report, err
	}
	return report, nil
}

// MapInto maps node onto an addressable struct value. Converters use it to
// build nested models; each call counts toward MaxDepth.
func (m *Mapper) MapInto(ctx context.Context, node *models.Node, target reflect.Value) error {
	return m.mapNested(ctx, node, target)
}

// MapNew maps node into a new T. A nil node yields a nil model.
func MapNew[T any](ctx context.Context, m *Mapper, node *models.Node) (*T, error) {
	if node == nil {
		return nil, nil
	}
	model := new(T)
	if err := m.MapTo(ctx, node, model); err != nil {
		return nil, err
	}
	return model, nil
}

// MapCollection maps each node into a new T, keeping the input order. Nil
// nodes are skipped.
func MapCollection[T any](ctx context.Context, m *Mapper, nodes []*models.Node) ([]*T, error) {
	items := make([]*T, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		item, err := MapNew[T](ctx, m, node)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func modelTarget(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	if !value.IsValid() || value.Kind() != reflect.Pointer || value.IsNil() {
		return reflect.Value{}, errors.NewMappingErrorf("model must be a non-nil pointer to a struct, got %T", model)
	}
	if value.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, errors.NewMappingErrorf("model must be a non-nil pointer to a struct, got %T", model)
	}
	return value.Elem(), nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.IsConfigurationError(err):
		return "configuration_error"
	default:
		return "error"
	}
}
