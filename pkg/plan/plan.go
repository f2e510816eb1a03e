// Package plan records which fields of a schema produced values for a model
// type, so later mappings of the same pair skip discovery.
package plan

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Key identifies a plan by model type and node schema.
type Key struct {
	ModelType reflect.Type
	Schema    models.SchemaID
}

func NewKey(modelType reflect.Type, schema models.SchemaID) Key {
	if modelType != nil && modelType.Kind() == reflect.Pointer {
		modelType = modelType.Elem()
	}
	return Key{ModelType: modelType, Schema: schema}
}

// TypeName is the fully qualified name of the key's model type.
func (k Key) TypeName() string {
	if k.ModelType == nil {
		return ""
	}
	if k.ModelType.Name() != "" && k.ModelType.PkgPath() != "" {
		return k.ModelType.PkgPath() + "." + k.ModelType.Name()
	}
	return k.ModelType.String()
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%s", k.TypeName(), k.Schema)
}

// Plan is the ordered list of productive field names for a key. A plan is
// never modified after construction; a new plan replaces it wholesale.
type Plan struct {
	key       Key
	fields    []string
	createdAt time.Time
}

func New(key Key, fields []string) *Plan {
	return &Plan{
		key:       key,
		fields:    append([]string{}, fields...),
		createdAt: time.Now().UTC(),
	}
}

func (p *Plan) Key() Key {
	return p.key
}

// Fields returns a copy of the plan's field names in mapping order.
func (p *Plan) Fields() []string {
	return append([]string{}, p.fields...)
}

func (p *Plan) Len() int {
	return len(p.fields)
}

func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

// Cache stores plans. Implementations are safe for concurrent use and the
// last writer wins.
type Cache interface {
	Get(ctx context.Context, key Key) (*Plan, bool)
	AddOrReplace(ctx context.Context, p *Plan)
}

var (
	defaultCache *MemoryCache
	defaultOnce  sync.Once
)

// Default returns the process-wide in-memory cache.
func Default() *MemoryCache {
	defaultOnce.Do(func() {
		defaultCache = NewMemoryCache(0)
	})
	return defaultCache
}
