package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/Ramsey-B/fern/pkg/metrics"
)

const DefaultRedisPrefix = "fern:plan:"

// RedisCache shares plans between processes. Plans are served from a local
// MemoryCache first; Redis failures are logged and treated as misses so they
// never fail a mapping.
type RedisCache struct {
	local  *MemoryCache
	client redis.UniversalClient
	logger ectologger.Logger
	ttl    time.Duration
	prefix string
}

type RedisOption func(*RedisCache)

// WithTTL expires shared plans after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		c.ttl = ttl
	}
}

func WithPrefix(prefix string) RedisOption {
	return func(c *RedisCache) {
		c.prefix = prefix
	}
}

// WithLocal replaces the in-process tier.
func WithLocal(local *MemoryCache) RedisOption {
	return func(c *RedisCache) {
		c.local = local
	}
}

func NewRedisCache(client redis.UniversalClient, logger ectologger.Logger, opts ...RedisOption) *RedisCache {
	c := &RedisCache{
		local:  NewMemoryCache(0),
		client: client,
		logger: logger,
		prefix: DefaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type storedPlan struct {
	Model     string    `json:"model"`
	Fields    []string  `json:"fields"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisKey is the shared key of a plan: the prefix, a hash of the model
// type name and the schema id.
func (c *RedisCache) RedisKey(key Key) string {
	return fmt.Sprintf("%s%016x:%s", c.prefix, xxhash.Sum64String(key.TypeName()), key.Schema)
}

func (c *RedisCache) Get(ctx context.Context, key Key) (*Plan, bool) {
	if p, ok := c.local.Get(ctx, key); ok {
		return p, true
	}

	data, err := c.client.Get(ctx, c.RedisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.warn(ctx, err, key, "get", "Failed to read shared mapping plan")
		return nil, false
	}

	var stored storedPlan
	if err := json.Unmarshal(data, &stored); err != nil {
		c.warn(ctx, err, key, "decode", "Failed to decode shared mapping plan")
		return nil, false
	}
	if stored.Model != key.TypeName() {
		// hash collision between model types
		return nil, false
	}

	p := &Plan{
		key:       key,
		fields:    stored.Fields,
		createdAt: stored.CreatedAt,
	}
	c.local.AddOrReplace(ctx, p)
	return p, true
}

func (c *RedisCache) AddOrReplace(ctx context.Context, p *Plan) {
	if p == nil {
		return
	}
	c.local.AddOrReplace(ctx, p)

	data, err := json.Marshal(storedPlan{
		Model:     p.Key().TypeName(),
		Fields:    p.fields,
		CreatedAt: p.CreatedAt(),
	})
	if err != nil {
		c.warn(ctx, err, p.Key(), "encode", "Failed to encode mapping plan")
		return
	}
	if err := c.client.Set(ctx, c.RedisKey(p.Key()), data, c.ttl).Err(); err != nil {
		c.warn(ctx, err, p.Key(), "set", "Failed to share mapping plan")
	}
}

// Local exposes the in-process tier.
func (c *RedisCache) Local() *MemoryCache {
	return c.local
}

func (c *RedisCache) warn(ctx context.Context, err error, key Key, operation, msg string) {
	metrics.RecordPlanCacheError(operation)
	if c.logger == nil {
		return
	}
	c.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
		"plan":      key.String(),
		"operation": operation,
	}).Warn(msg)
}
