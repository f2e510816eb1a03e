package plan

import (
	"context"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisCacheKey(t *testing.T) {
	c := NewRedisCache(unreachableClient(), testLogger())
	defer c.client.Close()

	key := NewKey(reflect.TypeOf(article{}), "page")
	redisKey := c.RedisKey(key)
	assert.True(t, strings.HasPrefix(redisKey, DefaultRedisPrefix))
	assert.True(t, strings.HasSuffix(redisKey, ":page"))
	assert.Equal(t, redisKey, c.RedisKey(key))
	assert.NotEqual(t, redisKey, c.RedisKey(NewKey(reflect.TypeOf(teaser{}), "page")))
}

func TestRedisCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	c := NewRedisCache(unreachableClient(), testLogger())
	defer c.client.Close()
	key := NewKey(reflect.TypeOf(article{}), "page")

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.AddOrReplace(ctx, New(key, []string{"Title"}))
	p, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, []string{"Title"}, p.Fields())
	assert.Equal(t, 1, c.Local().Len())
}

// Runs against a real server when FERN_TEST_REDIS_ADDR is set.
func TestRedisCacheShared(t *testing.T) {
	addr := os.Getenv("FERN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FERN_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	prefix := "fern:test:" + time.Now().Format("150405.000000") + ":"
	writer := NewRedisCache(client, testLogger(), WithPrefix(prefix), WithTTL(time.Minute))
	reader := NewRedisCache(client, testLogger(), WithPrefix(prefix))

	key := NewKey(reflect.TypeOf(article{}), "page")
	writer.AddOrReplace(ctx, New(key, []string{"Title", "Body"}))

	p, ok := reader.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, []string{"Title", "Body"}, p.Fields())
	assert.Equal(t, 1, reader.Local().Len())

	ttl, err := client.TTL(ctx, writer.RedisKey(key)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
