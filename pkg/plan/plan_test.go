package plan

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type article struct {
	Title string
}

type teaser struct {
	Title string
}

func TestPlan(t *testing.T) {
	t.Run("should copy its fields", func(t *testing.T) {
		fields := []string{"Title", "Body"}
		p := New(NewKey(reflect.TypeOf(article{}), "page"), fields)
		fields[0] = "Changed"

		got := p.Fields()
		assert.Equal(t, []string{"Title", "Body"}, got)
		got[1] = "Changed"
		assert.Equal(t, []string{"Title", "Body"}, p.Fields())
		assert.Equal(t, 2, p.Len())
		assert.False(t, p.CreatedAt().IsZero())
	})

	t.Run("should key pointers and values alike", func(t *testing.T) {
		assert.Equal(t, NewKey(reflect.TypeOf(article{}), "page"), NewKey(reflect.TypeOf(&article{}), "page"))
		assert.NotEqual(t, NewKey(reflect.TypeOf(article{}), "page"), NewKey(reflect.TypeOf(teaser{}), "page"))
		assert.Equal(t, "github.com/Ramsey-B/fern/pkg/plan.article@page", NewKey(reflect.TypeOf(article{}), "page").String())
	})
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	key := NewKey(reflect.TypeOf(article{}), "page")

	t.Run("should count hits and misses", func(t *testing.T) {
		c := NewMemoryCache(0)

		_, ok := c.Get(ctx, key)
		assert.False(t, ok)

		c.AddOrReplace(ctx, New(key, []string{"Title"}))
		p, ok := c.Get(ctx, key)
		require.True(t, ok)
		assert.Equal(t, []string{"Title"}, p.Fields())

		assert.Equal(t, Stats{Size: 1, Hits: 1, Misses: 1}, c.Stats())
	})

	t.Run("should replace plans wholesale", func(t *testing.T) {
		c := NewMemoryCache(0)
		c.AddOrReplace(ctx, New(key, []string{"Title"}))
		c.AddOrReplace(ctx, New(key, []string{"Title", "Body"}))

		p, ok := c.Get(ctx, key)
		require.True(t, ok)
		assert.Equal(t, []string{"Title", "Body"}, p.Fields())
		assert.Equal(t, 1, c.Len())
	})

	t.Run("should evict when full", func(t *testing.T) {
		c := NewMemoryCache(2)
		c.AddOrReplace(ctx, New(NewKey(reflect.TypeOf(article{}), "a"), nil))
		c.AddOrReplace(ctx, New(NewKey(reflect.TypeOf(article{}), "b"), nil))
		c.AddOrReplace(ctx, New(NewKey(reflect.TypeOf(article{}), "c"), nil))

		assert.LessOrEqual(t, c.Len(), 2)
		_, ok := c.Get(ctx, NewKey(reflect.TypeOf(article{}), "c"))
		assert.True(t, ok)
	})

	t.Run("should invalidate and clear", func(t *testing.T) {
		c := NewMemoryCache(0)
		c.AddOrReplace(ctx, New(key, nil))
		c.Invalidate(key)
		assert.Equal(t, 0, c.Len())

		c.AddOrReplace(ctx, New(key, nil))
		c.Clear()
		assert.Equal(t, 0, c.Len())
	})

	t.Run("should be safe for concurrent use", func(t *testing.T) {
		c := NewMemoryCache(0)
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.AddOrReplace(ctx, New(key, []string{"Title"}))
				c.Get(ctx, key)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, int64(32), c.Stats().Hits)
		assert.Zero(t, c.Stats().Misses)
	})

	t.Run("should share the default cache", func(t *testing.T) {
		assert.Same(t, Default(), Default())
	})
}
