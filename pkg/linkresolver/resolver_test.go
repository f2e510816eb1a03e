package linkresolver

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/nodestore/memory"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "about-us", Slug("About Us"))
	assert.Equal(t, "q-a", Slug("  Q & A! "))
	assert.Equal(t, "café-2024", Slug("Café 2024"))
	assert.Equal(t, "", Slug("!!"))
}

func TestResolveAbsoluteURL(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	root := models.Node{ID: uuid.New(), Name: "Home", SchemaID: "page"}
	section := models.Node{ID: uuid.New(), Name: "About Us", SchemaID: "page", ParentID: root.ID}
	leaf := models.Node{ID: uuid.New(), Name: "Our Team", SchemaID: "page", ParentID: section.ID}
	logo := models.Node{ID: uuid.MustParse("0b9f3a0e-8f5c-4c1e-9a54-3f1f4b2d6e7a"), Name: "Logo", SchemaID: "media", ParentID: root.ID}
	store.Add(root)
	store.Add(section)
	store.Add(leaf)
	store.Add(logo)

	resolver, err := New(store, "https://example.com/")
	require.NoError(t, err)

	resolve := func(node models.Node) string {
		address, err := resolver.ResolveAbsoluteURL(ctx, &node)
		require.NoError(t, err)
		return address
	}

	assert.Equal(t, "https://example.com/", resolve(root))
	assert.Equal(t, "https://example.com/about-us", resolve(section))
	assert.Equal(t, "https://example.com/about-us/our-team", resolve(leaf))
	assert.Equal(t, "https://example.com/-/media/0b9f3a0e8f5c4c1e9a543f1f4b2d6e7a/logo", resolve(logo))

	t.Run("should keep the base path", func(t *testing.T) {
		nested, err := New(store, "https://example.com/site")
		require.NoError(t, err)
		address, err := nested.ResolveAbsoluteURL(ctx, &leaf)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/site/about-us/our-team", address)
	})

	t.Run("should reject relative base urls", func(t *testing.T) {
		_, err := New(store, "/relative")
		assert.Error(t, err)
	})
}
