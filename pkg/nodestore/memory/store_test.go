package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

type fixedLinks struct{}

func (fixedLinks) ResolveAbsoluteURL(_ context.Context, node *models.Node) (string, error) {
	return "https://cdn.example.com/" + node.Name, nil
}

func loadSite(t *testing.T) *Store {
	t.Helper()
	store := New()
	require.NoError(t, store.LoadFile("testdata/site.yaml"))
	return store
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := loadSite(t)

	require.Len(t, store.Nodes(), 3)
	news := store.FindByName("news")
	require.NotNil(t, news)
	assert.Equal(t, "Latest News", news.GetDisplayName())
	assert.Equal(t, models.SchemaID("article"), news.SchemaID)

	fields, err := store.GetFields(ctx, news)
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, news.ID, fields[0].OwningNodeID)
	assert.Equal(t, models.SchemaID("article"), fields[0].OwningSchemaID)

	t.Run("should reject nodes without an id", func(t *testing.T) {
		err := New().Load([]byte("nodes:\n  - name: orphan\n"))
		assert.Error(t, err)
	})

	t.Run("should fail on missing files", func(t *testing.T) {
		assert.Error(t, New().LoadFile("testdata/missing.yaml"))
	})
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := loadSite(t)
	news := store.FindByName("News")
	require.NotNil(t, news)

	t.Run("should return nil for unknown nodes and fields", func(t *testing.T) {
		node, err := store.GetNode(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, node)

		field, err := store.GetField(ctx, news, "Subtitle")
		require.NoError(t, err)
		assert.Nil(t, field)
	})

	t.Run("should walk to the parent", func(t *testing.T) {
		parent, err := store.GetParent(ctx, news)
		require.NoError(t, err)
		require.NotNil(t, parent)
		assert.Equal(t, "Home", parent.Name)

		root, err := store.GetParent(ctx, parent)
		require.NoError(t, err)
		assert.Nil(t, root)
	})

	t.Run("should return referenced nodes in order", func(t *testing.T) {
		field, err := store.GetField(ctx, news, "Tags")
		require.NoError(t, err)
		require.NotNil(t, field)

		children, err := store.GetChildrenReferencedBy(ctx, *field)
		require.NoError(t, err)
		require.Len(t, children, 2)
		assert.Equal(t, "Logo", children[0].Name)
		assert.Equal(t, "Home", children[1].Name)
	})

	t.Run("should render fields", func(t *testing.T) {
		store.UseLinkResolver(fixedLinks{})

		title, err := store.RenderDefault(ctx, news, "Title")
		require.NoError(t, err)
		assert.Equal(t, "Fish &amp; Chips", title)

		hero, err := store.RenderWithParameters(ctx, news, "Hero", "w=10")
		require.NoError(t, err)
		assert.Equal(t, `<img alt="Logo" src="https://cdn.example.com/Logo" width="10"/>`, hero)

		missing, err := store.RenderDefault(ctx, news, "Subtitle")
		require.NoError(t, err)
		assert.Equal(t, "", missing)
	})

	t.Run("should replace fields", func(t *testing.T) {
		require.NoError(t, store.SetFields(news.ID, models.Field{Name: "Title", TypeTag: models.TypeTagText, RawValue: "Replaced"}))
		fields, err := store.GetFields(ctx, news)
		require.NoError(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, news.ID, fields[0].OwningNodeID)

		assert.Error(t, store.SetFields(uuid.New()))
	})
}
