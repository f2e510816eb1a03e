package mapper

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/linkresolver"
	"github.com/Ramsey-B/fern/pkg/mapconfig"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/nodestore/memory"
	"github.com/Ramsey-B/fern/pkg/plan"
)

type Tag struct {
	Title string
}

type Section struct {
	Name  string
	Title string
}

type Article struct {
	ID          uuid.UUID
	Name        string
	DisplayName string
	URL         string
	Parent      *Section

	Title       string
	PublishedOn time.Time
	Featured    bool
	Rating      float64
	Summary     string
	Body        template.HTML `fern:"raw"`
	Secret      string        `fern:"-"`
	Tags        []Tag

	Cta       *url.URL
	CtaText   string
	CtaTarget string

	Logo    string `fern:"url"`
	LogoAlt string
	LogoSvg template.HTML
}

type SubtitledArticle struct {
	Title    string
	Subtitle string
}

type svgMedia struct{}

func (svgMedia) GetAssetContentStream(_ context.Context, ref string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("<svg>" + ref + "</svg>")), nil
}

func (svgMedia) GetAssetContentKind(context.Context, string) (string, error) {
	return "image/svg+xml", nil
}

type fixture struct {
	store   *memory.Store
	plans   *plan.MemoryCache
	mapper  *Mapper
	home    models.Node
	news    models.Node
	article models.Node
	tagA    models.Node
	tagB    models.Node
	logo    models.Node
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func articleFields(f *fixture) []models.Field {
	return []models.Field{
		{Name: "Title", TypeTag: models.TypeTagSingleLineText, RawValue: "Hello"},
		{Name: "PublishedOn", TypeTag: models.TypeTagDate, RawValue: "2024-01-05"},
		{Name: "Featured", TypeTag: models.TypeTagCheckbox, RawValue: "1"},
		{Name: "Rating", TypeTag: models.TypeTagNumber, RawValue: "4.5"},
		{Name: "Summary", TypeTag: models.TypeTagMultiLineText, RawValue: "line one\nline two"},
		{Name: "Body", TypeTag: models.TypeTagRichText, RawValue: "<p>Body</p>"},
		{Name: "Secret", TypeTag: models.TypeTagSingleLineText, RawValue: "classified"},
		{Name: "Tags", TypeTag: models.TypeTagMultilist, RawValue: f.tagA.ID.String() + "|" + f.tagB.ID.String()},
		{Name: "Cta", TypeTag: models.TypeTagGeneralLink, RawValue: fmt.Sprintf(`{"linktype":"internal","id":"%s","text":"Read the news","target":"_self"}`, f.news.ID)},
		{Name: "Logo", TypeTag: models.TypeTagImage, RawValue: fmt.Sprintf(`{"mediaid":"%s","alt":"Our logo"}`, f.logo.ID)},
		{Name: "Subtitle", TypeTag: models.TypeTagSingleLineText, RawValue: "Not on Article"},
		{Name: "__Updated", TypeTag: models.TypeTagDateTime, RawValue: "20240105T101500Z"},
	}
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{
		store: memory.New(),
		plans: plan.NewMemoryCache(0),
	}
	f.home = models.Node{ID: uuid.New(), Name: "Home", SchemaID: "home"}
	f.news = models.Node{ID: uuid.New(), Name: "News", DisplayName: "Latest News", SchemaID: "section", ParentID: f.home.ID}
	f.article = models.Node{ID: uuid.New(), Name: "Hello World", SchemaID: "article", ParentID: f.news.ID}
	f.tagA = models.Node{ID: uuid.New(), Name: "a", SchemaID: "tag", ParentID: f.home.ID}
	f.tagB = models.Node{ID: uuid.New(), Name: "b", SchemaID: "tag", ParentID: f.home.ID}
	f.logo = models.Node{ID: uuid.New(), Name: "Logo", SchemaID: "media", ParentID: f.home.ID}

	f.store.Add(f.home)
	f.store.Add(f.news, models.Field{Name: "Title", TypeTag: models.TypeTagSingleLineText, RawValue: "News"})
	f.store.Add(f.tagA, models.Field{Name: "Title", TypeTag: models.TypeTagSingleLineText, RawValue: "A"})
	f.store.Add(f.tagB, models.Field{Name: "Title", TypeTag: models.TypeTagSingleLineText, RawValue: "B"})
	f.store.Add(f.logo)
	f.store.Add(f.article, articleFields(f)...)

	resolver, err := linkresolver.New(f.store, "https://example.com")
	require.NoError(t, err)
	f.store.UseLinkResolver(resolver)

	defaults := []Option{
		WithNodeStore(f.store),
		WithLinkResolver(resolver),
		WithMediaService(svgMedia{}),
		WithLogger(testLogger()),
		WithPlanCache(f.plans),
		WithConfiguration(mapconfig.Default()),
	}
	f.mapper, err = New(append(defaults, opts...)...)
	require.NoError(t, err)
	return f
}

func (f *fixture) planFor(t *testing.T, model any, schema models.SchemaID) *plan.Plan {
	t.Helper()
	p, ok := f.plans.Get(context.Background(), plan.NewKey(reflect.TypeOf(model), schema))
	require.True(t, ok, "no plan cached")
	return p
}

func mustResolver(t *testing.T, store models.NodeStore) *linkresolver.Resolver {
	t.Helper()
	resolver, err := linkresolver.New(store, "https://example.com")
	require.NoError(t, err)
	return resolver
}

func stripDashes(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}

func (f *fixture) hasPlan(model any, schema models.SchemaID) bool {
	_, ok := f.plans.Get(context.Background(), plan.NewKey(reflect.TypeOf(model), schema))
	return ok
}
