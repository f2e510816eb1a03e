package converters

import (
	"context"
	"fmt"
	"html/template"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/fern/pkg/models"
)

type imageModel struct {
	Hero       string
	HeroUrl    string
	HeroAlt    string
	HeroWidth  int
	HeroHeight string
	HeroSvg    template.HTML
	HeroID     uuid.UUID `fern:"field=hero id"`
}

func imageValue(id uuid.UUID) string {
	return fmt.Sprintf(`{"mediaid":"%s","alt":"Logo","width":"640","height":"480"}`, id)
}

func TestMediaAttributeConverters(t *testing.T) {
	ctx := context.Background()
	asset := &models.Node{ID: uuid.New(), Name: "Logo"}
	field := models.Field{Name: "Hero", TypeTag: models.TypeTagImage, RawValue: imageValue(asset.ID)}

	t.Run("should fan out to every derived property", func(t *testing.T) {
		model := &imageModel{}
		mc := testContext(model, newStubStore(asset))
		mc.Media = stubMedia{kind: SvgContentKind, content: "<svg/>"}

		for _, key := range []string{MediaURLKey, MediaAltKey, MediaWidthKey, MediaHeightKey, MediaSvgKey} {
			assert.Equal(t, models.MapStatusSuccess, converter(key).Map(ctx, mc, field), key)
		}
		assert.Equal(t, "https://example.com/logo", model.HeroUrl)
		assert.Equal(t, "Logo", model.HeroAlt)
		assert.Equal(t, 640, model.HeroWidth)
		assert.Equal(t, "480", model.HeroHeight)
		assert.Equal(t, template.HTML("<svg/>"), model.HeroSvg)
	})

	t.Run("should leave svg empty for other asset kinds", func(t *testing.T) {
		model := &imageModel{}
		mc := testContext(model, newStubStore(asset))
		mc.Media = stubMedia{kind: "image/png", content: "png"}

		assert.Equal(t, models.MapStatusValueEmpty, converter(MediaSvgKey).Map(ctx, mc, field))
		assert.Empty(t, model.HeroSvg)
	})

	t.Run("should report values without a media item as empty", func(t *testing.T) {
		mc := testContext(&imageModel{}, newStubStore(asset))
		empty := models.Field{Name: "Hero", RawValue: `{"alt":"nothing"}`}

		assert.Equal(t, models.MapStatusValueEmpty, converter(MediaSvgKey).Map(ctx, mc, empty))
		assert.Equal(t, models.MapStatusValueEmpty, converter(MediaURLKey).Map(ctx, mc, empty))
		assert.Equal(t, models.MapStatusFieldEmpty, converter(MediaAltKey).Map(ctx, mc, models.Field{Name: "Hero"}))
	})

	t.Run("should render the field itself and map the media id", func(t *testing.T) {
		store := newStubStore(asset)
		store.rendered["Hero"] = `<img src="/logo">`
		model := &imageModel{}
		mc := testContext(model, store)

		assert.Equal(t, models.MapStatusSuccess, converter(MediaKey).Map(ctx, mc, field))
		assert.Equal(t, `<img src="/logo">`, model.Hero)

		idField := models.Field{Name: "hero id", RawValue: imageValue(asset.ID)}
		assert.Equal(t, models.MapStatusSuccess, converter(MediaKey).Map(ctx, mc, idField))
		assert.Equal(t, asset.ID, model.HeroID)
	})
}
