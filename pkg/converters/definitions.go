package converters

import (
	"github.com/Ramsey-B/fern/pkg/models"
)

// Converter keys referenced by the mapper configuration.
const (
	FieldKey          = "field"
	CheckboxKey       = "checkbox"
	DateKey           = "date"
	NumberKey         = "number"
	GeneralLinkKey    = "general_link"
	ReferenceKey      = "reference"
	MediaKey          = "media"
	MultilistKey      = "multilist"
	NameValueListKey  = "name_value_list"
	LinkURLKey        = "link_url"
	LinkTextKey       = "link_text"
	LinkTargetKey     = "link_target"
	LinkTitleKey      = "link_title"
	LinkTargetItemKey = "link_target_item"
	LinkAnchorKey     = "link_anchor"
	LinkQueryKey      = "link_query_string"
	MediaURLKey       = "media_url"
	MediaAltKey       = "media_alt"
	MediaWidthKey     = "media_width"
	MediaHeightKey    = "media_height"
	MediaSvgKey       = "media_svg"
)

type Definition struct {
	Key         string
	Description string
	Factory     Factory
}

func fieldFactory(key string, extract Extractor, resolvesURL bool) Factory {
	return func() (Converter, error) {
		return NewFieldConverter(key, extract, resolvesURL), nil
	}
}

func attributeFactory(key, suffix string, extract Extractor) Factory {
	return func() (Converter, error) {
		return NewAttributeConverter(key, suffix, extract), nil
	}
}

// Definitions lists the built-in converters by key.
var Definitions = map[string]Definition{
	FieldKey: {
		Key:         FieldKey,
		Description: "Renders the field into a text property of the same name",
		Factory:     fieldFactory(FieldKey, nil, false),
	},
	CheckboxKey: {
		Key:         CheckboxKey,
		Description: "Maps a checkbox onto a bool property",
		Factory:     fieldFactory(CheckboxKey, ExtractCheckbox, false),
	},
	DateKey: {
		Key:         DateKey,
		Description: "Maps a date or datetime onto a time.Time property",
		Factory:     fieldFactory(DateKey, ExtractDate, false),
	},
	NumberKey: {
		Key:         NumberKey,
		Description: "Maps an integer or number onto a numeric property",
		Factory:     fieldFactory(NumberKey, ExtractNumber, false),
	},
	GeneralLinkKey: {
		Key:         GeneralLinkKey,
		Description: "Maps a general link onto an address, a target id or a nested model",
		Factory:     fieldFactory(GeneralLinkKey, ExtractGeneralLink, true),
	},
	ReferenceKey: {
		Key:         ReferenceKey,
		Description: "Maps a single node reference onto an address, an id or a nested model",
		Factory:     fieldFactory(ReferenceKey, ExtractReference, true),
	},
	MediaKey: {
		Key:         MediaKey,
		Description: "Maps an image or file onto an address, a media id or a nested model",
		Factory:     fieldFactory(MediaKey, ExtractMedia, true),
	},
	MultilistKey: {
		Key:         MultilistKey,
		Description: "Maps a list of node references onto a slice of nested models",
		Factory:     fieldFactory(MultilistKey, ExtractMultilist, false),
	},
	NameValueListKey: {
		Key:         NameValueListKey,
		Description: "Maps a name value list onto a string map",
		Factory:     fieldFactory(NameValueListKey, ExtractNameValueList, false),
	},
	LinkURLKey: {
		Key:         LinkURLKey,
		Description: "Maps the address of a link onto <Field>Url",
		Factory:     attributeFactory(LinkURLKey, SuffixURL, extractLinkURL),
	},
	LinkTextKey: {
		Key:         LinkTextKey,
		Description: "Maps the text of a link onto <Field>Text",
		Factory: attributeFactory(LinkTextKey, SuffixText, linkText(func(l models.LinkValue) string {
			return l.Text
		})),
	},
	LinkTargetKey: {
		Key:         LinkTargetKey,
		Description: "Maps the window target of a link onto <Field>Target",
		Factory: attributeFactory(LinkTargetKey, SuffixTarget, linkText(func(l models.LinkValue) string {
			return l.Target
		})),
	},
	LinkTitleKey: {
		Key:         LinkTitleKey,
		Description: "Maps the title of a link onto <Field>Title",
		Factory: attributeFactory(LinkTitleKey, SuffixTitle, linkText(func(l models.LinkValue) string {
			return l.Title
		})),
	},
	LinkTargetItemKey: {
		Key:         LinkTargetItemKey,
		Description: "Maps the linked node onto <Field>TargetItem",
		Factory:     attributeFactory(LinkTargetItemKey, SuffixTargetItem, extractLinkTargetItem),
	},
	LinkAnchorKey: {
		Key:         LinkAnchorKey,
		Description: "Maps the anchor of a link onto <Field>Anchor",
		Factory: attributeFactory(LinkAnchorKey, SuffixAnchor, linkText(func(l models.LinkValue) string {
			return l.Anchor
		})),
	},
	LinkQueryKey: {
		Key:         LinkQueryKey,
		Description: "Maps the query string of a link onto <Field>QueryString",
		Factory: attributeFactory(LinkQueryKey, SuffixQueryString, linkText(func(l models.LinkValue) string {
			return l.QueryString
		})),
	},
	MediaURLKey: {
		Key:         MediaURLKey,
		Description: "Maps the address of a media item onto <Field>Url",
		Factory:     attributeFactory(MediaURLKey, SuffixURL, extractMediaURL),
	},
	MediaAltKey: {
		Key:         MediaAltKey,
		Description: "Maps the alternate text of an image onto <Field>Alt",
		Factory:     attributeFactory(MediaAltKey, SuffixAlt, extractMediaAlt),
	},
	MediaWidthKey: {
		Key:         MediaWidthKey,
		Description: "Maps the width of an image onto <Field>Width",
		Factory: attributeFactory(MediaWidthKey, SuffixWidth, mediaDimension(func(m models.MediaValue) string {
			return m.Width
		})),
	},
	MediaHeightKey: {
		Key:         MediaHeightKey,
		Description: "Maps the height of an image onto <Field>Height",
		Factory: attributeFactory(MediaHeightKey, SuffixHeight, mediaDimension(func(m models.MediaValue) string {
			return m.Height
		})),
	},
	MediaSvgKey: {
		Key:         MediaSvgKey,
		Description: "Inlines the markup of an SVG image onto <Field>Svg",
		Factory:     attributeFactory(MediaSvgKey, SuffixSvg, extractMediaSvg),
	},
}
