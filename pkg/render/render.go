// Package render produces the display form of a field. Node stores use it to
// implement RenderDefault and RenderWithParameters.
package render

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Ramsey-B/fern/pkg/converters"
	"github.com/Ramsey-B/fern/pkg/models"
)

// AddressFunc resolves the address of a node. It returns "" for unknown
// nodes.
type AddressFunc func(ctx context.Context, id uuid.UUID) (string, error)

type Renderer struct {
	address AddressFunc
}

// New creates a renderer. Without an address func links and images render
// their stored url only.
func New(address AddressFunc) *Renderer {
	return &Renderer{address: address}
}

// Render renders a field. params is a query encoded parameter list such as
// "mw=640&mh=480"; image fields turn w/h/mw/mh into attributes and append
// the remaining parameters to the image source.
func (r *Renderer) Render(ctx context.Context, field models.Field, params string) (string, error) {
	parameters, err := url.ParseQuery(params)
	if err != nil {
		return "", fmt.Errorf("invalid render parameters %q: %w", params, err)
	}

	switch models.NormalizeTypeTag(field.TypeTag) {
	case models.TypeTagRichText:
		return field.RawValue, nil
	case models.TypeTagMultiLineText:
		return strings.ReplaceAll(html.EscapeString(field.RawValue), "\n", "<br/>"), nil
	case models.TypeTagDate, models.TypeTagDateTime:
		return r.renderDate(field, parameters)
	case models.TypeTagGeneralLink:
		return r.renderLink(ctx, field)
	case models.TypeTagImage:
		return r.renderImage(ctx, field, parameters)
	case models.TypeTagFile:
		return r.renderFile(ctx, field)
	default:
		return html.EscapeString(field.RawValue), nil
	}
}

func (r *Renderer) renderDate(field models.Field, parameters url.Values) (string, error) {
	if strings.TrimSpace(field.RawValue) == "" {
		return "", nil
	}
	parsed, err := converters.ParseDate(strings.TrimSpace(field.RawValue))
	if err != nil {
		return "", err
	}
	layout := parameters.Get("format")
	if layout == "" {
		layout = "2006-01-02"
		if models.NormalizeTypeTag(field.TypeTag) == models.TypeTagDateTime {
			layout = "2006-01-02T15:04:05Z07:00"
		}
	}
	return html.EscapeString(parsed.Format(layout)), nil
}

func (r *Renderer) renderLink(ctx context.Context, field models.Field) (string, error) {
	link, err := models.ParseLink(field.RawValue)
	if err != nil {
		return "", err
	}

	href := link.URL
	if link.IsInternal() {
		id, err := link.TargetID()
		if err != nil {
			return "", err
		}
		if href, err = r.resolve(ctx, id); err != nil {
			return "", err
		}
		if link.QueryString != "" {
			href += "?" + strings.TrimPrefix(link.QueryString, "?")
		}
		if link.Anchor != "" {
			href += "#" + strings.TrimPrefix(link.Anchor, "#")
		}
	}
	if href == "" {
		return "", nil
	}

	text := link.Text
	if text == "" {
		text = href
	}
	attributes := map[string]string{"href": href}
	if link.Target != "" {
		attributes["target"] = link.Target
	}
	if link.Title != "" {
		attributes["title"] = link.Title
	}
	return fmt.Sprintf("<a%s>%s</a>", attributeList(attributes), html.EscapeString(text)), nil
}

func (r *Renderer) renderImage(ctx context.Context, field models.Field, parameters url.Values) (string, error) {
	media, err := models.ParseMedia(field.RawValue)
	if err != nil || !media.HasMedia() {
		return "", err
	}
	id, err := models.ParseReference(media.MediaID)
	if err != nil {
		return "", err
	}
	src, err := r.resolve(ctx, id)
	if err != nil || src == "" {
		return "", err
	}

	attributes := map[string]string{"alt": media.Alt}
	if media.Width != "" {
		attributes["width"] = media.Width
	}
	if media.Height != "" {
		attributes["height"] = media.Height
	}
	for _, dimension := range []struct{ attribute, exact, max string }{
		{"width", "w", "mw"},
		{"height", "h", "mh"},
	} {
		if value := parameters.Get(dimension.exact); value != "" {
			attributes[dimension.attribute] = value
		} else if value := parameters.Get(dimension.max); value != "" {
			attributes[dimension.attribute] = value
		}
		parameters.Del(dimension.exact)
	}
	parameters.Del("format")
	if query := parameters.Encode(); query != "" {
		src += "?" + query
	}
	attributes["src"] = src

	return fmt.Sprintf("<img%s/>", attributeList(attributes)), nil
}

func (r *Renderer) renderFile(ctx context.Context, field models.Field) (string, error) {
	media, err := models.ParseMedia(field.RawValue)
	if err != nil || !media.HasMedia() {
		return "", err
	}
	id, err := models.ParseReference(media.MediaID)
	if err != nil {
		return "", err
	}
	return r.resolve(ctx, id)
}

func (r *Renderer) resolve(ctx context.Context, id uuid.UUID) (string, error) {
	if r.address == nil {
		return "", nil
	}
	return r.address(ctx, id)
}

// attributeList renders attributes in name order.
func attributeList(attributes map[string]string) string {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, ` %s="%s"`, name, html.EscapeString(attributes[name]))
	}
	return b.String()
}
