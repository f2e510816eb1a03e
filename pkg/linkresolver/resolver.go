// Package linkresolver derives node addresses from the content tree: a
// node's path is the slugs of its ancestors below the root, followed by its
// own slug.
package linkresolver

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/Ramsey-B/fern/pkg/models"
)

// DefaultMediaSchema marks media nodes, which resolve under MediaPrefix.
const (
	DefaultMediaSchema models.SchemaID = "media"
	MediaPrefix                        = "-/media"
	maxAncestors                       = 64
)

type Resolver struct {
	store       models.NodeStore
	base        *url.URL
	mediaSchema models.SchemaID
}

type Option func(*Resolver)

// WithMediaSchema changes the schema id that marks media nodes.
func WithMediaSchema(schema models.SchemaID) Option {
	return func(r *Resolver) {
		r.mediaSchema = schema
	}
}

func New(store models.NodeStore, baseURL string, opts ...Option) (*Resolver, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	r := &Resolver{
		store:       store,
		base:        base,
		mediaSchema: DefaultMediaSchema,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Resolver) ResolveAbsoluteURL(ctx context.Context, node *models.Node) (string, error) {
	if node == nil {
		return "", nil
	}

	var segments []string
	if node.SchemaID == r.mediaSchema {
		segments = []string{MediaPrefix, strings.ReplaceAll(node.ID.String(), "-", ""), Slug(node.Name)}
	} else {
		path, err := r.path(ctx, node)
		if err != nil {
			return "", err
		}
		segments = path
	}

	address := *r.base
	address.Path = strings.TrimRight(address.Path, "/") + "/" + strings.Join(segments, "/")
	return address.String(), nil
}

// path lists the slugs from the first level below the root down to node.
func (r *Resolver) path(ctx context.Context, node *models.Node) ([]string, error) {
	var segments []string
	current := node
	for hops := 0; current.HasParent(); hops++ {
		if hops >= maxAncestors {
			return nil, fmt.Errorf("node %s is nested deeper than %d levels", node.ID, maxAncestors)
		}
		segments = append([]string{Slug(current.Name)}, segments...)

		parent, err := r.store.GetParent(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("failed to read parent of node %s: %w", current.ID, err)
		}
		if parent == nil {
			break
		}
		current = parent
	}
	return segments, nil
}

// Slug lowercases a node name and joins its words with dashes.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
