// Package media provides media services for SVG inlining: a directory backed
// asset source and an ARC cache in front of any MediaService.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Gobusters/ectologger"
	lru "github.com/hashicorp/golang-lru"

	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
)

// DefaultMaxContentBytes bounds the size of a cached asset.
const DefaultMaxContentBytes = 256 << 10

// CachingService caches asset kinds and small asset contents in front of
// another MediaService.
type CachingService struct {
	next            models.MediaService
	logger          ectologger.Logger
	kinds           *lru.ARCCache
	contents        *lru.ARCCache
	maxContentBytes int
}

type CachingOption func(*CachingService)

// WithMaxContentBytes changes the largest asset kept in the content cache.
// Larger assets are streamed through uncached.
func WithMaxContentBytes(n int) CachingOption {
	return func(s *CachingService) {
		s.maxContentBytes = n
	}
}

func WithLogger(logger ectologger.Logger) CachingOption {
	return func(s *CachingService) {
		s.logger = logger
	}
}

// NewCachingService creates a cache holding up to size kinds and size
// contents.
func NewCachingService(next models.MediaService, size int, opts ...CachingOption) (*CachingService, error) {
	kinds, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create media kind cache: %w", err)
	}
	contents, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create media content cache: %w", err)
	}

	s := &CachingService{
		next:            next,
		kinds:           kinds,
		contents:        contents,
		maxContentBytes: DefaultMaxContentBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	}
	return s, nil
}

func (s *CachingService) GetAssetContentKind(ctx context.Context, assetReference string) (string, error) {
	if cached, ok := s.kinds.Get(assetReference); ok {
		metrics.RecordMediaCacheLookup("kind", true)
		return cached.(string), nil
	}
	metrics.RecordMediaCacheLookup("kind", false)

	kind, err := s.next.GetAssetContentKind(ctx, assetReference)
	if err != nil {
		return "", err
	}
	s.kinds.Add(assetReference, kind)
	return kind, nil
}

func (s *CachingService) GetAssetContentStream(ctx context.Context, assetReference string) (io.ReadCloser, error) {
	if cached, ok := s.contents.Get(assetReference); ok {
		metrics.RecordMediaCacheLookup("content", true)
		return io.NopCloser(bytes.NewReader(cached.([]byte))), nil
	}
	metrics.RecordMediaCacheLookup("content", false)

	stream, err := s.next.GetAssetContentStream(ctx, assetReference)
	if err != nil || stream == nil {
		return stream, err
	}

	head, err := io.ReadAll(io.LimitReader(stream, int64(s.maxContentBytes)+1))
	if err != nil {
		stream.Close()
		return nil, fmt.Errorf("failed to read asset %s: %w", assetReference, err)
	}
	if len(head) > s.maxContentBytes {
		s.logger.WithContext(ctx).WithFields(map[string]any{
			"asset":     assetReference,
			"max_bytes": s.maxContentBytes,
		}).Debug("Asset too large to cache")
		return &partialStream{Reader: io.MultiReader(bytes.NewReader(head), stream), Closer: stream}, nil
	}

	stream.Close()
	s.contents.Add(assetReference, head)
	return io.NopCloser(bytes.NewReader(head)), nil
}

// Purge empties both caches.
func (s *CachingService) Purge() {
	s.kinds.Purge()
	s.contents.Purge()
}

type partialStream struct {
	io.Reader
	io.Closer
}
