package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Dir serves assets stored as files named after their reference, with any
// extension, below a root directory.
type Dir struct {
	root string
}

func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) GetAssetContentStream(_ context.Context, assetReference string) (io.ReadCloser, error) {
	path, err := d.find(assetReference)
	if err != nil || path == "" {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// GetAssetContentKind detects the media type from the file content. Unknown
// references have no kind.
func (d *Dir) GetAssetContentKind(_ context.Context, assetReference string) (string, error) {
	path, err := d.find(assetReference)
	if err != nil || path == "" {
		return "", err
	}
	kind, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect kind of %s: %w", assetReference, err)
	}
	return kind.String(), nil
}

func (d *Dir) find(assetReference string) (string, error) {
	name := strings.Trim(strings.TrimSpace(assetReference), "{}")
	if name == "" || strings.ContainsAny(name, `/\*?[`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid asset reference %q", assetReference)
	}
	matches, err := filepath.Glob(filepath.Join(d.root, name+".*"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0], nil
}
