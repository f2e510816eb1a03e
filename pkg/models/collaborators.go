package models

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// NodeStore supplies nodes, their fields and their rendered representations.
// The mapper only reads from it.
type NodeStore interface {
	GetNode(ctx context.Context, id uuid.UUID) (*Node, error)
	GetFields(ctx context.Context, node *Node) ([]Field, error)
	// GetField returns nil when the node has no field with that name.
	GetField(ctx context.Context, node *Node, name string) (*Field, error)
	GetSchemaID(ctx context.Context, node *Node) (SchemaID, error)
	// GetParent returns nil for root nodes.
	GetParent(ctx context.Context, node *Node) (*Node, error)
	GetChildrenReferencedBy(ctx context.Context, field Field) ([]*Node, error)
	RenderDefault(ctx context.Context, node *Node, fieldName string) (string, error)
	RenderWithParameters(ctx context.Context, node *Node, fieldName string, params string) (string, error)
}

// LinkResolver converts a node into an absolute address.
type LinkResolver interface {
	ResolveAbsoluteURL(ctx context.Context, node *Node) (string, error)
}

// MediaService resolves binary assets.
type MediaService interface {
	GetAssetContentStream(ctx context.Context, assetReference string) (io.ReadCloser, error)
	GetAssetContentKind(ctx context.Context, assetReference string) (string, error)
}
