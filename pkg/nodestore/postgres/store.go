// Package postgres is a node store backed by the nodes and fields tables of
// a PostgreSQL database.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"net/http"
	"sync"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/render"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

//go:embed schema.sql
var Schema string

// DB is the subset of *sqlx.DB the store uses.
type DB interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Open connects to dsn with the lib/pq driver.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	return sqlx.ConnectContext(ctx, "postgres", dsn)
}

type Store struct {
	db       DB
	logger   ectologger.Logger
	renderer *render.Renderer

	mu    sync.RWMutex
	links models.LinkResolver
}

func New(db DB, logger ectologger.Logger) *Store {
	s := &Store{
		db:     db,
		logger: logger,
	}
	s.renderer = render.New(s.address)
	return s
}

// UseLinkResolver sets the resolver used when rendering links and images.
func (s *Store) UseLinkResolver(links models.LinkResolver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = links
}

// EnsureSchema creates the tables the store reads from.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to create node store schema")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to create node store schema: %v", err)
	}
	return nil
}

// GetNode returns nil when no node has the id.
func (s *Store) GetNode(ctx context.Context, id uuid.UUID) (*models.Node, error) {
	ctx, span := tracing.StartSpan(ctx, "NodeStore.GetNode")
	defer span.End()

	sb := nodeStruct.SelectFrom(nodesTable)
	sb.Where(sb.Equal("id", id.String()))
	query, args := sb.Build()

	var row NodeRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"node_id": id,
		}).Error("Failed to get node")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get node %s: %v", id, err)
	}
	return s.toNode(ctx, &row)
}

func (s *Store) GetFields(ctx context.Context, node *models.Node) ([]models.Field, error) {
	ctx, span := tracing.StartSpan(ctx, "NodeStore.GetFields")
	defer span.End()

	sb := fieldSelect()
	sb.Where(sb.Equal("f.node_id", node.ID.String()))
	sb.OrderBy("f.sort_order", "f.name")
	query, args := sb.Build()

	var rows []FieldRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"node_id": node.ID,
		}).Error("Failed to list fields")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list fields of node %s: %v", node.ID, err)
	}
	return ToFields(rows), nil
}

// GetField returns nil when the node has no field with that name.
func (s *Store) GetField(ctx context.Context, node *models.Node, name string) (*models.Field, error) {
	ctx, span := tracing.StartSpan(ctx, "NodeStore.GetField")
	defer span.End()

	sb := fieldSelect()
	sb.Where(
		sb.Equal("f.node_id", node.ID.String()),
		sb.Equal("f.name", name),
	)
	query, args := sb.Build()

	var row FieldRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"node_id": node.ID,
			"field":   name,
		}).Error("Failed to get field")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get field %s of node %s: %v", name, node.ID, err)
	}
	field := ToField(&row)
	return &field, nil
}

// GetSchemaID prefers the schema already on the node and falls back to the
// stored row.
func (s *Store) GetSchemaID(ctx context.Context, node *models.Node) (models.SchemaID, error) {
	if node.SchemaID != "" {
		return node.SchemaID, nil
	}
	stored, err := s.GetNode(ctx, node.ID)
	if err != nil {
		return "", err
	}
	if stored == nil {
		return "", httperror.NewHTTPErrorf(http.StatusNotFound, "node %s not found", node.ID)
	}
	return stored.SchemaID, nil
}

// GetParent returns nil for root nodes.
func (s *Store) GetParent(ctx context.Context, node *models.Node) (*models.Node, error) {
	if !node.HasParent() {
		return nil, nil
	}
	return s.GetNode(ctx, node.ParentID)
}

// GetChildrenReferencedBy loads the nodes a list field references, in the
// order the field lists them. References to missing nodes are skipped.
func (s *Store) GetChildrenReferencedBy(ctx context.Context, field models.Field) ([]*models.Node, error) {
	ids, err := models.ParseReferences(field.RawValue)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.Node{}, nil
	}

	ctx, span := tracing.StartSpan(ctx, "NodeStore.GetChildrenReferencedBy")
	defer span.End()

	sb := nodeStruct.SelectFrom(nodesTable)
	sb.Where(sb.In("id", ectolinq.Map(ids, func(id uuid.UUID) any {
		return id.String()
	})...))
	query, args := sb.Build()

	var rows []NodeRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"field": field.Name,
			"refs":  len(ids),
		}).Error("Failed to get referenced nodes")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get nodes referenced by %s: %v", field.Name, err)
	}

	byID := make(map[uuid.UUID]*models.Node, len(rows))
	for i := range rows {
		node, err := s.toNode(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		byID[node.ID] = node
	}

	children := make([]*models.Node, 0, len(ids))
	for _, id := range ids {
		if node, ok := byID[id]; ok {
			children = append(children, node)
		}
	}
	return children, nil
}

func (s *Store) RenderDefault(ctx context.Context, node *models.Node, fieldName string) (string, error) {
	return s.RenderWithParameters(ctx, node, fieldName, "")
}

func (s *Store) RenderWithParameters(ctx context.Context, node *models.Node, fieldName string, params string) (string, error) {
	field, err := s.GetField(ctx, node, fieldName)
	if err != nil || field == nil {
		return "", err
	}
	return s.renderer.Render(ctx, *field, params)
}

func (s *Store) address(ctx context.Context, id uuid.UUID) (string, error) {
	s.mu.RLock()
	links := s.links
	s.mu.RUnlock()
	if links == nil {
		return "", nil
	}

	node, err := s.GetNode(ctx, id)
	if err != nil || node == nil {
		return "", err
	}
	return links.ResolveAbsoluteURL(ctx, node)
}

func (s *Store) toNode(ctx context.Context, row *NodeRow) (*models.Node, error) {
	node, err := ToNode(row)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"node_id": row.ID,
		}).Error("Stored node has an invalid id")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "stored node %s has an invalid id: %v", row.ID, err)
	}
	return node, nil
}

func fieldSelect() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("f.node_id", "n.schema_id", "f.name", "f.type_tag", "f.raw_value")
	sb.From(sb.As(fieldsTable, "f"))
	sb.Join(sb.As(nodesTable, "n"), "n.id = f.node_id")
	return sb
}
