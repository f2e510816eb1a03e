// Package memory is a node store backed by process memory, loadable from
// YAML fixtures.
package memory

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Gobusters/ectolinq"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/render"
)

type entry struct {
	node   models.Node
	fields []models.Field
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	entries  map[uuid.UUID]*entry
	order    []uuid.UUID
	links    models.LinkResolver
	renderer *render.Renderer
}

func New() *Store {
	s := &Store{
		entries: map[uuid.UUID]*entry{},
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

// Add stores a node with its fields, replacing any node with the same id.
func (s *Store) Add(node models.Node, fields ...models.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[node.ID]; !exists {
		s.order = append(s.order, node.ID)
	}
	s.entries[node.ID] = &entry{
		node:   node,
		fields: ownedFields(node, fields),
	}
}

// SetFields replaces the fields of a stored node.
func (s *Store) SetFields(id uuid.UUID, fields ...models.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("node %s not found", id)
	}
	e.fields = ownedFields(e.node, fields)
	return nil
}

// Nodes lists the stored nodes in insertion order.
func (s *Store) Nodes() []*models.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ectolinq.Map(s.order, func(id uuid.UUID) *models.Node {
		node := s.entries[id].node
		return &node
	})
}

// FindByName returns the first node with the given name.
func (s *Store) FindByName(name string) *models.Node {
	return ectolinq.Find(s.Nodes(), func(node *models.Node) bool {
		return strings.EqualFold(node.Name, name)
	})
}

func ownedFields(node models.Node, fields []models.Field) []models.Field {
	return ectolinq.Map(fields, func(field models.Field) models.Field {
		field.OwningNodeID = node.ID
		field.OwningSchemaID = node.SchemaID
		return field
	})
}

func (s *Store) lookup(id uuid.UUID) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

func (s *Store) GetNode(_ context.Context, id uuid.UUID) (*models.Node, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, nil
	}
	node := e.node
	return &node, nil
}

func (s *Store) GetFields(_ context.Context, node *models.Node) ([]models.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[node.ID]
	if !ok {
		return nil, fmt.Errorf("node %s not found", node.ID)
	}
	return append([]models.Field{}, e.fields...), nil
}

func (s *Store) GetField(ctx context.Context, node *models.Node, name string) (*models.Field, error) {
	fields, err := s.GetFields(ctx, node)
	if err != nil {
		return nil, err
	}
	for _, field := range fields {
		if field.Name == name {
			return &field, nil
		}
	}
	return nil, nil
}

func (s *Store) GetSchemaID(_ context.Context, node *models.Node) (models.SchemaID, error) {
	if e, ok := s.lookup(node.ID); ok {
		return e.node.SchemaID, nil
	}
	return node.SchemaID, nil
}

func (s *Store) GetParent(ctx context.Context, node *models.Node) (*models.Node, error) {
	if !node.HasParent() {
		return nil, nil
	}
	return s.GetNode(ctx, node.ParentID)
}

// GetChildrenReferencedBy returns the stored nodes a multi reference field
// points at, in field order. References to unknown nodes are skipped.
func (s *Store) GetChildrenReferencedBy(ctx context.Context, field models.Field) ([]*models.Node, error) {
	ids, err := models.ParseReferences(field.RawValue)
	if err != nil {
		return nil, err
	}
	children := make([]*models.Node, 0, len(ids))
	for _, id := range ids {
		child, _ := s.GetNode(ctx, id)
		if child != nil {
			children = append(children, child)
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

// Fixture is the YAML form of a store.
type Fixture struct {
	Nodes []FixtureNode `yaml:"nodes"`
}

type FixtureNode struct {
	models.Node `yaml:",inline"`
	Fields      []models.Field `yaml:"fields"`
}

// Load adds the nodes of a YAML fixture document.
func (s *Store) Load(data []byte) error {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("failed to parse fixture: %w", err)
	}
	for _, fixtureNode := range fixture.Nodes {
		if fixtureNode.ID == uuid.Nil {
			return fmt.Errorf("fixture node %q has no id", fixtureNode.Name)
		}
		s.Add(fixtureNode.Node, fixtureNode.Fields...)
	}
	return nil
}

// LoadFile adds the nodes of the YAML fixture at path.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}
	return s.Load(data)
}
