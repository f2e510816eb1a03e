package converters

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/properties"
)

type stubStore struct {
	nodes      map[uuid.UUID]*models.Node
	rendered   map[string]string
	children   []*models.Node
	renderErr  error
	panics     bool
	lastParams string
}

func newStubStore(nodes ...*models.Node) *stubStore {
	s := &stubStore{
		nodes:    map[uuid.UUID]*models.Node{},
		rendered: map[string]string{},
	}
	for _, node := range nodes {
		s.nodes[node.ID] = node
	}
	return s
}

func (s *stubStore) GetNode(_ context.Context, id uuid.UUID) (*models.Node, error) {
	return s.nodes[id], nil
}

func (s *stubStore) GetFields(context.Context, *models.Node) ([]models.Field, error) {
	return nil, nil
}

func (s *stubStore) GetField(context.Context, *models.Node, string) (*models.Field, error) {
	return nil, nil
}

func (s *stubStore) GetSchemaID(_ context.Context, node *models.Node) (models.SchemaID, error) {
	return node.SchemaID, nil
}

func (s *stubStore) GetParent(context.Context, *models.Node) (*models.Node, error) {
	return nil, nil
}

func (s *stubStore) GetChildrenReferencedBy(context.Context, models.Field) ([]*models.Node, error) {
	return s.children, nil
}

func (s *stubStore) RenderDefault(_ context.Context, _ *models.Node, fieldName string) (string, error) {
	if s.panics {
		panic("render exploded")
	}
	if s.renderErr != nil {
		return "", s.renderErr
	}
	return s.rendered[fieldName], nil
}

func (s *stubStore) RenderWithParameters(_ context.Context, _ *models.Node, fieldName string, params string) (string, error) {
	s.lastParams = params
	return s.rendered[fieldName] + "?" + params, nil
}

type stubLinks struct{}

func (stubLinks) ResolveAbsoluteURL(_ context.Context, node *models.Node) (string, error) {
	return "https://example.com/" + strings.ToLower(node.Name), nil
}

type stubMedia struct {
	kind    string
	content string
}

func (m stubMedia) GetAssetContentStream(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(m.content)), nil
}

func (m stubMedia) GetAssetContentKind(context.Context, string) (string, error) {
	return m.kind, nil
}

// stubMapper copies the node name into a Name property.
type stubMapper struct{}

func (stubMapper) MapInto(_ context.Context, node *models.Node, target reflect.Value) error {
	name := target.FieldByName("Name")
	if !name.IsValid() {
		return fmt.Errorf("no Name property on %s", target.Type())
	}
	name.SetString(node.Name)
	return nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func testContext(model any, store *stubStore) *Context {
	value := reflect.ValueOf(model).Elem()
	descriptor, err := properties.Describe(value.Type())
	if err != nil {
		panic(err)
	}
	services := Services{
		Store:  store,
		Links:  stubLinks{},
		Media:  stubMedia{},
		Logger: testLogger(),
		Mapper: stubMapper{},
	}
	node := &models.Node{ID: uuid.New(), Name: "current", SchemaID: "page"}
	return NewContext(services, node, value, descriptor)
}

func converter(key string) Converter {
	c, err := Definitions[key].Factory()
	if err != nil {
		panic(err)
	}
	return c
}
