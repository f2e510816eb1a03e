package postgres

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/fern/pkg/models"
)

const (
	nodesTable  = "nodes"
	fieldsTable = "fields"
)

// NodeRow is a row of the nodes table.
type NodeRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	DisplayName sql.NullString `db:"display_name"`
	SchemaID    string         `db:"schema_id"`
	ParentID    sql.NullString `db:"parent_id"`
	Language    sql.NullString `db:"language"`
}

// FieldRow is a row of the fields table joined with the owning node's schema.
type FieldRow struct {
	NodeID   string         `db:"node_id"`
	SchemaID sql.NullString `db:"schema_id"`
	Name     string         `db:"name"`
	TypeTag  string         `db:"type_tag"`
	RawValue sql.NullString `db:"raw_value"`
}

var nodeStruct = sqlbuilder.NewStruct(new(NodeRow)).For(sqlbuilder.PostgreSQL)

func ToNode(row *NodeRow) (*models.Node, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	node := &models.Node{
		ID:          id,
		Name:        row.Name,
		DisplayName: row.DisplayName.String,
		SchemaID:    models.SchemaID(row.SchemaID),
		Language:    row.Language.String,
	}
	if row.ParentID.Valid && row.ParentID.String != "" {
		parentID, err := uuid.Parse(row.ParentID.String)
		if err != nil {
			return nil, err
		}
		node.ParentID = parentID
	}
	return node, nil
}

func ToField(row *FieldRow) models.Field {
	nodeID, _ := uuid.Parse(row.NodeID)
	return models.Field{
		Name:           row.Name,
		TypeTag:        row.TypeTag,
		RawValue:       row.RawValue.String,
		OwningNodeID:   nodeID,
		OwningSchemaID: models.SchemaID(row.SchemaID.String),
	}
}

func ToFields(rows []FieldRow) []models.Field {
	fields := make([]models.Field, len(rows))
	for i := range rows {
		fields[i] = ToField(&rows[i])
	}
	return fields
}
