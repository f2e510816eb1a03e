package models

import (
	"github.com/google/uuid"
)

// SchemaID identifies the shape (template) of a node. Two nodes with the same
// SchemaID expose the same field names and type tags.
type SchemaID string

// Node is a hierarchical content record.
type Node struct {
	ID          uuid.UUID `json:"id" yaml:"id" db:"id"`
	Name        string    `json:"name" yaml:"name" db:"name"`
	DisplayName string    `json:"display_name" yaml:"display_name" db:"display_name"`
	SchemaID    SchemaID  `json:"schema_id" yaml:"schema_id" db:"schema_id"`
	ParentID    uuid.UUID `json:"parent_id" yaml:"parent_id" db:"parent_id"`
	Language    string    `json:"language" yaml:"language" db:"language"`
}

// HasParent reports whether the node sits below another node.
func (n *Node) HasParent() bool {
	return n != nil && n.ParentID != uuid.Nil
}

// GetDisplayName falls back to Name when no display name is set.
func (n *Node) GetDisplayName() string {
	if n.DisplayName == "" {
		return n.Name
	}
	return n.DisplayName
}

// Field is one named, typed value attached to a node.
type Field struct {
	Name           string    `json:"name" yaml:"name" db:"name"`
	TypeTag        string    `json:"type_tag" yaml:"type_tag" db:"type_tag"`
	RawValue       string    `json:"raw_value" yaml:"raw_value" db:"raw_value"`
	OwningNodeID   uuid.UUID `json:"owning_node_id" yaml:"-" db:"node_id"`
	OwningSchemaID SchemaID  `json:"owning_schema_id" yaml:"-" db:"schema_id"`
}

// IsEmpty reports whether the field carries no raw data.
func (f Field) IsEmpty() bool {
	return f.RawValue == ""
}
