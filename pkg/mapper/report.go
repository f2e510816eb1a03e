package mapper

import (
	"github.com/google/uuid"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Report lists the converter outcomes of one mapping call. Nested mappings
// are not included.
type Report struct {
	Model   string          `json:"model"`
	NodeID  uuid.UUID       `json:"node_id"`
	Schema  models.SchemaID `json:"schema"`
	PlanHit bool            `json:"plan_hit"`
	Fields  []*FieldReport  `json:"fields"`
}

type FieldReport struct {
	Name       string    `json:"name"`
	TypeTag    string    `json:"type_tag"`
	Productive bool      `json:"productive"`
	Outcomes   []Outcome `json:"outcomes"`
}

type Outcome struct {
	Converter string           `json:"converter"`
	Status    models.MapStatus `json:"status"`
}

func (r *Report) addField(field models.Field) *FieldReport {
	fieldReport := &FieldReport{
		Name:    field.Name,
		TypeTag: field.TypeTag,
	}
	r.Fields = append(r.Fields, fieldReport)
	return fieldReport
}

func (f *FieldReport) add(converter string, status models.MapStatus) {
	f.Outcomes = append(f.Outcomes, Outcome{Converter: converter, Status: status})
	if status.Productive() {
		f.Productive = true
	}
}

// Field returns the report for a field, or nil when it was not mapped.
func (r *Report) Field(name string) *FieldReport {
	for _, field := range r.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// Status returns the outcome of one converter for a field.
func (f *FieldReport) Status(converter string) (models.MapStatus, bool) {
	for _, outcome := range f.Outcomes {
		if outcome.Converter == converter {
			return outcome.Status, true
		}
	}
	return 0, false
}
