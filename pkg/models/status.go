package models

// MapStatus classifies the outcome of a single converter invocation.
type MapStatus int

const (
	MapStatusSuccess MapStatus = iota
	MapStatusNoMatchingProperty
	MapStatusExplicitIgnore
	MapStatusTypeMismatch
	MapStatusFieldEmpty
	MapStatusValueEmpty
	MapStatusExceptionHandled
)

func (s MapStatus) String() string {
	switch s {
	case MapStatusSuccess:
		return "success"
	case MapStatusNoMatchingProperty:
		return "no_matching_property"
	case MapStatusExplicitIgnore:
		return "explicit_ignore"
	case MapStatusTypeMismatch:
		return "type_mismatch"
	case MapStatusFieldEmpty:
		return "field_empty"
	case MapStatusValueEmpty:
		return "value_empty"
	case MapStatusExceptionHandled:
		return "exception_handled"
	default:
		return "unknown"
	}
}

// Productive reports whether a field with this status belongs in a mapping
// plan. Only these outcomes can change on replay with different field data.
func (s MapStatus) Productive() bool {
	return s == MapStatusSuccess || s == MapStatusFieldEmpty || s == MapStatusValueEmpty
}

// MarshalText encodes the status by name in JSON and YAML output.
func (s MapStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
