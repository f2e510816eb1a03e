package models

import "strings"

// Field type tags understood by the default mapper configuration.
const (
	TypeTagSingleLineText = "single-line text"
	TypeTagMultiLineText  = "multi-line text"
	TypeTagRichText       = "rich text"
	TypeTagText           = "text"
	TypeTagCheckbox       = "checkbox"
	TypeTagDate           = "date"
	TypeTagDateTime       = "datetime"
	TypeTagInteger        = "integer"
	TypeTagNumber         = "number"
	TypeTagGeneralLink    = "general link"
	TypeTagInternalLink   = "internal link"
	TypeTagDroplink       = "droplink"
	TypeTagDroptree       = "droptree"
	TypeTagImage          = "image"
	TypeTagFile           = "file"
	TypeTagMultilist      = "multilist"
	TypeTagTreelist       = "treelist"
	TypeTagChecklist      = "checklist"
	TypeTagNameValueList  = "name value list"
)

// NormalizeTypeTag lowercases and trims a type tag so lookups are
// insensitive to the casing used by the content author.
func NormalizeTypeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// IsMultiReference reports whether the tag stores a list of node references.
func IsMultiReference(tag string) bool {
	switch NormalizeTypeTag(tag) {
	case TypeTagMultilist, TypeTagTreelist, TypeTagChecklist:
		return true
	default:
		return false
	}
}

// IsSingleReference reports whether the tag stores exactly one node reference.
func IsSingleReference(tag string) bool {
	switch NormalizeTypeTag(tag) {
	case TypeTagInternalLink, TypeTagDroplink, TypeTagDroptree:
		return true
	default:
		return false
	}
}
