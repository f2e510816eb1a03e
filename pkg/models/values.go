package models

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Link types stored in a general link field.
const (
	LinkTypeInternal = "internal"
	LinkTypeExternal = "external"
	LinkTypeMedia    = "media"
	LinkTypeMailto   = "mailto"
	LinkTypeAnchor   = "anchor"
)

// LinkValue is the decoded raw value of a general link field.
type LinkValue struct {
	LinkType    string `json:"linktype"`
	ID          string `json:"id"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	Target      string `json:"target"`
	Title       string `json:"title"`
	Anchor      string `json:"anchor"`
	QueryString string `json:"querystring"`
}

// IsInternal reports whether the link points at another node.
func (l LinkValue) IsInternal() bool {
	return (l.LinkType == LinkTypeInternal || l.LinkType == LinkTypeMedia) && l.ID != ""
}

// TargetID parses the referenced node id.
func (l LinkValue) TargetID() (uuid.UUID, error) {
	return ParseReference(l.ID)
}

// ParseLink decodes a general link raw value. An empty raw value yields a
// zero LinkValue.
func ParseLink(raw string) (LinkValue, error) {
	var link LinkValue
	if strings.TrimSpace(raw) == "" {
		return link, nil
	}
	if err := json.Unmarshal([]byte(raw), &link); err != nil {
		return link, fmt.Errorf("invalid link value: %w", err)
	}
	link.LinkType = strings.ToLower(link.LinkType)
	return link, nil
}

// MediaValue is the decoded raw value of an image or file field.
type MediaValue struct {
	MediaID string `json:"mediaid"`
	Alt     string `json:"alt"`
	Width   string `json:"width"`
	Height  string `json:"height"`
}

// HasMedia reports whether a media item is referenced.
func (m MediaValue) HasMedia() bool {
	return strings.TrimSpace(m.MediaID) != ""
}

// ParseMedia decodes an image or file raw value.
func ParseMedia(raw string) (MediaValue, error) {
	var media MediaValue
	if strings.TrimSpace(raw) == "" {
		return media, nil
	}
	if err := json.Unmarshal([]byte(raw), &media); err != nil {
		return media, fmt.Errorf("invalid media value: %w", err)
	}
	return media, nil
}

// ParseReference parses a single node reference. Braces around the id are
// tolerated.
func ParseReference(raw string) (uuid.UUID, error) {
	raw = strings.Trim(strings.TrimSpace(raw), "{}")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid node reference %q: %w", raw, err)
	}
	return id, nil
}

// ParseReferences parses a pipe separated list of node references, keeping
// their order. Blank entries are skipped.
func ParseReferences(raw string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	for _, part := range strings.Split(raw, "|") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, err := ParseReference(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
