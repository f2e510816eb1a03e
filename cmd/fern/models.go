package main

import (
	"html/template"
	"sort"
	"time"

	"github.com/google/uuid"
)

type Page struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	URL    string    `json:"url"`
	Title  string    `json:"title"`
	Parent *Page     `json:"parent,omitempty"`
}

type Tag struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type Article struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	URL         string            `json:"url"`
	Parent      *Page             `json:"parent,omitempty"`
	Title       string            `json:"title"`
	Summary     string            `json:"summary"`
	PublishedOn time.Time         `json:"published_on"`
	Featured    bool              `json:"featured"`
	Rating      float64           `json:"rating"`
	Body        template.HTML     `json:"body" fern:"raw"`
	Tags        []Tag             `json:"tags"`
	Cta         string            `json:"cta" fern:"url"`
	CtaText     string            `json:"cta_text"`
	CtaAnchor   string            `json:"cta_anchor"`
	Hero        string            `json:"hero" fern:"url"`
	HeroAlt     string            `json:"hero_alt"`
	HeroWidth   int               `json:"hero_width"`
	HeroHeight  int               `json:"hero_height"`
	Metadata    map[string]string `json:"metadata"`
}

var demoModels = map[string]func() any{
	"page":    func() any { return &Page{} },
	"tag":     func() any { return &Tag{} },
	"article": func() any { return &Article{} },
}

func demoModelNames() []string {
	names := make([]string, 0, len(demoModels))
	for name := range demoModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
