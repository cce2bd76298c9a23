package model

import "encoding/json"

// Node is one element in the template tree: a section, a column, or a
// widget. The JSON shape matches the page-builder import format.
type Node struct {
	ID         string         `json:"id"`
	ElType     string         `json:"elType"`
	Settings   map[string]any `json:"settings"`
	Elements   []*Node        `json:"elements"`
	WidgetType string         `json:"widgetType,omitempty"`
}

// Element types used in the template tree.
const (
	ElTypeSection = "section"
	ElTypeColumn  = "column"
	ElTypeWidget  = "widget"
)

// Widget types emitted by the builder.
const (
	WidgetHeading    = "heading"
	WidgetTextEditor = "text-editor"
	WidgetImage      = "image"
	WidgetHTML       = "html"
)

// Template is the root of the generated page-builder template.
type Template struct {
	Version string  `json:"version"`
	Title   string  `json:"title"`
	Type    string  `json:"type"`
	Content []*Node `json:"content"`
}

// JSON serializes the template as indented JSON in the page builder's
// import format.
func (t *Template) JSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// Stats summarizes a conversion by block kind. Total always equals the
// sum of the four typed counters.
type Stats struct {
	Headings   int `json:"headings"`
	Paragraphs int `json:"paragraphs"`
	Images     int `json:"images"`
	Tables     int `json:"tables"`
	Total      int `json:"total"`
}

// Count adds one block of the given kind to the stats.
func (s *Stats) Count(k Kind) {
	switch k {
	case KindHeading:
		s.Headings++
	case KindParagraph:
		s.Paragraphs++
	case KindImage:
		s.Images++
	case KindTable:
		s.Tables++
	default:
		return
	}
	s.Total++
}
