// Package widget maps classified blocks to page-builder widget nodes.
//
// Each block kind has exactly one widget shape: headings become heading
// widgets, paragraphs become text-editor widgets with their run
// formatting re-serialized as inline HTML, images become image widgets
// pointing at their assigned media URL, and tables become html widgets
// carrying a rendered table. The mapping is stateless apart from the
// configured media base URL.
package widget

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/pagecraft/model"
)

// Builder turns blocks into widget nodes. The zero value is usable and
// emits bare image filenames as URLs.
type Builder struct {
	// BaseURL is prefixed to image filenames in image widget settings.
	// Empty means filenames are emitted as-is, for callers that rewrite
	// URLs after upload.
	BaseURL string
}

// NewBuilder returns a Builder that resolves image URLs against baseURL.
func NewBuilder(baseURL string) *Builder {
	return &Builder{BaseURL: baseURL}
}

// Build returns the widget node for one block. The node ID derives from
// the widget type and the block's document position, so rebuilding the
// same document reproduces the same IDs.
func (b *Builder) Build(blk model.Block) *model.Node {
	switch blk.Kind {
	case model.KindHeading:
		return b.heading(blk)
	case model.KindImage:
		return b.image(blk)
	case model.KindTable:
		return b.table(blk)
	default:
		return b.paragraph(blk)
	}
}

func (b *Builder) heading(blk model.Block) *model.Node {
	return &model.Node{
		ID:     IDFor(model.WidgetHeading, blk.Order),
		ElType: model.ElTypeWidget,
		Settings: map[string]any{
			"title":       blk.Text,
			"header_size": fmt.Sprintf("h%d", blk.Level),
		},
		Elements:   []*model.Node{},
		WidgetType: model.WidgetHeading,
	}
}

func (b *Builder) paragraph(blk model.Block) *model.Node {
	return &model.Node{
		ID:     IDFor(model.WidgetTextEditor, blk.Order),
		ElType: model.ElTypeWidget,
		Settings: map[string]any{
			"editor": "<p>" + inlineHTML(blk) + "</p>",
		},
		Elements:   []*model.Node{},
		WidgetType: model.WidgetTextEditor,
	}
}

func (b *Builder) image(blk model.Block) *model.Node {
	img := blk.Image
	return &model.Node{
		ID:     IDFor(model.WidgetImage, blk.Order),
		ElType: model.ElTypeWidget,
		Settings: map[string]any{
			"image": map[string]any{
				"url":    b.imageURL(img.Filename),
				"id":     "",
				"width":  img.Width,
				"height": img.Height,
				"alt":    img.AltText,
			},
			"image_size": "full",
		},
		Elements:   []*model.Node{},
		WidgetType: model.WidgetImage,
	}
}

func (b *Builder) table(blk model.Block) *model.Node {
	return &model.Node{
		ID:     IDFor(model.WidgetHTML, blk.Order),
		ElType: model.ElTypeWidget,
		Settings: map[string]any{
			"html": TableHTML(blk.Table),
		},
		Elements:   []*model.Node{},
		WidgetType: model.WidgetHTML,
	}
}

// imageURL joins the configured base URL with an image filename.
func (b *Builder) imageURL(filename string) string {
	if b.BaseURL == "" {
		return filename
	}
	return strings.TrimRight(b.BaseURL, "/") + "/" + filename
}

// inlineHTML re-serializes a paragraph's runs as inline HTML, escaping
// text content and wrapping bold and italic runs in strong and em tags.
// Bold nests outside italic when a run carries both.
func inlineHTML(blk model.Block) string {
	if len(blk.Runs) == 0 {
		return html.EscapeString(blk.Text)
	}

	var sb strings.Builder
	for _, r := range blk.Runs {
		text := html.EscapeString(r.Text)
		switch {
		case r.Bold && r.Italic:
			sb.WriteString("<strong><em>" + text + "</em></strong>")
		case r.Bold:
			sb.WriteString("<strong>" + text + "</strong>")
		case r.Italic:
			sb.WriteString("<em>" + text + "</em>")
		default:
			sb.WriteString(text)
		}
	}
	return strings.TrimSpace(sb.String())
}
