// Package docx reads DOCX (Office Open XML) documents and exposes their
// body content as an ordered stream of raw blocks.
//
// The body is walked token by token so paragraphs, tables and images
// come out in original reading order, which downstream processing
// depends on. A paragraph whose runs carry embedded images yields the
// image payloads instead of its text.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pagecraft/model"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zr     *zip.Reader
	closer io.Closer
	styles map[string]string
	rels   map[string]string
	blocks []model.RawBlock
}

// Open opens a DOCX file for reading and parses its body.
func Open(filename string) (*Reader, error) {
	zrc, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zr: &zrc.Reader, closer: zrc}
	if err := r.load(); err != nil {
		zrc.Close()
		return nil, err
	}
	return r, nil
}

// NewReader reads a DOCX document from an in-memory or already-open
// ZIP payload.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zr: zr}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases resources associated with the Reader. Readers created
// with NewReader have nothing to release.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// Blocks returns the document body as raw blocks in reading order.
func (r *Reader) Blocks() []model.RawBlock {
	return r.blocks
}

func (r *Reader) load() error {
	if err := r.validate(); err != nil {
		return err
	}

	// Styles and relationships are optional; a document without them
	// still yields paragraphs and tables.
	r.parseStyles()
	r.parseRelationships()

	if err := r.parseBody(); err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	return nil
}

// validate checks that required DOCX parts exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zr.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// getFileContent reads the content of a part from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseStyles builds the styleID to style name map from word/styles.xml.
func (r *Reader) parseStyles() {
	r.styles = make(map[string]string)

	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		return
	}

	var styles stylesXML
	if err := xml.Unmarshal(data, &styles); err != nil {
		return
	}
	for _, s := range styles.Styles {
		if s.StyleID != "" {
			r.styles[s.StyleID] = s.Name.Val
		}
	}
}

// parseRelationships builds the relationship ID to target map used to
// resolve image references.
func (r *Reader) parseRelationships() {
	r.rels = make(map[string]string)

	data, err := r.getFileContent("word/_rels/document.xml.rels")
	if err != nil {
		return
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return
	}
	for _, rel := range rels.Relationships {
		if rel.TargetMode != "External" {
			r.rels[rel.ID] = rel.Target
		}
	}
}

// parseBody walks word/document.xml token by token. Decoding each
// body-level paragraph or table as a unit consumes its children, so
// nested paragraphs inside table cells never surface as body blocks.
func (r *Reader) parseBody() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "p":
			var p paragraphXML
			if err := dec.DecodeElement(&p, &se); err != nil {
				return err
			}
			r.appendParagraph(p)
		case "tbl":
			var t tableXML
			if err := dec.DecodeElement(&t, &se); err != nil {
				return err
			}
			r.appendTable(t)
		}
	}
	return nil
}

// appendParagraph converts one body paragraph. A paragraph carrying
// embedded images yields the images and suppresses its text.
func (r *Reader) appendParagraph(p paragraphXML) {
	if images := r.paragraphImages(p); len(images) > 0 {
		for _, img := range images {
			r.blocks = append(r.blocks, img)
		}
		return
	}

	styleID := p.Properties.Style.Val
	r.blocks = append(r.blocks, model.RawParagraph{
		StyleID:   styleID,
		StyleName: r.styles[styleID],
		Runs:      parseRuns(p),
	})
}

// paragraphImages resolves every image reference in the paragraph's
// runs to its media payload. Unresolvable references are dropped.
func (r *Reader) paragraphImages(p paragraphXML) []model.RawImage {
	var images []model.RawImage
	for _, run := range p.Runs {
		for _, d := range run.Drawing {
			embed := ""
			if d.Inline != nil && d.Inline.Blip != nil {
				embed = d.Inline.Blip.Embed
			} else if d.Anchor != nil && d.Anchor.Blip != nil {
				embed = d.Anchor.Blip.Embed
			}
			if embed == "" {
				continue
			}

			target := r.rels[embed]
			if target == "" {
				continue
			}
			data, err := r.getFileContent(path.Join("word", target))
			if err != nil {
				continue
			}
			images = append(images, model.RawImage{
				Data:         data,
				OriginalName: path.Base(target),
			})
		}
	}
	return images
}

// parseRuns converts a paragraph's runs, hyperlink runs included, to
// model runs with normalized text.
func parseRuns(p paragraphXML) []model.Run {
	var runs []model.Run
	for _, run := range p.Runs {
		runs = appendRun(runs, run)
	}
	for _, link := range p.Hyperlinks {
		for _, run := range link.Runs {
			runs = appendRun(runs, run)
		}
	}
	return runs
}

func appendRun(runs []model.Run, run runXML) []model.Run {
	text := runText(run)
	if text == "" {
		return runs
	}
	return append(runs, model.Run{
		Text:   norm.NFC.String(text),
		Bold:   run.Properties.Bold.Val != "false" && run.Properties.Bold.XMLName.Local != "",
		Italic: run.Properties.Italic.Val != "false" && run.Properties.Italic.XMLName.Local != "",
	})
}

// runText extracts the text of a run, mapping tabs and breaks to
// whitespace.
func runText(run runXML) string {
	var parts []string
	for _, t := range run.Text {
		parts = append(parts, t.Value)
	}
	for range run.Tabs {
		parts = append(parts, "\t")
	}
	for _, br := range run.Breaks {
		if br.Type == "page" {
			parts = append(parts, "\n\n")
		} else {
			parts = append(parts, "\n")
		}
	}
	return strings.Join(parts, "")
}

// appendTable converts one body table to a raw cell matrix. Cell text
// is the cell's paragraphs joined by newlines.
func (r *Reader) appendTable(t tableXML) {
	if len(t.Rows) == 0 {
		return
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, tr := range t.Rows {
		row := make([]string, 0, len(tr.Cells))
		for _, tc := range tr.Cells {
			row = append(row, cellText(tc))
		}
		rows = append(rows, row)
	}
	r.blocks = append(r.blocks, model.RawTable{Rows: rows})
}

func cellText(tc tableCellXML) string {
	var parts []string
	for _, p := range tc.Paragraphs {
		text := strings.TrimSpace(paragraphText(p))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return norm.NFC.String(strings.Join(parts, "\n"))
}

func paragraphText(p paragraphXML) string {
	var sb strings.Builder
	for _, run := range p.Runs {
		sb.WriteString(runText(run))
	}
	for _, link := range p.Hyperlinks {
		for _, run := range link.Runs {
			sb.WriteString(runText(run))
		}
	}
	return sb.String()
}
