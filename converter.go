package pagecraft

import (
	"fmt"

	"github.com/tsawler/pagecraft/classify"
	"github.com/tsawler/pagecraft/docx"
	"github.com/tsawler/pagecraft/extract"
	"github.com/tsawler/pagecraft/format"
	"github.com/tsawler/pagecraft/layout"
	"github.com/tsawler/pagecraft/media"
	"github.com/tsawler/pagecraft/model"
	"github.com/tsawler/pagecraft/widget"
)

// TextRecognizer produces text from image bytes. The ocr package's
// Client satisfies it; any other implementation can be supplied for
// alt text generation.
type TextRecognizer interface {
	RecognizeImage(imageData []byte) (string, error)
}

// Result holds the full output of a conversion: the template tree, the
// per-kind statistics, and the image files the template references.
type Result struct {
	Template *model.Template
	Stats    model.Stats
	Images   []media.File
	Warnings []Warning
}

// Converter provides a fluent interface for converting a document into
// a page-builder template. Each configuration method returns a new
// Converter instance, making chains safe to fork and reuse.
type Converter struct {
	// Source
	filename string

	reader       *docx.Reader
	ownsReader   bool
	readerOpened bool

	options convertOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Converter with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename:     c.filename,
		reader:       c.reader,
		ownsReader:   c.ownsReader,
		readerOpened: c.readerOpened,
		options:      c.options.clone(),
		err:          c.err,
		warnings:     append([]Warning(nil), c.warnings...),
	}
}

// ensureReader opens the reader if not already open.
func (c *Converter) ensureReader() error {
	if c.readerOpened {
		return nil
	}
	if c.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	if f := format.Detect(c.filename); f != format.DOCX {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, c.filename)
	}

	dr, err := docx.Open(c.filename)
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	c.reader = dr
	c.ownsReader = true
	c.readerOpened = true
	return nil
}

// Close releases resources associated with the Converter.
// It is safe to call Close multiple times.
func (c *Converter) Close() error {
	if c.ownsReader && c.reader != nil {
		err := c.reader.Close()
		c.reader = nil
		c.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Columns sets the number of output columns (1-3). The default is 1.
//
// Example:
//
//	tpl, _, err := pagecraft.Open("doc.docx").Columns(2).Template()
func (c *Converter) Columns(n int) *Converter {
	nc := c.clone()
	nc.options.columns = n
	return nc
}

// Strategy selects the distribution strategy by name: "auto",
// "sequential" or "balanced". The default is "auto". An unknown name
// surfaces as an error from the terminal operation.
//
// Example:
//
//	tpl, _, err := pagecraft.Open("doc.docx").Columns(3).Strategy("balanced").Template()
func (c *Converter) Strategy(name string) *Converter {
	nc := c.clone()
	s, err := layout.ParseStrategy(name)
	if err != nil {
		if nc.err == nil {
			nc.err = err
		}
		return nc
	}
	nc.options.strategy = s
	return nc
}

// BaseMediaURL sets the URL prefix for image widget URLs. The default
// is empty, which emits bare image filenames.
//
// Example:
//
//	tpl, _, err := pagecraft.Open("doc.docx").
//	    BaseMediaURL("https://example.com/wp-content/uploads").
//	    Template()
func (c *Converter) BaseMediaURL(url string) *Converter {
	nc := c.clone()
	nc.options.baseMediaURL = url
	return nc
}

// HeadingThreshold sets the maximum text length, in runes, for the
// heading heuristic to consider a styleless paragraph a heading.
func (c *Converter) HeadingThreshold(chars int) *Converter {
	nc := c.clone()
	nc.options.headingCharThreshold = chars
	return nc
}

// Title sets the template title, replacing the generated default.
func (c *Converter) Title(title string) *Converter {
	nc := c.clone()
	nc.options.title = title
	return nc
}

// AltText enables alt text generation for extracted images using the
// given recognizer. Recognition failures degrade to warnings.
//
// Example:
//
//	client, err := ocr.New()
//	if err != nil {
//	    // OCR not available
//	}
//	defer client.Close()
//	res, _, err := pagecraft.Open("doc.docx").AltText(client).Convert()
func (c *Converter) AltText(r TextRecognizer) *Converter {
	nc := c.clone()
	nc.options.altText = r
	return nc
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Convert runs the full pipeline and returns the conversion result,
// accumulated warnings, and any error. The reader is closed before
// returning if the Converter opened it.
//
// An empty document returns a complete template tree with empty columns
// alongside ErrEmptyDocument.
func (c *Converter) Convert() (*Result, []Warning, error) {
	defer c.Close()

	if c.err != nil {
		return nil, c.warnings, c.err
	}
	if err := layout.Validate(c.options.columns, c.options.strategy); err != nil {
		return nil, c.warnings, err
	}
	if err := c.ensureReader(); err != nil {
		return nil, c.warnings, err
	}

	blocks, extractWarnings := extract.Blocks(c.reader.Blocks(), classify.Config{
		HeadingCharThreshold: c.options.headingCharThreshold,
	})
	for _, w := range extractWarnings {
		c.warnings = append(c.warnings, Warning{
			Stage:   "extract",
			Message: fmt.Sprintf("block %d: %s", w.Order, w.Reason),
		})
	}

	if c.options.altText != nil {
		c.fillAltText(blocks)
	}

	cols, err := layout.Distribute(blocks, c.options.columns, c.options.strategy)
	if err != nil {
		return nil, c.warnings, err
	}

	tpl, stats := layout.Assemble(cols, widget.NewBuilder(c.options.baseMediaURL))
	if c.options.title != "" {
		tpl.Title = c.options.title
	}

	res := &Result{
		Template: tpl,
		Stats:    stats,
		Images:   media.Collect(blocks),
		Warnings: append([]Warning(nil), c.warnings...),
	}

	if stats.Total == 0 {
		return res, c.warnings, ErrEmptyDocument
	}
	return res, c.warnings, nil
}

// Template runs the pipeline and returns just the template tree.
func (c *Converter) Template() (*model.Template, []Warning, error) {
	res, warnings, err := c.Convert()
	if res == nil {
		return nil, warnings, err
	}
	return res.Template, warnings, err
}

// JSON runs the pipeline and returns the template serialized as
// indented JSON, ready to be imported by the page builder.
func (c *Converter) JSON() ([]byte, []Warning, error) {
	res, warnings, err := c.Convert()
	if res == nil {
		return nil, warnings, err
	}

	data, merr := res.Template.JSON()
	if merr != nil {
		return nil, warnings, fmt.Errorf("marshaling template: %w", merr)
	}
	return data, warnings, err
}

// Stats runs the pipeline and returns just the block statistics.
func (c *Converter) Stats() (model.Stats, []Warning, error) {
	res, warnings, err := c.Convert()
	if res == nil {
		return model.Stats{}, warnings, err
	}
	return res.Stats, warnings, err
}

// fillAltText runs the recognizer over images that have no alt text.
// Failures become warnings; the image keeps its empty alt.
func (c *Converter) fillAltText(blocks []model.Block) {
	for _, b := range blocks {
		if b.Kind != model.KindImage || b.Image == nil || b.Image.AltText != "" {
			continue
		}
		text, err := c.options.altText.RecognizeImage(b.Image.Data)
		if err != nil {
			c.warnings = append(c.warnings, Warning{
				Stage:   "ocr",
				Message: fmt.Sprintf("%s: %v", b.Image.Filename, err),
			})
			continue
		}
		b.Image.AltText = text
	}
}
