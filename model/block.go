package model

import "strings"

// Kind represents the semantic kind of a document block.
type Kind int

const (
	KindUnknown Kind = iota
	KindHeading
	KindParagraph
	KindImage
	KindTable
	// KindEmpty marks a paragraph with no visible text. Empty blocks are
	// dropped during extraction and never reach the distributor.
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "Heading"
	case KindParagraph:
		return "Paragraph"
	case KindImage:
		return "Image"
	case KindTable:
		return "Table"
	case KindEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// Run is one formatted text run within a paragraph.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

// RawBlock is one structural unit of the source document, in original
// reading order. Concrete types are RawParagraph, RawImage and RawTable.
type RawBlock interface {
	// BlockKind returns the structural kind of the block before any
	// heuristic classification (paragraphs may still become headings).
	BlockKind() Kind
}

// RawParagraph is a paragraph block with its source style and runs.
type RawParagraph struct {
	StyleID   string
	StyleName string
	Runs      []Run
}

func (RawParagraph) BlockKind() Kind { return KindParagraph }

// Text returns the concatenated run text. Runs join without added
// whitespace beyond what the source text contains.
func (p RawParagraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// RawImage is an embedded image block with its decoded payload.
type RawImage struct {
	Data         []byte
	OriginalName string
}

func (RawImage) BlockKind() Kind { return KindImage }

// RawTable is a table block as a row-major matrix of cell text.
// Rows may be ragged; extraction pads them to the widest row.
type RawTable struct {
	Rows [][]string
}

func (RawTable) BlockKind() Kind { return KindTable }

// Block is a classified block ready for distribution and widget building.
type Block struct {
	Kind Kind

	// Level is the heading level (1-6) for KindHeading, 0 otherwise.
	Level int

	// Order is the 0-based position assigned during the pre-filter
	// extraction walk. Dropped empty paragraphs leave gaps; gaps are
	// not a defect. Order is the sole ordering key downstream.
	Order int

	// Text is the trimmed paragraph or heading text.
	Text string

	// Runs carries per-run formatting for paragraphs.
	Runs []Run

	Image *ImageRef
	Table *TableData
}

// ImageRef describes an extracted image and its assigned output filename.
type ImageRef struct {
	Filename string
	Data     []byte
	Format   string
	Width    int
	Height   int
	AltText  string
}

// TableData is a rectangular cell matrix with an advisory header flag.
type TableData struct {
	Rows [][]string

	// HasHeader marks the first row as a probable header row. The flag
	// is advisory, consumed for widget styling only.
	HasHeader bool
}

// ColCount returns the width of the widest row.
func (t *TableData) ColCount() int {
	count := 0
	for _, row := range t.Rows {
		if len(row) > count {
			count = len(row)
		}
	}
	return count
}
