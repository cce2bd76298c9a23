package pagecraft

import "errors"

var (
	// ErrEmptyDocument is returned when the source document yields no
	// content blocks. The conversion still produces a complete template
	// tree with empty columns, so callers can treat the condition as
	// advisory.
	ErrEmptyDocument = errors.New("pagecraft: document contains no content blocks")

	// ErrUnsupportedFormat is returned when the input file is not a
	// DOCX document.
	ErrUnsupportedFormat = errors.New("pagecraft: unsupported input format")
)
