// Package pagecraft provides a fluent API for converting Word (.docx)
// documents into page-builder template JSON.
//
// Basic usage:
//
//	data, warnings, err := pagecraft.Open("document.docx").JSON()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pagecraft.FormatWarnings(warnings))
//	}
//
// With options:
//
//	res, _, err := pagecraft.Open("document.docx").
//	    Columns(2).
//	    Strategy("balanced").
//	    BaseMediaURL("https://example.com/uploads").
//	    Convert()
//
// For advanced use cases, the lower-level docx, extract, layout and
// widget packages are also available.
package pagecraft

import (
	"github.com/tsawler/pagecraft/docx"
)

// Open opens a DOCX file and returns a Converter for fluent
// configuration. The underlying reader is opened lazily and closed
// when a terminal operation like Convert() or JSON() runs.
//
// Example:
//
//	data, warnings, err := pagecraft.Open("document.docx").JSON()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates a Converter from an already-opened docx.Reader.
// This is useful when the document lives in memory or the caller needs
// control over the reader lifecycle. The caller is responsible for
// closing the reader.
//
// Example:
//
//	r, err := docx.Open("document.docx")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	res, warnings, err := pagecraft.FromReader(r).Convert()
func FromReader(r *docx.Reader) *Converter {
	return &Converter{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustConvert is a helper that wraps a terminal operation and panics if
// the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	data := pagecraft.MustConvert(pagecraft.Open("document.docx").JSON())
func MustConvert[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
