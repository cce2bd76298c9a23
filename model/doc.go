// Package model provides the intermediate representation for document
// conversion.
//
// This package defines the types that flow through the conversion pipeline,
// from the raw blocks a document reader produces to the template tree the
// page builder consumes.
//
// # Blocks
//
// A source document is an ordered sequence of [RawBlock] values:
//
//   - [RawParagraph] - styled text made of formatted runs
//   - [RawImage] - embedded image payload
//   - [RawTable] - a matrix of cell text
//
// Classification turns each raw block into a [Block] carrying its semantic
// [Kind] (heading, paragraph, image, table) and its immutable document
// position in Order. Order is assigned once during extraction and is the
// only ordering key used downstream.
//
// # Template
//
// The output side is a [Template]: a root holding one section [Node], which
// holds column nodes, which hold widget nodes. Template values marshal
// directly to the JSON shape the page-builder import feature expects.
package model
