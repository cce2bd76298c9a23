// Package media handles extracted image payloads: format sniffing,
// dimension probing, and deterministic output filename assignment.
//
// Decoders for the common raster formats are registered as a side effect
// of importing this package, so image.DecodeConfig can identify PNG,
// JPEG, GIF, BMP, TIFF and WebP payloads.
package media

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/pagecraft/model"
)

// File is a named binary artifact produced by a conversion, ready to be
// written to disk or packaged alongside the template JSON.
type File struct {
	Name string
	Data []byte
}

// Describe sniffs an image payload and returns an ImageRef with its
// format, dimensions and assigned output filename. seq is the 1-based
// image sequence number within the document; filenames embed it
// zero-padded, so they are collision-free by construction.
//
// Payloads that cannot be decoded return an error; callers skip the
// image and continue.
func Describe(data []byte, originalName string, seq int) (*model.ImageRef, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}

	return &model.ImageRef{
		Filename: fmt.Sprintf("image_%03d%s", seq, extension(format, originalName)),
		Data:     data,
		Format:   format,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// extension picks the output file extension: the original filename's
// extension when present, otherwise one derived from the sniffed format.
func extension(format, originalName string) string {
	if ext := strings.ToLower(filepath.Ext(originalName)); ext != "" {
		return ext
	}
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}

// Collect returns the ordered (filename, bytes) list for all image
// blocks, matching the filenames referenced by image widget URLs.
func Collect(blocks []model.Block) []File {
	var files []File
	for _, b := range blocks {
		if b.Kind == model.KindImage && b.Image != nil {
			files = append(files, File{Name: b.Image.Filename, Data: b.Image.Data})
		}
	}
	return files
}
