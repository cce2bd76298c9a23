package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/tsawler/pagecraft/model"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding PNG: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestDescribe(t *testing.T) {
	data := encodePNG(t, 120, 80)

	ref, err := Describe(data, "photo.png", 1)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	if ref.Filename != "image_001.png" {
		t.Errorf("Filename = %q, want image_001.png", ref.Filename)
	}
	if ref.Format != "png" {
		t.Errorf("Format = %q, want png", ref.Format)
	}
	if ref.Width != 120 || ref.Height != 80 {
		t.Errorf("dimensions = %dx%d, want 120x80", ref.Width, ref.Height)
	}
}

func TestDescribeExtensionFallback(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		originalName string
		seq          int
		want         string
	}{
		{"original extension kept", encodePNG(t, 2, 2), "diagram.PNG", 3, "image_003.png"},
		{"jpeg without name", encodeJPEG(t, 2, 2), "", 1, "image_001.jpg"},
		{"png without name", encodePNG(t, 2, 2), "", 12, "image_012.png"},
		{"mismatched extension trusted", encodeJPEG(t, 2, 2), "scan.jpeg", 2, "image_002.jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Describe(tt.data, tt.originalName, tt.seq)
			if err != nil {
				t.Fatalf("Describe failed: %v", err)
			}
			if ref.Filename != tt.want {
				t.Errorf("Filename = %q, want %q", ref.Filename, tt.want)
			}
		})
	}
}

func TestDescribeUnsupportedFormat(t *testing.T) {
	if _, err := Describe([]byte("definitely not an image"), "note.txt", 1); err == nil {
		t.Error("expected error for undecodable payload")
	}
}

func TestCollect(t *testing.T) {
	blocks := []model.Block{
		{Kind: model.KindParagraph, Text: "text"},
		{Kind: model.KindImage, Image: &model.ImageRef{Filename: "image_001.png", Data: []byte{1}}},
		{Kind: model.KindTable, Table: &model.TableData{Rows: [][]string{{"a"}}}},
		{Kind: model.KindImage, Image: &model.ImageRef{Filename: "image_002.jpg", Data: []byte{2}}},
	}

	files := Collect(blocks)
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].Name != "image_001.png" || files[1].Name != "image_002.jpg" {
		t.Errorf("unexpected order: %s, %s", files[0].Name, files[1].Name)
	}
}
