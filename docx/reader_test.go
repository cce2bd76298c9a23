package docx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/pagecraft/model"
)

// createTestDOCX creates a minimal DOCX file for testing. extra maps
// additional part names to raw content (styles, rels, media).
func createTestDOCX(t *testing.T, body string, extra map[string][]byte) string {
	t.Helper()

	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")

	f, err := os.Create(docxPath)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	zw := zip.NewWriter(f)

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(contentTypes))

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing">
  <w:body>` + body + `</w:body>
</w:document>`
	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(document))

	for name, data := range extra {
		w, _ = zw.Create(name)
		w.Write(data)
	}

	zw.Close()
	f.Close()

	return docxPath
}

func stylesPart(t *testing.T) []byte {
	t.Helper()
	return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
  <w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/></w:style>
</w:styles>`)
}

func TestOpenMissingDocument(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "broken.docx")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<Types/>`))
	zw.Close()
	f.Close()

	if _, err := Open(path); err == nil {
		t.Error("expected error for archive without word/document.xml")
	}
}

func TestOpenNotAZip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "plain.docx")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Error("expected error for non-ZIP input")
	}
}

func TestBlocksOrder(t *testing.T) {
	body := `
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Introduction</w:t></w:r></w:p>
<w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
<w:tbl>
  <w:tr><w:tc><w:p><w:r><w:t>Name</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Value</w:t></w:r></w:p></w:tc></w:tr>
  <w:tr><w:tc><w:p><w:r><w:t>Rate</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>42</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
<w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>`
	path := createTestDOCX(t, body, map[string][]byte{
		"word/styles.xml": stylesPart(t),
	})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	blocks := r.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("got %d blocks, want 4", len(blocks))
	}

	p1, ok := blocks[0].(model.RawParagraph)
	if !ok {
		t.Fatalf("block 0 is %T, want RawParagraph", blocks[0])
	}
	if p1.StyleID != "Heading1" {
		t.Errorf("block 0 StyleID = %q, want Heading1", p1.StyleID)
	}
	if p1.StyleName != "heading 1" {
		t.Errorf("block 0 StyleName = %q, want \"heading 1\"", p1.StyleName)
	}
	if p1.Text() != "Introduction" {
		t.Errorf("block 0 text = %q", p1.Text())
	}

	tbl, ok := blocks[2].(model.RawTable)
	if !ok {
		t.Fatalf("block 2 is %T, want RawTable", blocks[2])
	}
	if len(tbl.Rows) != 2 || len(tbl.Rows[0]) != 2 {
		t.Fatalf("table shape = %dx%d, want 2x2", len(tbl.Rows), len(tbl.Rows[0]))
	}
	if tbl.Rows[0][0] != "Name" || tbl.Rows[1][1] != "42" {
		t.Errorf("unexpected table cells: %v", tbl.Rows)
	}

	p2, ok := blocks[3].(model.RawParagraph)
	if !ok {
		t.Fatalf("block 3 is %T, want RawParagraph", blocks[3])
	}
	if p2.Text() != "Second paragraph." {
		t.Errorf("block 3 text = %q", p2.Text())
	}
}

func TestBlocksTableParagraphsNotDuplicated(t *testing.T) {
	body := `
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
	path := createTestDOCX(t, body, nil)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	blocks := r.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1 (cell paragraphs must not surface)", len(blocks))
	}
	if _, ok := blocks[0].(model.RawTable); !ok {
		t.Errorf("block 0 is %T, want RawTable", blocks[0])
	}
}

func TestBlocksRunFormatting(t *testing.T) {
	body := `
<w:p>
  <w:r><w:t xml:space="preserve">plain </w:t></w:r>
  <w:r><w:rPr><w:b/></w:rPr><w:t>bold</w:t></w:r>
  <w:r><w:rPr><w:i/></w:rPr><w:t>italic</w:t></w:r>
  <w:r><w:rPr><w:b w:val="false"/></w:rPr><w:t>notbold</w:t></w:r>
</w:p>`
	path := createTestDOCX(t, body, nil)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	blocks := r.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	p := blocks[0].(model.RawParagraph)
	if len(p.Runs) != 4 {
		t.Fatalf("got %d runs, want 4", len(p.Runs))
	}

	want := []model.Run{
		{Text: "plain ", Bold: false, Italic: false},
		{Text: "bold", Bold: true, Italic: false},
		{Text: "italic", Bold: false, Italic: true},
		{Text: "notbold", Bold: false, Italic: false},
	}
	for i, w := range want {
		if p.Runs[i] != w {
			t.Errorf("run %d = %+v, want %+v", i, p.Runs[i], w)
		}
	}
}

func TestBlocksHyperlinkRuns(t *testing.T) {
	body := `
<w:p>
  <w:r><w:t xml:space="preserve">See </w:t></w:r>
  <w:hyperlink r:id="rId5"><w:r><w:t>the site</w:t></w:r></w:hyperlink>
</w:p>`
	path := createTestDOCX(t, body, nil)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	p := r.Blocks()[0].(model.RawParagraph)
	if p.Text() != "See the site" {
		t.Errorf("text = %q, want %q", p.Text(), "See the site")
	}
}

func TestBlocksImageParagraph(t *testing.T) {
	imageData := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	rels := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`)
	body := `
<w:p>
  <w:r><w:t>Figure 1 caption text</w:t></w:r>
  <w:r>
    <w:drawing>
      <wp:inline>
        <a:graphic><a:graphicData><pic:pic><pic:blipFill><a:blip r:embed="rId7"/></pic:blipFill></pic:pic></a:graphicData></a:graphic>
      </wp:inline>
    </w:drawing>
  </w:r>
</w:p>`
	path := createTestDOCX(t, body, map[string][]byte{
		"word/_rels/document.xml.rels": rels,
		"word/media/image1.png":        imageData,
	})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	blocks := r.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	img, ok := blocks[0].(model.RawImage)
	if !ok {
		t.Fatalf("image paragraph yielded %T, want RawImage", blocks[0])
	}
	if img.OriginalName != "image1.png" {
		t.Errorf("OriginalName = %q, want image1.png", img.OriginalName)
	}
	if len(img.Data) != len(imageData) {
		t.Errorf("payload size = %d, want %d", len(img.Data), len(imageData))
	}
}

func TestBlocksUnresolvableImageDropped(t *testing.T) {
	body := `
<w:p>
  <w:r>
    <w:drawing>
      <wp:inline>
        <a:graphic><a:graphicData><pic:pic><pic:blipFill><a:blip r:embed="rId99"/></pic:blipFill></pic:pic></a:graphicData></a:graphic>
      </wp:inline>
    </w:drawing>
  </w:r>
</w:p>`
	path := createTestDOCX(t, body, nil)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	// The drawing has no resolvable relationship, so the paragraph
	// degrades to an empty text paragraph.
	blocks := r.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	p, ok := blocks[0].(model.RawParagraph)
	if !ok {
		t.Fatalf("block is %T, want RawParagraph", blocks[0])
	}
	if p.Text() != "" {
		t.Errorf("text = %q, want empty", p.Text())
	}
}

func TestNewReaderInMemory(t *testing.T) {
	path := createTestDOCX(t, `<w:p><w:r><w:t>hello</w:t></w:r></w:p>`, nil)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	if len(r.Blocks()) != 1 {
		t.Errorf("got %d blocks, want 1", len(r.Blocks()))
	}
}
