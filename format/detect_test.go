package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, "DOCX"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormatExtension(t *testing.T) {
	if got := DOCX.Extension(); got != ".docx" {
		t.Errorf("DOCX.Extension() = %q", got)
	}
	if got := Unknown.Extension(); got != "" {
		t.Errorf("Unknown.Extension() = %q", got)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"report.docx", DOCX},
		{"REPORT.DOCX", DOCX},
		{"path/to/report.docx", DOCX},
		{"report.doc", Unknown},
		{"report.pdf", Unknown},
		{"report", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromReader(t *testing.T) {
	// A ZIP with a word/ part is DOCX.
	var docxBuf bytes.Buffer
	zw := zip.NewWriter(&docxBuf)
	w, _ := zw.Create("word/document.xml")
	w.Write([]byte("<w:document/>"))
	zw.Close()

	data := docxBuf.Bytes()
	f, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	if f != DOCX {
		t.Errorf("got %v, want DOCX", f)
	}

	// A ZIP without word/ parts is not.
	var zipBuf bytes.Buffer
	zw = zip.NewWriter(&zipBuf)
	w, _ = zw.Create("readme.txt")
	w.Write([]byte("hello"))
	zw.Close()

	data = zipBuf.Bytes()
	f, err = DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	if f != Unknown {
		t.Errorf("got %v, want Unknown", f)
	}

	// Plain text is not a ZIP at all.
	text := []byte("just some text")
	f, err = DetectFromReader(bytes.NewReader(text), int64(len(text)))
	if err != nil {
		t.Fatal(err)
	}
	if f != Unknown {
		t.Errorf("got %v, want Unknown", f)
	}
}
