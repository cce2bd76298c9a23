// Command pagecraft converts a Word document into page-builder template
// JSON, optionally packaging the template and its images into a ZIP
// archive ready for upload.
package main

import (
	"archive/zip"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tsawler/pagecraft"
	"github.com/tsawler/pagecraft/analytics"
	"github.com/tsawler/pagecraft/media"
	"github.com/tsawler/pagecraft/ocr"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to YAML config file")
		columns     = flag.Int("columns", 0, "number of output columns (1-3)")
		strategy    = flag.String("strategy", "", "distribution strategy: auto, sequential, balanced")
		baseURL     = flag.String("base-url", "", "base URL for image widget links")
		title       = flag.String("title", "", "template title")
		outPath     = flag.String("out", "", "output JSON path (default: input name with .json)")
		mediaDir    = flag.String("media-dir", "", "directory for extracted images (default: alongside output)")
		zipPath     = flag.String("zip", "", "package template and images into this ZIP archive")
		altText     = flag.Bool("alt-text", false, "generate image alt text via OCR (requires -tags ocr build)")
		noAnalytics = flag.Bool("no-analytics", false, "skip recording the conversion locally")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] document.docx\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg := pagecraft.DefaultConfig()
	if *configPath != "" {
		loaded, err := pagecraft.LoadConfig(*configPath)
		if err != nil {
			slog.Error("loading config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override config file values.
	if *columns != 0 {
		cfg.Columns = *columns
	}
	if *strategy != "" {
		cfg.Strategy = *strategy
	}
	if *baseURL != "" {
		cfg.BaseMediaURL = *baseURL
	}
	if *title != "" {
		cfg.Title = *title
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid settings", "error", err)
		os.Exit(1)
	}

	conv := cfg.Apply(pagecraft.Open(input))

	if *altText {
		client, err := ocr.New()
		if err != nil {
			slog.Warn("OCR unavailable, skipping alt text", "error", err)
		} else {
			defer client.Close()
			conv = conv.AltText(client)
		}
	}

	start := time.Now()
	res, warnings, err := conv.Convert()
	elapsed := time.Since(start)

	for _, w := range warnings {
		slog.Warn("conversion warning", "stage", w.Stage, "message", w.Message)
	}
	if err != nil {
		if !errors.Is(err, pagecraft.ErrEmptyDocument) {
			slog.Error("conversion failed", "input", input, "error", err)
			os.Exit(1)
		}
		slog.Warn("document has no content blocks; writing empty template")
	}

	out := *outPath
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
	}
	if err := writeOutput(res, out, *mediaDir, *zipPath); err != nil {
		slog.Error("writing output", "error", err)
		os.Exit(1)
	}

	slog.Info("conversion complete",
		"output", out,
		"headings", res.Stats.Headings,
		"paragraphs", res.Stats.Paragraphs,
		"images", res.Stats.Images,
		"tables", res.Stats.Tables,
		"total", res.Stats.Total,
		"duration", elapsed,
	)

	if !*noAnalytics {
		recordConversion(input, cfg, res, len(warnings), elapsed)
	}
}

// writeOutput writes the template JSON and extracted images, and
// optionally a ZIP archive bundling both.
func writeOutput(res *pagecraft.Result, outPath, mediaDir, zipPath string) error {
	data, err := res.Template.JSON()
	if err != nil {
		return fmt.Errorf("marshaling template: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}

	if len(res.Images) > 0 {
		dir := mediaDir
		if dir == "" {
			dir = filepath.Join(filepath.Dir(outPath), "media")
		}
		if err := writeImages(res.Images, dir); err != nil {
			return err
		}
	}

	if zipPath != "" {
		if err := writeArchive(zipPath, data, res.Images); err != nil {
			return err
		}
	}
	return nil
}

func writeImages(images []media.File, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating media directory: %w", err)
	}
	for _, img := range images {
		path := filepath.Join(dir, img.Name)
		if err := os.WriteFile(path, img.Data, 0o644); err != nil {
			return fmt.Errorf("writing image %s: %w", img.Name, err)
		}
		slog.Debug("wrote image", "path", path)
	}
	return nil
}

// writeArchive bundles the template JSON and images into one ZIP file,
// images under a media/ prefix.
func writeArchive(path string, template []byte, images []media.File) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("template.json")
	if err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	if _, err := w.Write(template); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	for _, img := range images {
		w, err := zw.Create("media/" + img.Name)
		if err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
		if _, err := w.Write(img.Data); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return f.Close()
}

// recordConversion stores the run in the local analytics database.
// Failures are logged and otherwise ignored.
func recordConversion(input string, cfg pagecraft.Config, res *pagecraft.Result, warnings int, elapsed time.Duration) {
	store, err := analytics.Open("")
	if err != nil {
		slog.Debug("analytics unavailable", "error", err)
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = store.RecordConversion(ctx, analytics.Record{
		Source:   filepath.Base(input),
		Columns:  cfg.Columns,
		Strategy: cfg.Strategy,
		Stats:    res.Stats,
		Warnings: warnings,
		Duration: elapsed,
	})
	if err != nil {
		slog.Debug("recording analytics", "error", err)
	}
}
