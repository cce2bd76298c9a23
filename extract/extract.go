// Package extract turns an ordered raw block stream into the flat,
// classified block sequence the rest of the pipeline consumes.
//
// The walk is a single forward pass. Every raw block consumes one Order
// slot, including empty paragraphs that are subsequently dropped, so
// gaps in Order are expected and are not a defect.
package extract

import (
	"strings"

	"github.com/tsawler/pagecraft/classify"
	"github.com/tsawler/pagecraft/media"
	"github.com/tsawler/pagecraft/model"
)

// Warning describes a non-fatal anomaly encountered during extraction,
// such as an image payload in an unsupported format. The block in
// question is skipped; the conversion continues.
type Warning struct {
	Order  int
	Reason string
}

// sequence carries the run-wide counters threaded through the walk.
// Passing it explicitly keeps concurrent conversions in one process
// independent of each other.
type sequence struct {
	order    int
	imageSeq int
}

// Blocks walks the raw block stream once, in order, and returns the
// classified blocks that survive filtering plus any warnings.
func Blocks(raw []model.RawBlock, cfg classify.Config) ([]model.Block, []Warning) {
	blocks := make([]model.Block, 0, len(raw))
	var warnings []Warning
	seq := sequence{}

	for _, rb := range raw {
		order := seq.order
		seq.order++

		kind, level := cfg.Classify(rb)
		switch kind {
		case model.KindEmpty, model.KindUnknown:
			continue

		case model.KindHeading, model.KindParagraph:
			p := paragraphOf(rb)
			blocks = append(blocks, model.Block{
				Kind:  kind,
				Level: level,
				Order: order,
				Text:  trimRuns(p),
				Runs:  p.Runs,
			})

		case model.KindImage:
			img := imageOf(rb)
			ref, err := media.Describe(img.Data, img.OriginalName, seq.imageSeq+1)
			if err != nil {
				warnings = append(warnings, Warning{Order: order, Reason: err.Error()})
				continue
			}
			seq.imageSeq++
			blocks = append(blocks, model.Block{
				Kind:  model.KindImage,
				Order: order,
				Image: ref,
			})

		case model.KindTable:
			tbl := tableOf(rb)
			blocks = append(blocks, model.Block{
				Kind:  model.KindTable,
				Order: order,
				Table: normalizeTable(tbl.Rows),
			})
		}
	}

	return blocks, warnings
}

func paragraphOf(rb model.RawBlock) model.RawParagraph {
	switch b := rb.(type) {
	case model.RawParagraph:
		return b
	case *model.RawParagraph:
		return *b
	}
	return model.RawParagraph{}
}

func imageOf(rb model.RawBlock) model.RawImage {
	switch b := rb.(type) {
	case model.RawImage:
		return b
	case *model.RawImage:
		return *b
	}
	return model.RawImage{}
}

func tableOf(rb model.RawBlock) model.RawTable {
	switch b := rb.(type) {
	case model.RawTable:
		return b
	case *model.RawTable:
		return *b
	}
	return model.RawTable{}
}

// trimRuns returns the paragraph text with surrounding whitespace
// removed but inner run boundaries untouched.
func trimRuns(p model.RawParagraph) string {
	return strings.TrimSpace(p.Text())
}

// normalizeTable right-pads ragged rows with empty strings so every row
// has the widest row's cell count, and flags a probable header row.
func normalizeTable(rows [][]string) *model.TableData {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	padded := make([][]string, len(rows))
	for i, row := range rows {
		padded[i] = make([]string, width)
		copy(padded[i], row)
	}

	return &model.TableData{
		Rows:      padded,
		HasHeader: sniffHeader(padded),
	}
}

// sniffHeader guesses whether the first row is a header: header cells
// tend to be short labels, noticeably shorter than the body row below.
// The flag is advisory only and feeds widget styling.
func sniffHeader(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}
	first := avgCellLen(rows[0])
	second := avgCellLen(rows[1])
	return first > 0 && first < second*1.5
}

func avgCellLen(row []string) float64 {
	if len(row) == 0 {
		return 0
	}
	total := 0
	for _, cell := range row {
		total += len(cell)
	}
	return float64(total) / float64(len(row))
}
