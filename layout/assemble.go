package layout

import (
	"fmt"
	"math"

	"github.com/tsawler/pagecraft/model"
	"github.com/tsawler/pagecraft/widget"
)

// ColumnWidths returns the per-column width percentages for the given
// column count. Each width is 100/n rounded to two decimals; the last
// column absorbs the rounding remainder so the total is exactly 100.
func ColumnWidths(columns int) []float64 {
	widths := make([]float64, columns)
	each := math.Round(10000.0/float64(columns)) / 100

	sum := 0.0
	for i := 0; i < columns-1; i++ {
		widths[i] = each
		sum += each
	}
	widths[columns-1] = math.Round((100-sum)*100) / 100
	return widths
}

// Assemble wraps per-column block lists into column containers, the
// columns into one section, and the section into the template root.
// It also returns the per-kind summary statistics; Stats.Total equals
// the number of blocks across all columns.
func Assemble(cols [][]model.Block, b *widget.Builder) (*model.Template, model.Stats) {
	widths := ColumnWidths(len(cols))

	var stats model.Stats
	columnNodes := make([]*model.Node, 0, len(cols))

	for i, col := range cols {
		widgets := make([]*model.Node, 0, len(col))
		for _, blk := range col {
			widgets = append(widgets, b.Build(blk))
			stats.Count(blk.Kind)
		}

		columnNodes = append(columnNodes, &model.Node{
			ID:     widget.ContainerID(model.ElTypeColumn, i),
			ElType: model.ElTypeColumn,
			Settings: map[string]any{
				"_column_size": widths[i],
				"_inline_size": nil,
			},
			Elements: widgets,
		})
	}

	section := &model.Node{
		ID:     widget.ContainerID(model.ElTypeSection, 0),
		ElType: model.ElTypeSection,
		Settings: map[string]any{
			"column_count": len(cols),
		},
		Elements: columnNodes,
	}

	tpl := &model.Template{
		Version: "0.4",
		Title:   defaultTitle(len(cols)),
		Type:    "page",
		Content: []*model.Node{section},
	}

	return tpl, stats
}

func defaultTitle(columns int) string {
	if columns == 1 {
		return "Imported document (1 column)"
	}
	return fmt.Sprintf("Imported document (%d columns)", columns)
}
