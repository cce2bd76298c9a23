package widget

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/pagecraft/model"
)

// Inline styles keep rendered tables readable without relying on the
// destination site's theme CSS.
const (
	tableStyle  = "border-collapse:collapse;width:100%"
	cellStyle   = "border:1px solid #ddd;padding:8px"
	headerStyle = cellStyle + ";background-color:#f2f2f2;text-align:left"
)

// TableHTML renders table data as an HTML table with inline styling.
// Every emitted row has exactly ColCount cells; short rows are padded
// with empty cells. When HasHeader is set the first row renders as th
// cells inside a thead.
func TableHTML(t *model.TableData) string {
	if t == nil || len(t.Rows) == 0 {
		return ""
	}

	width := t.ColCount()
	var sb strings.Builder
	sb.WriteString(`<table style="` + tableStyle + `">`)

	body := t.Rows
	if t.HasHeader {
		sb.WriteString("<thead>")
		writeRow(&sb, t.Rows[0], width, "th", headerStyle)
		sb.WriteString("</thead>")
		body = t.Rows[1:]
	}

	sb.WriteString("<tbody>")
	for _, row := range body {
		writeRow(&sb, row, width, "td", cellStyle)
	}
	sb.WriteString("</tbody></table>")

	return sb.String()
}

func writeRow(sb *strings.Builder, row []string, width int, tag, style string) {
	sb.WriteString("<tr>")
	for i := 0; i < width; i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		sb.WriteString(`<` + tag + ` style="` + style + `">`)
		sb.WriteString(html.EscapeString(cell))
		sb.WriteString("</" + tag + ">")
	}
	sb.WriteString("</tr>")
}
