package blockparser

import (
	"strings"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

// parseTableRow splits a pipe-delimited row into raw cell text, honoring
// `\|` as an escaped literal pipe and trimming one optional leading/trailing
// unescaped pipe.
func parseTableRow(content []byte) ([]string, bool) {
	s := strings.TrimSpace(string(content))
	if !strings.Contains(s, "|") {
		return nil, false
	}
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")

	var cells []string
	var cur strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			cur.WriteRune(r)
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells, true
}

// parseTableDelimiterRow matches a GFM alignment row like
// "| --- | :---: | ---: |" and returns per-column alignment.
func parseTableDelimiterRow(text []byte) ([]ast.Align, bool) {
	cells, ok := parseTableRow(text)
	if !ok {
		return nil, false
	}
	aligns := make([]ast.Align, len(cells))
	for idx, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			return nil, false
		}
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		dashes := strings.Trim(cell, ":")
		if len(dashes) == 0 || strings.Trim(dashes, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			aligns[idx] = ast.AlignCenter
		case right:
			aligns[idx] = ast.AlignRight
		case left:
			aligns[idx] = ast.AlignLeft
		default:
			aligns[idx] = ast.AlignNone
		}
	}
	return aligns, true
}

// buildTable consumes the header row, its delimiter row, and all
// subsequent pipe-rows into a Table node. Body rows are padded/truncated
// to the header's column count (spec §3 invariant 5).
func buildTable(lines []line, i int, headerCells []string, aligns []ast.Align) (*ast.Node, int) {
	start := lines[i]
	table := ast.NewNode(ast.Table, span.Span{Start: start.offset, End: start.endOffset()})
	table.ColumnAlign = aligns
	cols := len(headerCells)

	table.AppendChild(buildTableRow(headerCells, cols, aligns, true, start.offset, start.endOffset()))

	j := i + 2 // skip header + delimiter row
	for j < len(lines) {
		l := lines[j]
		if isBlank(l) {
			break
		}
		cells, ok := parseTableRow(l.text)
		if !ok {
			break
		}
		table.AppendChild(buildTableRow(cells, cols, aligns, false, l.offset, l.endOffset()))
		j++
	}
	table.Span.End = lines[j-1].endOffset()
	return table, j
}

func buildTableRow(cells []string, cols int, aligns []ast.Align, header bool, start, end int) *ast.Node {
	row := ast.NewNode(ast.TableRow, span.Span{Start: start, End: end})
	row.HeaderRow = header
	for idx := 0; idx < cols; idx++ {
		text := ""
		if idx < len(cells) {
			text = cells[idx]
		}
		cell := ast.NewNode(ast.TableCell, span.Span{Start: start, End: end})
		cell.Literal = text
		if idx < len(aligns) {
			cell.ColumnAlign = []ast.Align{aligns[idx]}
		}
		row.AppendChild(cell)
	}
	return row
}
