package blockparser

import (
	"bytes"
	"strings"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

// parseList groups a run of same-delimiter list items starting at lines[i]
// into a List node, determining tight/loose per spec §4.3.
func parseList(lines []line, i int, delim byte, ordered bool, startNum, markerWidth, baseIndent int, c *ctx) (*ast.Node, int) {
	node := ast.NewNode(ast.List, span.Span{Start: lines[i].offset, End: lines[i].endOffset()})
	node.Ordered = ordered
	if ordered {
		node.StartIndex = startNum
	} else {
		node.StartIndex = 1
	}

	loose := false
	j := i
	for j < len(lines) {
		l := lines[j]
		if isBlank(l) {
			// A blank line between items (with another item following)
			// forces the list loose; a run of blanks at the very end just
			// terminates the list.
			k := j
			for k < len(lines) && isBlank(lines[k]) {
				k++
			}
			if k >= len(lines) {
				j = k
				break
			}
			_, nextContent := trimIndent(lines[k].text, 0, baseIndent+markerWidth+3)
			d, _, _, _, _ := listMarker(bytes.TrimLeft(nextContent, " "))
			_, directContent := trimIndent(lines[k].text, 0, 4)
			d2, _, _, _, _ := listMarker(directContent)
			if d2 != delim && d == 0 {
				j = k
				break
			}
			loose = true
			j = k
			continue
		}

		_, content := trimIndent(l.text, 0, 4)
		d, width, tail, _, num := listMarker(content)
		if d != delim {
			break
		}
		hi := width

		itemStart := l
		var innerLines []line
		innerLines = append(innerLines, line{text: tail, raw: tail, offset: l.offset + (len(l.text) - len(tail))})

		k := j + 1
		itemHadInternalBlank := false
		for k < len(lines) {
			il := lines[k]
			if isBlank(il) {
				// look ahead: blank continues the item only if a further
				// indented (hi+) line follows
				m := k
				for m < len(lines) && isBlank(lines[m]) {
					m++
				}
				if m < len(lines) {
					in, _ := trimIndent(lines[m].text, 0, hi)
					if in >= hi {
						for n := k; n < m; n++ {
							innerLines = append(innerLines, lines[n])
						}
						itemHadInternalBlank = true
						k = m
						continue
					}
				}
				break
			}
			in, rest := trimIndent(il.text, 0, hi)
			if in < hi {
				break
			}
			innerLines = append(innerLines, line{text: rest, raw: rest, offset: il.offset + (len(il.text) - len(rest))})
			k++
		}

		item := ast.NewNode(ast.ListItem, span.Span{Start: itemStart.offset, End: lines[k-1].endOffset()})
		if ordered {
			item.SetAttr("ordinal", ast.IntAttr(int64(num)))
		}
		task, taskText := detectTaskMarker(innerLines)
		item.Task = task
		if task != ast.TaskNone {
			innerLines = replaceFirstLineText(innerLines, taskText)
		}
		for _, child := range parseBlocks(innerLines, c) {
			item.AppendChild(child)
		}
		node.AppendChild(item)
		if itemHadInternalBlank {
			loose = true
		}
		j = k
	}

	node.Tight = !loose
	node.Span.End = lines[min(j, len(lines))-1].endOffset()
	return node, j
}

// detectTaskMarker looks for a literal "[ ]"/"[x]"/"[X]" + space at the
// start of the item's first inline content.
func detectTaskMarker(innerLines []line) (ast.TaskState, []byte) {
	if len(innerLines) == 0 {
		return ast.TaskNone, nil
	}
	text := innerLines[0].text
	trimmed := bytes.TrimLeft(text, " ")
	if len(trimmed) < 4 || trimmed[0] != '[' || trimmed[2] != ']' || trimmed[3] != ' ' {
		return ast.TaskNone, nil
	}
	switch trimmed[1] {
	case ' ':
		return ast.TaskUnchecked, trimmed[4:]
	case 'x', 'X':
		return ast.TaskChecked, trimmed[4:]
	default:
		return ast.TaskNone, nil
	}
}

func replaceFirstLineText(lines []line, text []byte) []line {
	if len(lines) == 0 {
		return lines
	}
	out := make([]line, len(lines))
	copy(out, lines)
	out[0] = line{text: text, raw: text, offset: lines[0].offset}
	return out
}

// parseFootnoteDef handles "[^label]: content", continued like a list item
// at the marker's indent width.
func parseFootnoteDef(lines []line, i, indent int, label string, c *ctx) (*ast.Node, int) {
	start := lines[i]
	_, content := trimIndent(start.text, 0, indent)
	markerEnd := bytes.IndexByte(content, ':') + 1
	hi := indent + markerEnd
	firstTail := bytes.TrimPrefix(content[markerEnd:], []byte(" "))

	var innerLines []line
	innerLines = append(innerLines, line{text: firstTail, raw: firstTail, offset: start.offset})

	j := i + 1
	for j < len(lines) {
		l := lines[j]
		if isBlank(l) {
			m := j
			for m < len(lines) && isBlank(lines[m]) {
				m++
			}
			if m < len(lines) {
				if in, _ := trimIndent(lines[m].text, 0, hi); in >= hi {
					for n := j; n < m; n++ {
						innerLines = append(innerLines, lines[n])
					}
					j = m
					continue
				}
			}
			break
		}
		in, rest := trimIndent(l.text, 0, hi)
		if in < hi {
			break
		}
		innerLines = append(innerLines, line{text: rest, raw: rest, offset: l.offset})
		j++
	}

	node := ast.NewNode(ast.FootnoteDef, span.Span{Start: start.offset, End: lines[j-1].endOffset()})
	node.Label = label
	for _, child := range parseBlocks(innerLines, c) {
		node.AppendChild(child)
	}

	key := strings.ToLower(label)
	if _, exists := c.footnotes[key]; !exists {
		c.footnotes[key] = node
	}
	return node, j
}

func tryFootnoteDefMarker(content []byte) (label string, ok bool) {
	if len(content) < 4 || content[0] != '[' || content[1] != '^' {
		return "", false
	}
	end := bytes.IndexByte(content, ']')
	if end < 0 || end+1 >= len(content) || content[end+1] != ':' {
		return "", false
	}
	return string(content[2:end]), true
}

// collectIndentedRun gathers lines starting at i that are indented by at
// least minIndent (or blank), stripping that indent, for definition-list
// detail blocks.
func collectIndentedRun(lines []line, i, minIndent int) ([]line, int) {
	first := lines[i]
	_, content := trimIndent(first.text, 0, 4)
	trimmed := bytes.TrimLeft(content, " ")
	var firstTail []byte
	if bytes.HasPrefix(trimmed, []byte(": ")) {
		firstTail = trimmed[2:]
	} else {
		firstTail = bytes.TrimPrefix(trimmed, []byte(":"))
	}

	var innerLines []line
	innerLines = append(innerLines, line{text: firstTail, raw: firstTail, offset: first.offset})

	j := i + 1
	for j < len(lines) {
		l := lines[j]
		if isBlank(l) {
			break
		}
		in, rest := trimIndent(l.text, 0, minIndent)
		if in < minIndent {
			break
		}
		innerLines = append(innerLines, line{text: rest, raw: rest, offset: l.offset})
		j++
	}
	return innerLines, j
}

func buildDefinitionDetail(innerLines []line, c *ctx) *ast.Node {
	start := span.Span{}
	if len(innerLines) > 0 {
		start.Start = innerLines[0].offset
		start.End = innerLines[len(innerLines)-1].endOffset()
	}
	node := ast.NewNode(ast.DefinitionDetail, start)
	for _, child := range parseBlocks(innerLines, c) {
		node.AppendChild(child)
	}
	return node
}
