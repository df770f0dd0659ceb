package inline

import (
	"strings"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

// scanLinkOrImage matches either the inline form "[text](url \"title\")" or
// the reference form "[text][label]"/"[text][]"/"[text]", starting at the
// '[' byte. isImage indicates the caller already consumed a leading '!'.
func scanLinkOrImage(raw []byte, i, offset int, links Resolver, isImage bool) (*ast.Node, int, bool) {
	textEnd, ok := matchBracket(raw, i)
	if !ok {
		return nil, 0, false
	}
	label := string(raw[i+1 : textEnd])
	start := i
	if isImage {
		start--
	}

	j := textEnd + 1
	if j < len(raw) && raw[j] == '(' {
		url, title, end, ok := matchInlineDest(raw, j)
		if ok {
			node := buildLinkNode(isImage, label, offset+start, offset+end)
			node.URL = url
			node.Title = title
			return node, end, true
		}
	}

	// Reference form: "[text][label]", "[text][]", or shortcut "[text]".
	refLabel := label
	end := textEnd + 1
	if j < len(raw) && raw[j] == '[' {
		if closeIdx, ok := matchBracket(raw, j); ok {
			if closeIdx > j+1 {
				refLabel = string(raw[j+1 : closeIdx])
			}
			end = closeIdx + 1
		}
	}
	def, found := links.lookup(refLabel)
	node := buildLinkNode(isImage, label, offset+start, offset+end)
	if found {
		node.URL = def.URL
		node.Title = def.Title
	} else {
		node.Unresolved = true
	}
	return node, end, true
}

func buildLinkNode(isImage bool, label string, start, end int) *ast.Node {
	kind := ast.Link
	if isImage {
		kind = ast.Image
	}
	n := ast.NewNode(kind, span.Span{Start: start, End: end})
	if isImage {
		n.Alt = label
	} else {
		n.Children = []*ast.Node{textNode(label, start, end)}
	}
	return n
}

// matchBracket finds the ']' matching the '[' at raw[open], honoring
// "\]" escapes and refusing to cross a newline.
func matchBracket(raw []byte, open int) (int, bool) {
	depth := 0
	for k := open; k < len(raw); k++ {
		switch raw[k] {
		case '\\':
			k++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return k, true
			}
		case '\n':
			return 0, false
		}
	}
	return 0, false
}

// matchInlineDest parses "(url \"title\")" or "(url)" starting at the '('.
func matchInlineDest(raw []byte, open int) (url, title string, end int, ok bool) {
	k := open + 1
	for k < len(raw) && raw[k] == ' ' {
		k++
	}
	urlStart := k
	if k < len(raw) && raw[k] == '<' {
		close := strings.IndexByte(string(raw[k:]), '>')
		if close < 0 {
			return "", "", 0, false
		}
		url = string(raw[k+1 : k+close])
		k += close + 1
	} else {
		for k < len(raw) && raw[k] != ' ' && raw[k] != ')' && raw[k] != '\n' {
			k++
		}
		url = string(raw[urlStart:k])
	}
	for k < len(raw) && raw[k] == ' ' {
		k++
	}
	if k < len(raw) && (raw[k] == '"' || raw[k] == '\'') {
		quote := raw[k]
		k++
		titleStart := k
		for k < len(raw) && raw[k] != quote {
			k++
		}
		if k >= len(raw) {
			return "", "", 0, false
		}
		title = string(raw[titleStart:k])
		k++
		for k < len(raw) && raw[k] == ' ' {
			k++
		}
	}
	if k >= len(raw) || raw[k] != ')' {
		return "", "", 0, false
	}
	return url, title, k + 1, true
}
