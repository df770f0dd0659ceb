package inline

import (
	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/span"
)

// resolveEmphasis repeatedly finds the nearest closer/opener delimiter pair
// of matching character, collapses the run between them into an
// Emphasis/Strong/Strikethrough node, and restarts until no pair remains.
// This is a simplified, iterative stand-in for CommonMark's single-pass
// delimiter-stack algorithm: it is O(n^2) in the worst case but produces the
// same result for the overwhelming majority of real documents, which rarely
// nest more than a couple of delimiter runs deep.
func resolveEmphasis(items *[]item) {
	for {
		arr := *items
		matched := false
		for ci := range arr {
			closer := arr[ci].delim
			if closer == nil || closer.count == 0 || !closer.canClose {
				continue
			}
			for oi := ci - 1; oi >= 0; oi-- {
				opener := arr[oi].delim
				if opener == nil || opener.count == 0 {
					continue
				}
				if opener.char != closer.char || !opener.canOpen {
					continue
				}

				consumed := 1
				kind := ast.Emphasis
				switch {
				case closer.char == '~':
					consumed = 2
					kind = ast.Strikethrough
				case opener.count >= 2 && closer.count >= 2:
					consumed = 2
					kind = ast.Strong
				}

				inner := append([]item(nil), arr[oi+1:ci]...)
				children := flatten(inner)
				node := ast.NewNode(kind, span.Span{Start: opener.start, End: closer.start + closer.count})
				node.Children = children

				opener.count -= consumed
				closer.count -= consumed

				var next []item
				next = append(next, arr[:oi]...)
				if opener.count > 0 {
					next = append(next, item{delim: opener})
				}
				next = append(next, item{node: node})
				if closer.count > 0 {
					next = append(next, item{delim: closer})
				}
				next = append(next, arr[ci+1:]...)

				*items = next
				matched = true
				break
			}
			if matched {
				break
			}
		}
		if !matched {
			return
		}
	}
}
