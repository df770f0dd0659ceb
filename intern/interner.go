// Package intern implements an append-only string interning table, used by
// the binary DAST codec to deduplicate repeated strings (tags, urls, text
// content, attribute keys). The block and inline parsers do not use it.
//
// A Table is per-document: it is built fresh for each encoding session and
// never shared across documents, mirroring scandown's per-stream
// ByteArena (internal/scanio/arena.go) generalized from raw byte ranges to
// deduplicated strings.
package intern

// ID identifies a string within a Table. The zero ID is reserved and never
// returned by Intern; callers that want an explicit "no string" sentinel
// can use ID(0).
type ID uint32

// Table is an insertion-ordered, deduplicating string table. Two Tables built
// by interning the same strings in the same order produce identical ID
// assignments, which is what lets the binary codec's StringTable section be
// byte-identical across runs over the same input (spec §5 "Ordering
// guarantees").
type Table struct {
	strs []string
	ids  map[string]ID
}

// NewTable returns an empty Table. The reserved zero ID is pre-consumed so
// that Intern never returns it.
func NewTable() *Table {
	t := &Table{
		strs: make([]string, 1, 64), // index 0 is the reserved/unused slot
		ids:  make(map[string]ID, 64),
	}
	return t
}

// Intern returns the ID for s, assigning a new one in first-encounter order
// if s has not been seen before.
func (t *Table) Intern(s string) ID {
	if id, ok := t.ids[s]; ok {
		return id
	}
	id := ID(len(t.strs))
	t.strs = append(t.strs, s)
	t.ids[s] = id
	return id
}

// Lookup returns the interned string for id and whether id is valid.
func (t *Table) Lookup(id ID) (string, bool) {
	if int(id) <= 0 || int(id) >= len(t.strs) {
		return "", false
	}
	return t.strs[id], true
}

// Len returns how many strings (excluding the reserved zero slot) have been
// interned.
func (t *Table) Len() int { return len(t.strs) - 1 }

// Strings returns the interned strings in insertion (id) order, including
// the reserved empty slot at index 0. The returned slice must not be
// mutated by callers.
func (t *Table) Strings() []string { return t.strs }

// FromStrings rebuilds a Table from a StringTable read off the wire (binary
// codec decode path). strs[0] is expected to be the reserved slot, matching
// what Strings returns.
func FromStrings(strs []string) *Table {
	t := &Table{
		strs: append([]string(nil), strs...),
		ids:  make(map[string]ID, len(strs)),
	}
	if len(t.strs) == 0 {
		t.strs = append(t.strs, "")
	}
	for i, s := range t.strs {
		if i == 0 {
			continue
		}
		if _, ok := t.ids[s]; !ok {
			t.ids[s] = ID(i)
		}
	}
	return t
}
