// Package encode implements the two output forms spec §4.7/§4.8 describe: a
// fixed-width binary DAST codec with an interned string table, and a
// textual encoder with compact and pretty forms. Encoding walks the tree
// depth-first and writes into a growing byte buffer the way
// internal/scanio.ByteArena accumulates written bytes and hands out range
// tokens, generalized here from byte ranges to a recursive node encoding.
package encode

import (
	"encoding/binary"

	"github.com/glagolica/bukvar/ast"
	"github.com/glagolica/bukvar/bkerr"
	"github.com/glagolica/bukvar/intern"
	"github.com/glagolica/bukvar/span"
)

var magic = [4]byte{'D', 'A', 'S', 'T'}

const version uint16 = 1

// Flag bits (spec §4.7's Flags u16).
const (
	FlagHasSourceMap uint16 = 1 << 0
)

// EncodeBinary serializes doc into the DAST wire format. flags controls the
// bit0 has-source-map behavior: when unset, per-node spans are omitted from
// the stream (matching spec §4.7's "absent if flags.no-spans").
func EncodeBinary(doc *ast.Node, flags uint16) []byte {
	tbl := intern.NewTable()
	internTree(doc, tbl)

	var buf []byte
	buf = append(buf, magic[:]...)
	buf = appendU16(buf, version)
	buf = appendU16(buf, flags)
	buf = appendStringTable(buf, tbl)
	buf = appendNode(buf, doc, tbl, flags)
	return buf
}

// DecodeBinary parses a DAST byte stream back into a Node tree.
func DecodeBinary(data []byte) (*ast.Node, error) {
	d := &decoder{buf: data}
	if err := d.readMagic(); err != nil {
		return nil, err
	}
	v, err := d.readU16()
	if err != nil {
		return nil, err
	}
	if v != version {
		return nil, &bkerr.CodecError{Offset: d.off, Msg: "unsupported version"}
	}
	flags, err := d.readU16()
	if err != nil {
		return nil, err
	}
	strs, err := d.readStringTable()
	if err != nil {
		return nil, err
	}
	d.tbl = intern.FromStrings(strs)
	return d.readNode(flags)
}

// internTree walks doc in the same pre-order Walk uses, interning every
// string-valued field it carries (attr keys/values and kind-specific
// payload strings) so the StringTable's insertion order matches the order
// the tree walk will later reference ids in.
func internTree(n *ast.Node, tbl *intern.Table) {
	if n == nil {
		return
	}
	for _, a := range n.Attrs {
		tbl.Intern(a.Key)
		if a.Value.Kind == ast.AttrString {
			tbl.Intern(a.Value.Str)
		}
	}
	internPayloadStrings(n, tbl)
	for _, c := range n.Children {
		internTree(c, tbl)
	}
}

func internPayloadStrings(n *ast.Node, tbl *intern.Table) {
	switch n.Kind {
	case ast.Document:
		if n.Frontmatter != nil {
			tbl.Intern(n.Frontmatter.Format)
			for _, kv := range n.Frontmatter.Pairs {
				tbl.Intern(kv.Key)
				tbl.Intern(kv.Value)
			}
		}
	case ast.Heading:
		tbl.Intern(n.ID)
	case ast.BlockQuote:
		tbl.Intern(n.AlertKind)
	case ast.CodeBlock:
		tbl.Intern(n.Lang)
		tbl.Intern(n.Content)
	case ast.HtmlBlock, ast.RawHtml:
		tbl.Intern(n.Raw)
	case ast.FootnoteDef, ast.FootnoteRef:
		tbl.Intern(n.Label)
	case ast.MathBlock, ast.MathInline:
		tbl.Intern(n.TeX)
	case ast.Container:
		tbl.Intern(n.ContainerKind)
		tbl.Intern(n.ContainerName)
	case ast.Text, ast.Code, ast.Autolink:
		tbl.Intern(n.Literal)
	case ast.Link, ast.Image:
		tbl.Intern(n.URL)
		tbl.Intern(n.Title)
		tbl.Intern(n.Alt)
	case ast.DocTag:
		tbl.Intern(n.TagName)
		tbl.Intern(n.TagType)
		tbl.Intern(n.TagIdent)
	}
}

func appendU16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func appendStringTable(buf []byte, tbl *intern.Table) []byte {
	strs := tbl.Strings()[1:] // skip the reserved zero slot
	buf = appendU32(buf, uint32(len(strs)))
	for _, s := range strs {
		buf = appendU32(buf, uint32(len(s)))
		buf = append(buf, s...)
	}
	return buf
}

func appendNode(buf []byte, n *ast.Node, tbl *intern.Table, flags uint16) []byte {
	buf = append(buf, byte(n.Kind))
	if flags&FlagHasSourceMap != 0 {
		buf = appendU32(buf, uint32(n.Span.Start))
		buf = appendU32(buf, uint32(n.Span.End))
	}
	buf = appendU16(buf, uint16(len(n.Attrs)))
	for _, a := range n.Attrs {
		buf = appendU32(buf, uint32(tbl.Intern(a.Key)))
		buf = appendAttrVal(buf, a.Value, tbl)
	}
	buf = appendPayload(buf, n, tbl)
	buf = appendU32(buf, uint32(len(n.Children)))
	for _, c := range n.Children {
		buf = appendNode(buf, c, tbl, flags)
	}
	return buf
}

func appendAttrVal(buf []byte, v ast.AttrValue, tbl *intern.Table) []byte {
	buf = append(buf, byte(v.Kind))
	switch v.Kind {
	case ast.AttrString:
		buf = appendU32(buf, uint32(tbl.Intern(v.Str)))
	case ast.AttrInt:
		buf = appendU64(buf, uint64(v.Int))
	case ast.AttrBool:
		b := byte(0)
		if v.Bool {
			b = 1
		}
		buf = append(buf, b)
	case ast.AttrRangeList:
		buf = appendRangeList(buf, v.Ranges)
	}
	return buf
}

func appendRangeList(buf []byte, rs []ast.Range) []byte {
	buf = appendU16(buf, uint16(len(rs)))
	for _, r := range rs {
		buf = appendU32(buf, uint32(r.Start))
		buf = appendU32(buf, uint32(r.End))
	}
	return buf
}

func appendStr(buf []byte, s string, tbl *intern.Table) []byte {
	return appendU32(buf, uint32(tbl.Intern(s)))
}

func appendBool(buf []byte, b bool) []byte {
	v := byte(0)
	if b {
		v = 1
	}
	return append(buf, v)
}

// appendPayload writes the kind-specific fields spec §4.7 calls for after
// attrs and before children. Kinds without extra fields write nothing.
func appendPayload(buf []byte, n *ast.Node, tbl *intern.Table) []byte {
	switch n.Kind {
	case ast.Document:
		if n.Frontmatter == nil {
			buf = append(buf, 0)
			break
		}
		buf = append(buf, 1)
		buf = appendStr(buf, n.Frontmatter.Format, tbl)
		buf = appendU16(buf, uint16(len(n.Frontmatter.Pairs)))
		for _, kv := range n.Frontmatter.Pairs {
			buf = appendStr(buf, kv.Key, tbl)
			buf = appendStr(buf, kv.Value, tbl)
		}
	case ast.Heading:
		buf = append(buf, byte(n.Level))
		buf = appendStr(buf, n.ID, tbl)
	case ast.Paragraph:
		buf = appendBool(buf, n.Tight)
	case ast.BlockQuote:
		buf = appendBool(buf, n.IsAlert)
		buf = appendStr(buf, n.AlertKind, tbl)
	case ast.List:
		buf = appendBool(buf, n.Ordered)
		buf = appendU32(buf, uint32(n.StartIndex))
	case ast.ListItem:
		buf = append(buf, byte(n.Task))
	case ast.Table:
		buf = appendU16(buf, uint16(len(n.ColumnAlign)))
		for _, a := range n.ColumnAlign {
			buf = append(buf, byte(a))
		}
	case ast.TableRow:
		buf = appendBool(buf, n.HeaderRow)
	case ast.TableCell:
		align := ast.AlignNone
		if len(n.ColumnAlign) > 0 {
			align = n.ColumnAlign[0]
		}
		buf = append(buf, byte(align))
		buf = appendStr(buf, n.Literal, tbl)
	case ast.CodeBlock:
		buf = appendStr(buf, n.Lang, tbl)
		buf = appendStr(buf, n.Content, tbl)
		buf = appendRangeList(buf, n.Highlight)
		buf = appendRangeList(buf, n.PlusDiff)
		buf = appendRangeList(buf, n.MinusDiff)
		buf = appendBool(buf, n.LineNumbers)
	case ast.HtmlBlock, ast.RawHtml:
		buf = appendStr(buf, n.Raw, tbl)
	case ast.FootnoteDef, ast.FootnoteRef:
		buf = appendStr(buf, n.Label, tbl)
	case ast.MathBlock, ast.MathInline:
		buf = appendStr(buf, n.TeX, tbl)
	case ast.Container:
		buf = appendStr(buf, n.ContainerKind, tbl)
		buf = appendStr(buf, n.ContainerName, tbl)
	case ast.Text, ast.Code, ast.Autolink:
		buf = appendStr(buf, n.Literal, tbl)
	case ast.Link, ast.Image:
		buf = appendStr(buf, n.URL, tbl)
		buf = appendStr(buf, n.Title, tbl)
		buf = appendStr(buf, n.Alt, tbl)
		buf = appendBool(buf, n.Unresolved)
	case ast.DocTag:
		buf = appendStr(buf, n.TagName, tbl)
		buf = appendStr(buf, n.TagType, tbl)
		buf = appendStr(buf, n.TagIdent, tbl)
	}
	return buf
}

// decoder reads a DAST byte stream sequentially, tracking its offset for
// CodecError reporting.
type decoder struct {
	buf []byte
	off int
	tbl *intern.Table
}

func (d *decoder) need(n int) error {
	if d.off+n > len(d.buf) {
		return &bkerr.CodecError{Offset: d.off, Msg: "truncated stream"}
	}
	return nil
}

func (d *decoder) readMagic() error {
	if err := d.need(4); err != nil {
		return err
	}
	if string(d.buf[d.off:d.off+4]) != string(magic[:]) {
		return &bkerr.CodecError{Offset: d.off, Msg: "bad magic"}
	}
	d.off += 4
	return nil
}

func (d *decoder) readU16() (uint16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(d.buf[d.off:])
	d.off += 2
	return v, nil
}

func (d *decoder) readU32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.buf[d.off:])
	d.off += 4
	return v, nil
}

func (d *decoder) readU64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(d.buf[d.off:])
	d.off += 8
	return v, nil
}

func (d *decoder) readByte() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	b := d.buf[d.off]
	d.off++
	return b, nil
}

func (d *decoder) readBool() (bool, error) {
	b, err := d.readByte()
	return b != 0, err
}

func (d *decoder) readStringTable() ([]string, error) {
	count, err := d.readU32()
	if err != nil {
		return nil, err
	}
	strs := make([]string, 1, count+1)
	strs[0] = ""
	for i := uint32(0); i < count; i++ {
		n, err := d.readU32()
		if err != nil {
			return nil, err
		}
		if err := d.need(int(n)); err != nil {
			return nil, err
		}
		strs = append(strs, string(d.buf[d.off:d.off+int(n)]))
		d.off += int(n)
	}
	return strs, nil
}

func (d *decoder) readStr() (string, error) {
	id, err := d.readU32()
	if err != nil {
		return "", err
	}
	s, ok := d.tbl.Lookup(intern.ID(id))
	if !ok && id != 0 {
		return "", &bkerr.CodecError{Offset: d.off, Msg: "invalid string id"}
	}
	return s, nil
}

func (d *decoder) readRangeList() ([]ast.Range, error) {
	count, err := d.readU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]ast.Range, count)
	for i := range out {
		start, err := d.readU32()
		if err != nil {
			return nil, err
		}
		end, err := d.readU32()
		if err != nil {
			return nil, err
		}
		out[i] = ast.Range{Start: int(start), End: int(end)}
	}
	return out, nil
}

func (d *decoder) readAttrVal() (ast.AttrValue, error) {
	kind, err := d.readByte()
	if err != nil {
		return ast.AttrValue{}, err
	}
	switch ast.AttrKind(kind) {
	case ast.AttrString:
		s, err := d.readStr()
		return ast.StringAttr(s), err
	case ast.AttrInt:
		v, err := d.readU64()
		return ast.IntAttr(int64(v)), err
	case ast.AttrBool:
		b, err := d.readBool()
		return ast.BoolAttr(b), err
	case ast.AttrRangeList:
		rs, err := d.readRangeList()
		return ast.RangeListAttr(rs), err
	default:
		return ast.AttrValue{}, &bkerr.CodecError{Offset: d.off, Msg: "unknown attr kind"}
	}
}

func (d *decoder) readNode(flags uint16) (*ast.Node, error) {
	kindByte, err := d.readByte()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Kind(kindByte), span.Span{})
	if flags&FlagHasSourceMap != 0 {
		start, err := d.readU32()
		if err != nil {
			return nil, err
		}
		end, err := d.readU32()
		if err != nil {
			return nil, err
		}
		n.Span = span.Span{Start: int(start), End: int(end)}
	}
	attrCount, err := d.readU16()
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < attrCount; i++ {
		keyID, err := d.readU32()
		if err != nil {
			return nil, err
		}
		key, ok := d.tbl.Lookup(intern.ID(keyID))
		if !ok && keyID != 0 {
			return nil, &bkerr.CodecError{Offset: d.off, Msg: "invalid attr key id"}
		}
		val, err := d.readAttrVal()
		if err != nil {
			return nil, err
		}
		n.Attrs = append(n.Attrs, ast.Attr{Key: key, Value: val})
	}
	if err := d.readPayload(n); err != nil {
		return nil, err
	}
	childCount, err := d.readU32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < childCount; i++ {
		c, err := d.readNode(flags)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}

func (d *decoder) readPayload(n *ast.Node) error {
	var err error
	switch n.Kind {
	case ast.Document:
		has, e := d.readByte()
		if e != nil {
			return e
		}
		if has == 0 {
			return nil
		}
		format, e := d.readStr()
		if e != nil {
			return e
		}
		count, e := d.readU16()
		if e != nil {
			return e
		}
		fm := &ast.Frontmatter{Format: format}
		for i := uint16(0); i < count; i++ {
			k, e := d.readStr()
			if e != nil {
				return e
			}
			v, e := d.readStr()
			if e != nil {
				return e
			}
			fm.Pairs = append(fm.Pairs, ast.KV{Key: k, Value: v})
		}
		n.Frontmatter = fm
	case ast.Heading:
		lvl, e := d.readByte()
		if e != nil {
			return e
		}
		n.Level = int(lvl)
		n.ID, err = d.readStr()
	case ast.Paragraph:
		n.Tight, err = d.readBool()
	case ast.BlockQuote:
		if n.IsAlert, err = d.readBool(); err != nil {
			return err
		}
		n.AlertKind, err = d.readStr()
	case ast.List:
		if n.Ordered, err = d.readBool(); err != nil {
			return err
		}
		v, e := d.readU32()
		if e != nil {
			return e
		}
		n.StartIndex = int(v)
	case ast.ListItem:
		b, e := d.readByte()
		if e != nil {
			return e
		}
		n.Task = ast.TaskState(b)
	case ast.Table:
		count, e := d.readU16()
		if e != nil {
			return e
		}
		aligns := make([]ast.Align, count)
		for i := range aligns {
			b, e := d.readByte()
			if e != nil {
				return e
			}
			aligns[i] = ast.Align(b)
		}
		n.ColumnAlign = aligns
	case ast.TableRow:
		n.HeaderRow, err = d.readBool()
	case ast.TableCell:
		b, e := d.readByte()
		if e != nil {
			return e
		}
		n.ColumnAlign = []ast.Align{ast.Align(b)}
		n.Literal, err = d.readStr()
	case ast.CodeBlock:
		if n.Lang, err = d.readStr(); err != nil {
			return err
		}
		if n.Content, err = d.readStr(); err != nil {
			return err
		}
		if n.Highlight, err = d.readRangeList(); err != nil {
			return err
		}
		if n.PlusDiff, err = d.readRangeList(); err != nil {
			return err
		}
		if n.MinusDiff, err = d.readRangeList(); err != nil {
			return err
		}
		n.LineNumbers, err = d.readBool()
	case ast.HtmlBlock, ast.RawHtml:
		n.Raw, err = d.readStr()
	case ast.FootnoteDef, ast.FootnoteRef:
		n.Label, err = d.readStr()
	case ast.MathBlock, ast.MathInline:
		n.TeX, err = d.readStr()
	case ast.Container:
		if n.ContainerKind, err = d.readStr(); err != nil {
			return err
		}
		n.ContainerName, err = d.readStr()
	case ast.Text, ast.Code, ast.Autolink:
		n.Literal, err = d.readStr()
	case ast.Link, ast.Image:
		if n.URL, err = d.readStr(); err != nil {
			return err
		}
		if n.Title, err = d.readStr(); err != nil {
			return err
		}
		if n.Alt, err = d.readStr(); err != nil {
			return err
		}
		n.Unresolved, err = d.readBool()
	case ast.DocTag:
		if n.TagName, err = d.readStr(); err != nil {
			return err
		}
		if n.TagType, err = d.readStr(); err != nil {
			return err
		}
		n.TagIdent, err = d.readStr()
	}
	return err
}
