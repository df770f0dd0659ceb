package scan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadLineVariants(t *testing.T) {
	s := New([]byte("one\r\ntwo\nthree\rfour"))

	l1 := s.ReadLine()
	require.Equal(t, "one\r\n", string(l1))

	l2 := s.ReadLine()
	require.Equal(t, "two\n", string(l2))

	l3 := s.ReadLine()
	require.Equal(t, "three\r", string(l3))

	l4 := s.ReadLine()
	require.Equal(t, "four", string(l4))
	require.True(t, s.AtEOF())
}

func TestPositionAdvancesAcrossLines(t *testing.T) {
	s := New([]byte("ab\ncd"))
	s.Advance(1)
	line, col := s.Position()
	require.Equal(t, 1, line)
	require.Equal(t, 2, col)

	s.Advance(2) // crosses the newline
	line, col = s.Position()
	require.Equal(t, 2, line)
	require.Equal(t, 1, col)
}

func TestBOL(t *testing.T) {
	s := New([]byte("ab\ncd"))
	require.True(t, s.BOL())
	s.Advance(1)
	require.False(t, s.BOL())
	s.Advance(2)
	require.True(t, s.BOL())
}

func TestPeekAndPeekSlice(t *testing.T) {
	s := New([]byte("abcdef"))
	b, ok := s.Peek(2)
	require.True(t, ok)
	require.Equal(t, byte('c'), b)

	_, ok = s.Peek(100)
	require.False(t, ok)

	require.Equal(t, "abc", string(s.PeekSlice(3)))
	require.Equal(t, "abcdef", string(s.PeekSlice(100)))
}

func TestTextReplacesMalformedUTF8(t *testing.T) {
	require.Equal(t, "hi", Text([]byte("hi")))

	bad := []byte{'a', 0xff, 'b'}
	got := Text(bad)
	require.Equal(t, "a�b", got)
}
