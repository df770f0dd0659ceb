package span

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpanContainsUnion(t *testing.T) {
	outer := Span{Start: 0, End: 10}
	inner := Span{Start: 2, End: 5}
	require.True(t, outer.Contains(inner))
	require.False(t, inner.Contains(outer))

	union := inner.Union(Span{Start: 8, End: 20})
	require.Equal(t, Span{Start: 2, End: 20}, union)
}

func TestSpanLenEmpty(t *testing.T) {
	require.Equal(t, 5, Span{Start: 3, End: 8}.Len())
	require.True(t, Span{Start: 3, End: 3}.Empty())
	require.False(t, Span{Start: 3, End: 4}.Empty())
}

func TestTrackerPosition(t *testing.T) {
	src := []byte("abc\ndef\nghi")
	tr := NewTracker(src)

	cases := []struct {
		offset int
		want   Position
	}{
		{0, Position{1, 1}},
		{2, Position{1, 3}},
		{4, Position{2, 1}},
		{7, Position{2, 4}},
		{8, Position{3, 1}},
		{10, Position{3, 3}},
	}
	for _, c := range cases {
		require.Equal(t, c.want, tr.Position(c.offset), "offset %d", c.offset)
	}
}
