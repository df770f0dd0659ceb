package streamdriver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineReaderYieldsCompleteLines(t *testing.T) {
	lr := NewLineReader(strings.NewReader("one\ntwo\nthree"), 64)

	var lines []string
	for {
		line, ok, err := lr.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		lines = append(lines, string(line))
	}
	require.Equal(t, []string{"one\n", "two\n", "three"}, lines)
}

func TestReadAllReconstitutesSource(t *testing.T) {
	src := "# Title\n\nBody text.\n"
	out, err := ReadAll(strings.NewReader(src), 64)
	require.NoError(t, err)
	require.Equal(t, src, string(out))
}

func TestLineReaderBoundedBufferErrorsOnOverlongLine(t *testing.T) {
	huge := strings.Repeat("x", 1000)
	lr := NewLineReader(strings.NewReader(huge+"\n"), 16)
	_, _, err := lr.Next()
	require.Error(t, err)
}

func TestReadAllEmptyInput(t *testing.T) {
	out, err := ReadAll(strings.NewReader(""), 64)
	require.NoError(t, err)
	require.Empty(t, out)
}
