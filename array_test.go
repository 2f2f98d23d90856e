package alkahest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	w := NewWriter(buf)
	vals := []uint32{1, 2, 3, 4}
	require.NoError(t, WriteArray(w, vals, WriteU32))
	n := w.Finish()
	require.Equal(t, 16, n)

	r := NewReader(buf[:n])
	got, err := ReadArray(r, 4, ReadU32)
	require.NoError(t, err)
	require.Equal(t, vals, got)
}

func TestArrayFormulaStackSize(t *testing.T) {
	f := NewArrayFormula(FormulaU32, 4)
	require.Equal(t, 16, f.StackSize())
	size, bounded := f.MaxStackSize()
	require.True(t, bounded)
	require.Equal(t, 16, size)
}
