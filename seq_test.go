package alkahest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeqSliceRoundTripAndRandomAccess(t *testing.T) {
	vals := []uint16{10, 20, 30}
	buf := make([]byte, 64)
	w := NewWriter(buf)
	require.NoError(t, WriteSeqSlice(w, vals, WriteU16))
	n := w.Finish()

	r := NewReader(buf[:n])
	cursor, err := ReadSeq(r, 2, ReadU16)
	require.NoError(t, err)
	require.Equal(t, 3, cursor.Len())

	// Random access does not require decoding in order.
	third, err := cursor.At(2)
	require.NoError(t, err)
	require.Equal(t, uint16(30), third)

	first, err := cursor.At(0)
	require.NoError(t, err)
	require.Equal(t, uint16(10), first)

	all, err := cursor.All()
	require.NoError(t, err)
	require.Equal(t, vals, all)
}

func TestSeqCursorSkipAndSkipBack(t *testing.T) {
	vals := []uint16{1, 2, 3, 4, 5}
	buf := make([]byte, 64)
	w := NewWriter(buf)
	require.NoError(t, WriteSeqSlice(w, vals, WriteU16))
	n := w.Finish()

	r := NewReader(buf[:n])
	cursor, err := ReadSeq(r, 2, ReadU16)
	require.NoError(t, err)

	tail := cursor.Skip(2)
	all, err := tail.All()
	require.NoError(t, err)
	require.Equal(t, []uint16{3, 4, 5}, all)

	head := cursor.SkipBack(2)
	all, err = head.All()
	require.NoError(t, err)
	require.Equal(t, []uint16{1, 2, 3}, all)
}

func TestSeqIteratorSourcedCountUnknownUpFront(t *testing.T) {
	produce := func(yield func(uint32) bool) {
		for i := uint32(0); i < 4; i++ {
			if !yield(i * i) {
				return
			}
		}
	}
	buf := make([]byte, 64)
	w := NewWriter(buf)
	require.NoError(t, WriteSeq(w, produce, WriteU32))
	n := w.Finish()

	r := NewReader(buf[:n])
	cursor, err := ReadSeq(r, 4, ReadU32)
	require.NoError(t, err)
	all, err := cursor.All()
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 4, 9}, all)
}
