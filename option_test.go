package alkahest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionPresentAndAbsentSameFootprint(t *testing.T) {
	const elemSize = 4

	writeSome := func(w *Writer, v uint32) error { return WriteU32(w, v) }
	readSome := func(r *Reader) (uint32, error) { return ReadU32(r) }

	bufPresent := make([]byte, 1+elemSize)
	wp := NewWriter(bufPresent)
	v := uint32(42)
	require.NoError(t, WriteOption(wp, &v, elemSize, writeSome))
	np := wp.Finish()

	bufAbsent := make([]byte, 1+elemSize)
	wa := NewWriter(bufAbsent)
	require.NoError(t, WriteOption[uint32](wa, nil, elemSize, writeSome))
	na := wa.Finish()

	require.Equal(t, np, na)

	rp := NewReader(bufPresent[:np])
	gotPresent, err := ReadOption(rp, elemSize, readSome)
	require.NoError(t, err)
	require.NotNil(t, gotPresent)
	require.Equal(t, uint32(42), *gotPresent)

	ra := NewReader(bufAbsent[:na])
	gotAbsent, err := ReadOption(ra, elemSize, readSome)
	require.NoError(t, err)
	require.Nil(t, gotAbsent)
}
