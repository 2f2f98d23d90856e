package alkahest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	w := NewWriter(buf)
	require.NoError(t, WriteRef(w, uint32(99), WriteU32))
	n := w.Finish()
	require.Equal(t, AddressWidth+4, n) // AddressWidth inline offset + 4-byte u32 payload

	r := NewReader(buf[:n])
	v, err := ReadRef(r, ReadU32)
	require.NoError(t, err)
	require.Equal(t, uint32(99), v)
}

func TestRefStructPayloadRoundTrip(t *testing.T) {
	// A struct payload behind Ref, written and read at the catalogue
	// level with WriteRef/ReadRef rather than through Record.
	type leaf struct {
		Val uint32
	}

	buf := make([]byte, 64)
	w := NewWriter(buf)
	require.NoError(t, WriteRef(w, leaf{Val: 7}, func(w *Writer, v leaf) error {
		return WriteU32(w, v.Val)
	}))
	n := w.Finish()

	r := NewReader(buf[:n])
	got, err := ReadRef(r, func(r *Reader) (leaf, error) {
		v, err := ReadU32(r)
		return leaf{Val: v}, err
	})
	require.NoError(t, err)
	require.Equal(t, leaf{Val: 7}, got)
}

func TestLazyDefersDecodeUntilGet(t *testing.T) {
	buf := make([]byte, 16)
	w := NewWriter(buf)
	require.NoError(t, WriteLazy(w, uint32(123), WriteU32))
	n := w.Finish()

	r := NewReader(buf[:n])
	lazy, err := ReadLazy(r, 4, ReadU32)
	require.NoError(t, err)
	v, err := lazy.Get()
	require.NoError(t, err)
	require.Equal(t, uint32(123), v)
}

func TestSkipAdvancesWithoutDecoding(t *testing.T) {
	buf := make([]byte, 64)
	w := NewWriter(buf)
	require.NoError(t, WriteU32(w, 1))
	require.NoError(t, WriteBytes(w, []byte("skip me")))
	require.NoError(t, WriteU32(w, 2))
	n := w.Finish()

	r := NewReader(buf[:n])
	v1, err := ReadU32(r)
	require.NoError(t, err)
	require.Equal(t, uint32(1), v1)

	require.NoError(t, SkipRefPair(r))

	v2, err := ReadU32(r)
	require.NoError(t, err)
	require.Equal(t, uint32(2), v2)
}
