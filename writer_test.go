package alkahest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterBufferTooSmall(t *testing.T) {
	w := NewWriter(make([]byte, 2))
	err := WriteU32(w, 1)
	require.Error(t, err)
	var bts *BufferTooSmallError
	require.ErrorAs(t, err, &bts)
}

func TestToHeapGrowsFromTail(t *testing.T) {
	buf := make([]byte, 32)
	w := NewWriter(buf)
	require.NoError(t, WriteBytes(w, []byte("hello")))
	n := w.Finish()
	require.LessOrEqual(t, n, len(buf))

	r := NewReader(buf[:n])
	got, err := ReadBytes(r)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestFinishCompactsOversizedBuffer(t *testing.T) {
	// A destination buffer much larger than the value's final size must
	// still produce a contiguous, minimally-sized valid prefix.
	buf := make([]byte, 4096)
	w := NewWriter(buf)
	require.NoError(t, WriteU32(w, 7))
	require.NoError(t, WriteBytes(w, []byte("zzz")))
	n := w.Finish()
	require.Equal(t, 4+2*AddressWidth+3, n)

	r := NewReader(buf[:n])
	v, err := ReadU32(r)
	require.NoError(t, err)
	require.Equal(t, uint32(7), v)
	b, err := ReadBytes(r)
	require.NoError(t, err)
	require.Equal(t, []byte("zzz"), b)
}

func TestSerializedSizeMatchesActualWrite(t *testing.T) {
	type S struct {
		A uint32
		B []byte
	}
	v := S{A: 9, B: []byte("payload")}
	sizes, err := SerializedSize(v)
	require.NoError(t, err)

	buf := make([]byte, sizes.Total())
	n, err := SerializeInto(buf, v)
	require.NoError(t, err)
	require.Equal(t, sizes.Total(), n)
}

func TestTailOffsetCorruptedByAppendingBytes(t *testing.T) {
	// Spec invariant: offsets are tail-relative, so appending bytes after
	// a valid encoding shifts every heap reference within it off target
	// — the decode either fails outright or silently recovers the wrong
	// bytes, but it never recovers the original value.
	type S struct {
		Name string
	}
	buf, err := SerializeToVec(S{Name: "alkahest"})
	require.NoError(t, err)

	corrupted := append(append([]byte{}, buf...), 0)
	got, err := Deserialize[S](corrupted)
	if err == nil {
		require.NotEqual(t, "alkahest", got.Name)
	}
}

func TestTailOffsetCorruptedByPrependingBytes(t *testing.T) {
	type S struct {
		Name string
	}
	buf, err := SerializeToVec(S{Name: "alkahest"})
	require.NoError(t, err)

	corrupted := append([]byte{0}, buf...)
	got, err := Deserialize[S](corrupted)
	if err == nil {
		require.NotEqual(t, "alkahest", got.Name)
	}
}
