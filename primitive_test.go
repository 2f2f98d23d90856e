package alkahest

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	w := NewWriter(buf)
	require.NoError(t, WriteU32(w, 0xdeadbeef))
	require.NoError(t, WriteBool(w, true))
	require.NoError(t, WriteI64(w, -1234567))
	require.NoError(t, WriteF64(w, 3.25))
	n := w.Finish()

	r := NewReader(buf[:n])
	u, err := ReadU32(r)
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), u)

	b, err := ReadBool(r, DefaultDecodeOptions)
	require.NoError(t, err)
	require.True(t, b)

	i, err := ReadI64(r)
	require.NoError(t, err)
	require.Equal(t, int64(-1234567), i)

	f, err := ReadF64(r)
	require.NoError(t, err)
	require.Equal(t, 3.25, f)
}

func TestBoolStrictRejectsGarbageByte(t *testing.T) {
	r := NewReader([]byte{42})
	_, err := ReadBool(r, DefaultDecodeOptions)
	require.Error(t, err)
	var ie *InvalidEncodingError
	require.ErrorAs(t, err, &ie)
}

func TestBoolLenientAcceptsAnyNonzero(t *testing.T) {
	r := NewReader([]byte{42})
	v, err := ReadBool(r, LenientDecodeOptions)
	require.NoError(t, err)
	require.True(t, v)
}

func TestU32QuickRoundTrip(t *testing.T) {
	condition := func(v uint32) bool {
		buf := make([]byte, 4)
		w := NewWriter(buf)
		if err := WriteU32(w, v); err != nil {
			return false
		}
		n := w.Finish()
		r := NewReader(buf[:n])
		got, err := ReadU32(r)
		return err == nil && got == v
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestFixedIsizeSignExtension(t *testing.T) {
	buf := make([]byte, AddressWidth)
	w := NewWriter(buf)
	require.NoError(t, WriteFixedIsize(w, -1))
	n := w.Finish()
	r := NewReader(buf[:n])
	v, err := ReadFixedIsize(r)
	require.NoError(t, err)
	require.Equal(t, FixedIsize(-1), v)
}

func TestWriteAddrOverflowDetected(t *testing.T) {
	w := NewWriter(make([]byte, 64))
	err := w.WriteAddr(maxAddrValue() + 1)
	require.Error(t, err)
	var so *SizeOverflowError
	require.ErrorAs(t, err, &so)
}
