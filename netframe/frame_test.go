package netframe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte("an opaque alkahest buffer")
	frame := Encode(payload)
	got, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestDecodeRejectsCorruptedPayload(t *testing.T) {
	frame := Encode([]byte("hello"))
	frame[headerLen] ^= 0xff
	_, err := Decode(frame)
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestWriteReadFrom(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("stream framed payload")
	_, err := WriteTo(&buf, payload)
	require.NoError(t, err)

	got, err := ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}
