package cbor

import (
	"testing"

	"github.com/stretchr/testify/require"

	alkahest "github.com/alkahest-go/alkahest"
)

type payload struct {
	Name string
	Tags []string
}

func TestCBORRoundTrip(t *testing.T) {
	want := payload{Name: "widget", Tags: []string{"a", "b", "c"}}

	buf := make([]byte, 256)
	w := alkahest.NewWriter(buf)
	require.NoError(t, Write(w, want))
	n := w.Finish()

	r := alkahest.NewReader(buf[:n])
	got, err := Read[payload](r)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
