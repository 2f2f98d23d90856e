// Package cbor lets an Alkahest record embed a value serialized by a
// third-party self-describing codec instead of a native formula —
// spec §1's "optional interop with a third-party self-describing
// codec" — grounded on the original implementation's Bincode formula
// (original_source/src/bincoded.rs), which stores an arbitrary
// serde-serializable value as a length-prefixed heap payload behind
// the same (length, offset) reference pair Bytes uses. Here the
// payload codec is CBOR via github.com/fxamacker/cbor/v2, configured
// for Core Deterministic Encoding as onflow-atree's cbor.go does.
package cbor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	alkahest "github.com/alkahest-go/alkahest"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCoreDeterministic,
		ShortestFloat: cbor.ShortestFloat16,
		NaNConvert:    cbor.NaNConvert7e00,
		InfConvert:    cbor.InfConvertFloat16,
		IndefLength:   cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor: building encode mode: %v", err))
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cbor: building decode mode: %v", err))
	}
}

// Formula describes a CBOR-boxed value's layout: identical in shape
// to alkahest.FormulaBytes, since the CBOR bytes are simply stored as
// an opaque heap payload.
var Formula alkahest.Formula = alkahest.FormulaBytes

// Write encodes v with CBOR and writes the result as a Bytes payload.
func Write[T any](w *alkahest.Writer, v T) error {
	b, err := encMode.Marshal(v)
	if err != nil {
		return fmt.Errorf("cbor: marshal: %w", err)
	}
	return alkahest.WriteBytes(w, b)
}

// Read reads a Bytes payload and decodes it with CBOR into a T.
func Read[T any](r *alkahest.Reader) (T, error) {
	var out T
	b, err := alkahest.ReadBytes(r)
	if err != nil {
		return out, err
	}
	if err := decMode.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("cbor: unmarshal: %w", err)
	}
	return out, nil
}
