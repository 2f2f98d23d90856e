package alkahest

import "unicode/utf8"

// strFormula describes Str: the same (length, offset) reference pair
// as Bytes, with the heap payload constrained to valid UTF-8 (spec
// §5.6).
type strFormula struct {
	exact
	bareMarker
}

// FormulaStr is the formula for Str.
var FormulaStr Formula = strFormula{}

func (strFormula) StackSize() int            { return 2 * AddressWidth }
func (strFormula) MaxStackSize() (int, bool) { return 2 * AddressWidth, true }
func (strFormula) HeapBounded() bool         { return false }

// WriteStr writes v's bytes to the heap and emits the inline (length,
// offset) reference pair. Go strings are not validated on write since
// they are already required to be valid UTF-8 by convention; callers
// constructing a string from arbitrary bytes are responsible for that
// guarantee, same as the teacher's UnsafeStrings escape hatch.
func WriteStr(w *Writer, v string) error {
	return w.WriteRefPair(len(v), func(w *Writer) error {
		return w.WriteRaw([]byte(v))
	})
}

// ReadStr reads a Str reference pair. In strict mode (the default) the
// payload is validated as UTF-8 and InvalidEncodingError is returned
// on the first bad byte; the returned string aliases the decode buffer
// via zeroCopyString with no allocation or copy.
func ReadStr(r *Reader) (string, error) {
	length, payload, err := r.ReadRefPair()
	if err != nil {
		return "", err
	}
	b, err := payload.ReadRaw(int(length))
	if err != nil {
		return "", err
	}
	if r.strict && !utf8.Valid(b) {
		return "", &InvalidEncodingError{At: payload.pos - len(b), What: "invalid UTF-8"}
	}
	return zeroCopyString(b), nil
}

// ReadStrUnvalidated reads a Str reference pair without bounds- or
// UTF-8-checking the leaf payload, per spec's Unvalidated decode API:
// structural positioning (the reference pair itself) is still read
// through the checked path. It panics on a malformed buffer rather
// than returning an error.
func ReadStrUnvalidated(r *Reader) (string, error) {
	length, payload, err := r.ReadRefPair()
	if err != nil {
		return "", err
	}
	return zeroCopyString(payload.ReadRawUnvalidated(int(length))), nil
}
