package alkahest

// bytesFormula describes Bytes: a run of raw, uninterpreted bytes
// stored on the heap, referenced inline by a (length, offset)
// reference pair (spec §5.5).
type bytesFormula struct {
	exact
	bareMarker
}

// FormulaBytes is the formula for Bytes.
var FormulaBytes Formula = bytesFormula{}

func (bytesFormula) StackSize() int            { return 2 * AddressWidth }
func (bytesFormula) MaxStackSize() (int, bool) { return 2 * AddressWidth, true }
func (bytesFormula) HeapBounded() bool         { return false }

// WriteBytes writes v to the heap and emits the inline (length,
// offset) reference pair.
func WriteBytes(w *Writer, v []byte) error {
	return w.WriteRefPair(len(v), func(w *Writer) error {
		return w.WriteRaw(v)
	})
}

// ReadBytes reads a Bytes reference pair and returns the payload as a
// subslice of the decode buffer, with no copy — the caller must not
// mutate the returned slice or retain it past the buffer's lifetime.
func ReadBytes(r *Reader) ([]byte, error) {
	length, payload, err := r.ReadRefPair()
	if err != nil {
		return nil, err
	}
	return payload.ReadRaw(int(length))
}

// ReadBytesUnvalidated reads a Bytes reference pair without bounds-
// checking the leaf payload; see ReadStrUnvalidated.
func ReadBytesUnvalidated(r *Reader) ([]byte, error) {
	length, payload, err := r.ReadRefPair()
	if err != nil {
		return nil, err
	}
	return payload.ReadRawUnvalidated(int(length)), nil
}
