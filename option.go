package alkahest

// optionFormula describes Option<F>: a 1-byte presence tag followed by
// F's stack footprint, zero-padded when absent (spec §5.1).
type optionFormula struct {
	bareMarker
	elem Formula
}

// NewOptionFormula builds the formula for Option<elem>.
func NewOptionFormula(elem Formula) Formula {
	return optionFormula{elem: elem}
}

func (o optionFormula) StackSize() int {
	return 1 + o.elem.StackSize()
}

func (o optionFormula) MaxStackSize() (int, bool) {
	n, bounded := o.elem.MaxStackSize()
	return 1 + n, bounded
}

func (o optionFormula) ExactSize() bool   { return o.elem.ExactSize() }
func (o optionFormula) HeapBounded() bool { return o.elem.HeapBounded() }

// WriteOption writes the presence tag and, if present, the value via
// writeSome. When the value is absent, WriteOption writes elemStackSize
// zero bytes in its place, so every Option<F> of a given F occupies the
// same inline size regardless of presence.
func WriteOption[T any](w *Writer, v *T, elemStackSize int, writeSome func(*Writer, T) error) error {
	if v == nil {
		if err := WriteU8(w, 0); err != nil {
			return err
		}
		return w.WriteZero(elemStackSize)
	}
	if err := WriteU8(w, 1); err != nil {
		return err
	}
	return writeSome(w, *v)
}

// ReadOption reads the presence tag and, if set, decodes the value via
// readSome; otherwise it skips elemStackSize padding bytes without
// validating their contents, matching spec §5.1's "padding bytes exist
// only to keep the footprint uniform and are never read back."
func ReadOption[T any](r *Reader, elemStackSize int, readSome func(*Reader) (T, error)) (*T, error) {
	tag, err := ReadU8(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		if err := r.SkipRaw(elemStackSize); err != nil {
			return nil, err
		}
		return nil, nil
	case 1:
		v, err := readSome(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, &InvalidEncodingError{At: r.pos - 1, What: "option tag outside {0,1}"}
	}
}
