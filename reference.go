package alkahest

// refFormula describes Ref[F]: a bare tail-relative offset to an
// F-formula payload stored on the heap (spec §5.7), the only way to
// express recursive or size-indeterminate nesting since it is always
// EXACT_SIZE regardless of F.
type refFormula struct {
	exact
	bareMarker
	elem Formula
}

// NewRefFormula builds the formula for Ref[elem].
func NewRefFormula(elem Formula) Formula {
	return refFormula{elem: elem}
}

func (refFormula) StackSize() int            { return AddressWidth }
func (refFormula) MaxStackSize() (int, bool) { return AddressWidth, true }

// HeapBounded defers to the referent: a Ref to a HeapBounded formula
// is itself heap-bounded (one instance of the referent on the heap);
// a Ref to something unbounded (e.g. Ref[Seq[F]]) is not.
func (r refFormula) HeapBounded() bool { return r.elem.HeapBounded() }

// WriteRef writes v to the heap via writeElem and emits the inline
// bare offset.
func WriteRef[T any](w *Writer, v T, writeElem func(*Writer, T) error) error {
	return w.WriteOffsetOnly(func(w *Writer) error {
		return writeElem(w, v)
	})
}

// ReadRef reads the inline offset and decodes the referent from the
// resolved payload position.
func ReadRef[T any](r *Reader, readElem func(*Reader) (T, error)) (T, error) {
	payload, err := r.ReadOffsetOnly()
	if err != nil {
		var zero T
		return zero, err
	}
	return readElem(payload)
}

// Boxed is a generic indirection wrapper for recursive formula
// definitions: a struct field typed Boxed[T] encodes as Ref[T]'s
// inline footprint rather than attempting to inline T directly, which
// would otherwise require infinite stack size. Mirrors the source's
// requirement that recursive formulas take an explicit Ref (spec
// §5.7's "self-reference must go through Ref").
type Boxed[T any] struct {
	Value T
}

// IsAlkahestBoxed marks Boxed[T] as the recursion-indirection wrapper;
// record.go's field-plan builder detects it with a type assertion
// against an interface holding this method, to break cycles instead of recursing into T's own fields inline.
func (Boxed[T]) IsAlkahestBoxed() {}

// NewBoxed wraps v for storage in a recursive formula field.
func NewBoxed[T any](v T) Boxed[T] { return Boxed[T]{Value: v} }
