package alkahest

// lazyFormula describes Lazy[F]: inline footprint identical to F's,
// but decode does not materialize F's Go value — it only captures the
// inline bytes and a buffer anchor, deferring the actual decode to
// Lazy[T].Get (spec §4.3, §5.8).
type lazyFormula struct {
	elem Formula
}

// NewLazyFormula builds the formula for Lazy[elem].
func NewLazyFormula(elem Formula) Formula { return lazyFormula{elem: elem} }

func (l lazyFormula) StackSize() int             { return l.elem.StackSize() }
func (l lazyFormula) MaxStackSize() (int, bool)  { return l.elem.MaxStackSize() }
func (l lazyFormula) ExactSize() bool            { return l.elem.ExactSize() }
func (l lazyFormula) HeapBounded() bool          { return l.elem.HeapBounded() }

// Lazy captures a formula's inline slice and the Reader needed to
// resolve any tail-relative offsets it contains, without decoding into
// T. The underlying buffer stays alive for Lazy's lifetime because the
// captured Reader shares its backing array with the original decode
// buffer — ordinary Go slice aliasing does the job the source needs
// Rust lifetimes for.
type Lazy[T any] struct {
	r        *Reader
	readElem func(*Reader) (T, error)
}

// NewLazy wraps a Reader positioned at a formula's inline bytes,
// deferring decode until Get is called.
func NewLazy[T any](r *Reader, readElem func(*Reader) (T, error)) Lazy[T] {
	return Lazy[T]{r: r, readElem: readElem}
}

// Get decodes the wrapped value. Calling it more than once re-decodes
// from the same position each time; it does not cache.
func (l Lazy[T]) Get() (T, error) {
	cp := *l.r
	return l.readElem(&cp)
}

// WriteLazy writes v exactly as its underlying formula would; Lazy has
// no distinct wire representation from F, only a distinct decode-time
// behavior.
func WriteLazy[T any](w *Writer, v T, writeElem func(*Writer, T) error) error {
	return writeElem(w, v)
}

// ReadLazy anchors a Lazy[T] at the reader's current inline position
// and advances r past stackSize inline bytes, the same as if the value
// had been eagerly decoded, so sibling fields continue reading from
// the right place.
func ReadLazy[T any](r *Reader, stackSize int, readElem func(*Reader) (T, error)) (Lazy[T], error) {
	anchor := r.at(r.pos)
	if err := r.SkipRaw(stackSize); err != nil {
		return Lazy[T]{}, err
	}
	return NewLazy(anchor, readElem), nil
}
