package alkahest

// skipFormula describes Skip[F]: a deserialize-only wrapper that walks
// a value's structure enough to advance past it but discards the
// payload instead of decoding it, grounded on original_source/src/
// skip.rs. It has no meaningful write side — a value is never
// serialized as Skip[F], only read back as one when the caller does
// not need that field.
type skipFormula struct {
	elem Formula
}

// NewSkipFormula builds the formula for Skip[elem].
func NewSkipFormula(elem Formula) Formula { return skipFormula{elem: elem} }

func (s skipFormula) StackSize() int            { return s.elem.StackSize() }
func (s skipFormula) MaxStackSize() (int, bool) { return s.elem.MaxStackSize() }
func (s skipFormula) ExactSize() bool           { return s.elem.ExactSize() }
func (s skipFormula) HeapBounded() bool         { return s.elem.HeapBounded() }

// SkipFixed advances r past a fixed-size inline field without reading
// it, for formulas with no heap payload to chase (primitives, tuples,
// arrays of such).
func SkipFixed(r *Reader, stackSize int) error {
	return r.SkipRaw(stackSize)
}

// SkipRefPair advances r past a (length, offset) reference pair's
// inline footprint, without resolving or touching the heap payload it
// points to — the heap bytes are simply never visited.
func SkipRefPair(r *Reader) error {
	return r.SkipRaw(2 * AddressWidth)
}

// SkipOffsetOnly advances r past a bare offset's inline footprint
// (Ref[F]'s shape), without resolving the payload.
func SkipOffsetOnly(r *Reader) error {
	return r.SkipRaw(AddressWidth)
}
