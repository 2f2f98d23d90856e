package alkahest

// seqFormula describes Seq[F]: a variable-length run of F-formula
// elements stored on the heap, referenced inline by a (count, offset)
// reference pair (spec §5.4). Its own inline footprint is fixed at 2W
// regardless of F; HeapBounded is false because the element count is
// unbounded.
type seqFormula struct {
	bareMarker
	elem Formula
}

// NewSeqFormula builds the formula for Seq[elem].
func NewSeqFormula(elem Formula) Formula {
	return seqFormula{elem: elem}
}

func (s seqFormula) StackSize() int            { return 2 * AddressWidth }
func (s seqFormula) MaxStackSize() (int, bool) { return 2 * AddressWidth, true }
func (s seqFormula) ExactSize() bool           { return true }
func (s seqFormula) HeapBounded() bool         { return false }

// WriteSeq writes a sequence produced by a range-over-func iterator:
// each element is yielded, encoded, and appended directly (as if
// inline); once exhausted, the whole run is relocated to the heap via
// Writer.ToHeap and the inline (count, offset) pair is emitted. This
// defers needing the count up front, matching spec §5.4's iterator-
// sourced case — the Go counterpart of the source's write_with_length
// that discovers length as a byproduct of writing (_examples/
// original_source/src/seq.rs).
func WriteSeq[T any](w *Writer, seq func(yield func(T) bool), writeElem func(*Writer, T) error) error {
	count := 0
	var writeErr error
	offset, err := w.ToHeap(func(w *Writer) error {
		seq(func(v T) bool {
			if writeErr = writeElem(w, v); writeErr != nil {
				return false
			}
			count++
			return true
		})
		return writeErr
	})
	if err != nil {
		return err
	}
	if err := w.WriteAddr(uint64(count)); err != nil {
		return err
	}
	return w.WriteAddr(uint64(offset))
}

// WriteSeqSlice writes a sequence from a slice, where the count is
// known up front — the common case, expressed in terms of WriteSeq's
// range-over-func iterator so both paths share one implementation.
func WriteSeqSlice[T any](w *Writer, v []T, writeElem func(*Writer, T) error) error {
	return WriteSeq(w, func(yield func(T) bool) {
		for _, e := range v {
			if !yield(e) {
				return
			}
		}
	}, writeElem)
}

// SeqCursor is a lazy view over a decoded Seq[F]'s elements: it
// retains only the element count and the payload's starting Reader,
// decoding an element only when asked, matching spec §4.3's "a Lazy
// wrapper exposes read access without eagerly materializing contents."
type SeqCursor[T any] struct {
	payload   *Reader
	count     int
	elemSize  int
	readElem  func(*Reader) (T, error)
}

// NewSeqCursor builds a cursor over a decoded reference pair. elemSize
// must be the formula's fixed StackSize, used for O(1) random access.
func NewSeqCursor[T any](count int, payload *Reader, elemSize int, readElem func(*Reader) (T, error)) *SeqCursor[T] {
	return &SeqCursor[T]{payload: payload, count: count, elemSize: elemSize, readElem: readElem}
}

// Len returns the number of elements, without decoding any of them.
func (c *SeqCursor[T]) Len() int { return c.count }

// At decodes and returns the element at index i in O(1), by seeking
// directly to its offset within the payload rather than walking prior
// elements — spec §8's invariant 5.
func (c *SeqCursor[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= c.count {
		return zero, &InvalidEncodingError{At: c.payload.pos, What: "sequence index out of range"}
	}
	r := c.payload.at(c.payload.pos + i*c.elemSize)
	return c.readElem(r)
}

// Skip returns a cursor over the elements from index n onward.
func (c *SeqCursor[T]) Skip(n int) *SeqCursor[T] {
	if n > c.count {
		n = c.count
	}
	return &SeqCursor[T]{
		payload:  c.payload.at(c.payload.pos + n*c.elemSize),
		count:    c.count - n,
		elemSize: c.elemSize,
		readElem: c.readElem,
	}
}

// SkipBack returns a cursor over the elements up to, excluding, the
// last n elements — the mirror of Skip, supporting bidirectional
// iteration per spec §5.4.
func (c *SeqCursor[T]) SkipBack(n int) *SeqCursor[T] {
	if n > c.count {
		n = c.count
	}
	return &SeqCursor[T]{
		payload:  c.payload,
		count:    c.count - n,
		elemSize: c.elemSize,
		readElem: c.readElem,
	}
}

// All returns a decoded copy of every element, in order. Provided for
// callers that want eager materialization despite the lazy default.
func (c *SeqCursor[T]) All() ([]T, error) {
	out := make([]T, c.count)
	for i := range out {
		v, err := c.At(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Clone returns an independent cursor over the same payload; since
// Reader values are cheap and the underlying buffer is immutable for
// the cursor's lifetime, this is a shallow copy.
func (c *SeqCursor[T]) Clone() *SeqCursor[T] {
	cp := *c.payload
	return &SeqCursor[T]{payload: &cp, count: c.count, elemSize: c.elemSize, readElem: c.readElem}
}

// ReadSeq reads a Seq[F]'s reference pair and returns a lazy cursor
// over its elements. elemSize must equal the element formula's fixed
// StackSize.
func ReadSeq[T any](r *Reader, elemSize int, readElem func(*Reader) (T, error)) (*SeqCursor[T], error) {
	count, payload, err := r.ReadRefPair()
	if err != nil {
		return nil, err
	}
	if err := payload.ValidatePayload(int(count) * elemSize); err != nil {
		return nil, err
	}
	return NewSeqCursor(int(count), payload, elemSize, readElem), nil
}
