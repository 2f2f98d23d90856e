package alkahest

// Writer is the Serializer engine (spec §4.2). It holds two cursors
// over a caller-owned byte buffer: inlineEnd grows from 0 and tracks
// the inline (stack) region; heapStart shrinks from len(buf) and
// tracks the heap region. A dry Writer performs the same cursor
// arithmetic without touching buf, used to implement SerializedSize
// without a physical buffer — the Go analogue of the source's
// DryBuffer (_examples/original_source/core/src/buffer.rs).
type Writer struct {
	buf       []byte
	bufLen    int // logical buffer length; may exceed len(buf) only in dry mode
	inlineEnd int
	heapStart int
	dry       bool
}

// NewWriter returns a Writer that writes physically into buf.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf, bufLen: len(buf), heapStart: len(buf)}
}

// newDryWriter returns a Writer that only tracks sizes; bufLen is a
// notional, effectively unbounded capacity so size computation never
// fails with BufferTooSmall.
func newDryWriter() *Writer {
	const unbounded = int(^uint(0) >> 1)
	return &Writer{bufLen: unbounded, heapStart: unbounded, dry: true}
}

// Sizes returns the stack and heap bytes written so far.
func (w *Writer) Sizes() Sizes {
	return Sizes{Stack: w.inlineEnd, Heap: w.bufLen - w.heapStart}
}

func (w *Writer) reserve(n int) error {
	if w.inlineEnd+n > w.heapStart {
		return &BufferTooSmallError{Required: w.requiredFor(n)}
	}
	return nil
}

// requiredFor estimates the total buffer size that would have avoided
// the failure, given n more inline bytes were about to be written and
// didn't fit. It is a lower bound: it does not know about heap growth
// still to come for the rest of the value.
func (w *Writer) requiredFor(n int) int {
	return (w.bufLen - w.heapStart) + w.inlineEnd + n
}

// WriteRaw appends literal bytes to the inline region, advancing
// inlineEnd. Used for fixed-width primitive encodings.
func (w *Writer) WriteRaw(b []byte) error {
	if err := w.reserve(len(b)); err != nil {
		return err
	}
	if !w.dry {
		copy(w.buf[w.inlineEnd:], b)
	}
	w.inlineEnd += len(b)
	return nil
}

// WriteZero appends n zero bytes to the inline region. Used for
// Option's absent-variant padding and enum uniform-footprint padding;
// spec §5 requires padding bytes to be deterministic zero.
func (w *Writer) WriteZero(n int) error {
	if err := w.reserve(n); err != nil {
		return err
	}
	if !w.dry {
		clear(w.buf[w.inlineEnd : w.inlineEnd+n])
	}
	w.inlineEnd += n
	return nil
}

// WriteAddr appends an AddressWidth-byte little-endian address word.
func (w *Writer) WriteAddr(v uint64) error {
	if err := checkedAddr(v); err != nil {
		return err
	}
	if err := w.reserve(AddressWidth); err != nil {
		return err
	}
	if !w.dry {
		putAddr(w.buf[w.inlineEnd:], v)
	}
	w.inlineEnd += AddressWidth
	return nil
}

// ToHeap runs fn, which must write only via this Writer's direct
// (inline-advancing) operations, then relocates everything fn wrote
// into the heap region and rewinds the inline cursor, returning the
// tail-relative offset (distance from the buffer's end to the first
// relocated byte) at which the payload now lives.
//
// This is the mechanism spec §4.2 step 3 describes for sequences,
// generalized to any indirectly-stored payload (Ref[F], the contents
// of a Seq[F]'s elements, a heap-promoted record field): write forward
// as if inline, then move the written span to the tail. It mirrors
// the original's write_to_heap + Buffer::move_to_heap
// (_examples/original_source/core/src/serialize.rs).
func (w *Writer) ToHeap(fn func(*Writer) error) (offset int, err error) {
	start := w.inlineEnd
	if err := fn(w); err != nil {
		return 0, err
	}
	length := w.inlineEnd - start
	if err := w.reserveHeapMove(start, length); err != nil {
		return 0, err
	}
	if !w.dry && length > 0 {
		dst := w.heapStart - length
		// src and dst overlap when less than length bytes were free
		// after fn's writes; copy handles overlapping ranges.
		copy(w.buf[dst:w.heapStart], w.buf[start:start+length])
	}
	w.heapStart -= length
	w.inlineEnd = start
	return w.bufLen - w.heapStart, nil
}

func (w *Writer) reserveHeapMove(start, length int) error {
	if w.heapStart-length < start {
		return &BufferTooSmallError{Required: w.requiredFor(0)}
	}
	return nil
}

// WriteRefPair writes a (length, offset) reference pair: length is an
// element/byte count, offset is the tail-relative distance to payload
// produced by fn (spec §3's "reference pair").
func (w *Writer) WriteRefPair(length int, fn func(*Writer) error) error {
	offset, err := w.ToHeap(fn)
	if err != nil {
		return err
	}
	if err := w.WriteAddr(uint64(length)); err != nil {
		return err
	}
	return w.WriteAddr(uint64(offset))
}

// WriteOffsetOnly writes a bare tail-relative offset (no length),
// used by Ref[F] whose payload size is inferred from F.
func (w *Writer) WriteOffsetOnly(fn func(*Writer) error) error {
	offset, err := w.ToHeap(fn)
	if err != nil {
		return err
	}
	return w.WriteAddr(uint64(offset))
}

// Finish compacts the heap region down against the final inline
// region and returns the total number of valid bytes written,
// buf[:n]. Construction grows the heap backward from the end of the
// caller-supplied buffer, which may be larger than the value's final
// total size; Finish slides that heap content down so the invariant
// in spec §3 holds on the returned slice: inline fills [0,stack) and
// heap fills [stack,total) with no gap.
func (w *Writer) Finish() int {
	heapLen := w.bufLen - w.heapStart
	if !w.dry && heapLen > 0 && w.heapStart != w.inlineEnd {
		copy(w.buf[w.inlineEnd:w.inlineEnd+heapLen], w.buf[w.heapStart:w.bufLen])
	}
	return w.inlineEnd + heapLen
}
