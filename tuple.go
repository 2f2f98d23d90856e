package alkahest

// tupleFormula describes a fixed-arity product of formulas, laid out
// as each field's stack bytes concatenated in positional order (spec
// §5.2). elems is typically length 2-4; Go's lack of variadic generics
// means the write/read side is expressed per-arity below rather than
// through this descriptor, which exists for size introspection only.
type tupleFormula struct {
	bareMarker
	elems []Formula
}

// NewTupleFormula builds the formula for a fixed-arity tuple of elems.
func NewTupleFormula(elems ...Formula) Formula {
	return tupleFormula{elems: elems}
}

func (t tupleFormula) StackSize() int {
	n := 0
	for _, e := range t.elems {
		n += e.StackSize()
	}
	return n
}

func (t tupleFormula) MaxStackSize() (int, bool) {
	n := 0
	for _, e := range t.elems {
		m, bounded := e.MaxStackSize()
		if !bounded {
			return 0, false
		}
		n += m
	}
	return n, true
}

func (t tupleFormula) ExactSize() bool {
	for _, e := range t.elems {
		if !e.ExactSize() {
			return false
		}
	}
	return true
}

func (t tupleFormula) HeapBounded() bool {
	for _, e := range t.elems {
		if !e.HeapBounded() {
			return false
		}
	}
	return true
}

// WriteTuple2 writes a two-element tuple by writing a then b in order.
func WriteTuple2[A, B any](w *Writer, a A, b B, writeA func(*Writer, A) error, writeB func(*Writer, B) error) error {
	if err := writeA(w, a); err != nil {
		return err
	}
	return writeB(w, b)
}

// ReadTuple2 reads a two-element tuple.
func ReadTuple2[A, B any](r *Reader, readA func(*Reader) (A, error), readB func(*Reader) (B, error)) (A, B, error) {
	a, err := readA(r)
	if err != nil {
		var zb B
		return a, zb, err
	}
	b, err := readB(r)
	return a, b, err
}

// WriteTuple3 writes a three-element tuple in order.
func WriteTuple3[A, B, C any](w *Writer, a A, b B, c C,
	writeA func(*Writer, A) error, writeB func(*Writer, B) error, writeC func(*Writer, C) error) error {
	if err := writeA(w, a); err != nil {
		return err
	}
	if err := writeB(w, b); err != nil {
		return err
	}
	return writeC(w, c)
}

// ReadTuple3 reads a three-element tuple.
func ReadTuple3[A, B, C any](r *Reader,
	readA func(*Reader) (A, error), readB func(*Reader) (B, error), readC func(*Reader) (C, error)) (A, B, C, error) {
	a, err := readA(r)
	if err != nil {
		var zb B
		var zc C
		return a, zb, zc, err
	}
	b, err := readB(r)
	if err != nil {
		var zc C
		return a, b, zc, err
	}
	c, err := readC(r)
	return a, b, c, err
}

// WriteTuple4 writes a four-element tuple in order.
func WriteTuple4[A, B, C, D any](w *Writer, a A, b B, c C, d D,
	writeA func(*Writer, A) error, writeB func(*Writer, B) error,
	writeC func(*Writer, C) error, writeD func(*Writer, D) error) error {
	if err := writeA(w, a); err != nil {
		return err
	}
	if err := writeB(w, b); err != nil {
		return err
	}
	if err := writeC(w, c); err != nil {
		return err
	}
	return writeD(w, d)
}

// ReadTuple4 reads a four-element tuple.
func ReadTuple4[A, B, C, D any](r *Reader,
	readA func(*Reader) (A, error), readB func(*Reader) (B, error),
	readC func(*Reader) (C, error), readD func(*Reader) (D, error)) (A, B, C, D, error) {
	a, err := readA(r)
	if err != nil {
		var zb B
		var zc C
		var zd D
		return a, zb, zc, zd, err
	}
	b, err := readB(r)
	if err != nil {
		var zc C
		var zd D
		return a, b, zc, zd, err
	}
	c, err := readC(r)
	if err != nil {
		var zd D
		return a, b, c, zd, err
	}
	d, err := readD(r)
	return a, b, c, d, err
}
