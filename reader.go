package alkahest

import "unsafe"

// Reader is the Deserializer engine (spec §4.3). It walks a formula's
// inline slice while holding a reference to the full buffer so heap
// offsets, which are always measured from the buffer's tail, resolve
// without any recomputation regardless of nesting depth.
type Reader struct {
	buf    []byte
	pos    int // absolute cursor into buf
	strict bool
}

// NewReader returns a Reader positioned at the start of buf, in
// strict validation mode (ReadStr checks its payload is valid UTF-8).
// Bool strictness is not a Reader setting: ReadBool takes it from the
// DecodeOptions passed to it.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf, strict: true}
}

// at returns a Reader sharing the same buffer, positioned at an
// absolute offset — used to resolve heap payload locations.
func (r *Reader) at(pos int) *Reader {
	return &Reader{buf: r.buf, pos: pos, strict: r.strict}
}

// Pos returns the current absolute cursor position.
func (r *Reader) Pos() int { return r.pos }

// Remaining reports how many bytes remain between the cursor and the
// end of the buffer.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) validateSpan(pos, length int) error {
	if pos < 0 || pos > len(r.buf) {
		return &InvalidEncodingError{At: pos, What: "offset outside buffer"}
	}
	if length < 0 || pos+length > len(r.buf) {
		return &InvalidEncodingError{At: pos, What: "length exceeds remaining buffer"}
	}
	return nil
}

// ReadRaw returns the next n bytes and advances the cursor, without
// copying — the returned slice aliases the input buffer.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	if err := r.validateSpan(r.pos, n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// SkipRaw advances the cursor by n bytes without reading them (used
// for enum/option padding and by Skip[F]).
func (r *Reader) SkipRaw(n int) error {
	if err := r.validateSpan(r.pos, n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// ReadAddr reads one AddressWidth-byte little-endian address word.
func (r *Reader) ReadAddr() (uint64, error) {
	b, err := r.ReadRaw(AddressWidth)
	if err != nil {
		return 0, err
	}
	return getAddr(b), nil
}

// resolveTail converts a tail-relative offset into an absolute buffer
// position, validating it lands within the buffer.
func (r *Reader) resolveTail(offset uint64) (int, error) {
	pos := len(r.buf) - int(offset)
	if pos < 0 || pos > len(r.buf) {
		return 0, &InvalidEncodingError{At: r.pos, What: "offset outside buffer"}
	}
	return pos, nil
}

// ReadOffsetOnly reads a bare tail-relative offset (Ref[F]'s inline
// footprint) and returns a Reader positioned at the payload.
func (r *Reader) ReadOffsetOnly() (*Reader, error) {
	off, err := r.ReadAddr()
	if err != nil {
		return nil, err
	}
	pos, err := r.resolveTail(off)
	if err != nil {
		return nil, err
	}
	return r.at(pos), nil
}

// ReadRefPair reads a (length, offset) reference pair and returns the
// element/byte count plus a Reader positioned at the payload start.
// It does not itself validate that count*elemSize fits; callers know
// elemSize and must call ValidatePayload.
func (r *Reader) ReadRefPair() (length uint64, payload *Reader, err error) {
	length, err = r.ReadAddr()
	if err != nil {
		return 0, nil, err
	}
	off, err := r.ReadAddr()
	if err != nil {
		return 0, nil, err
	}
	pos, err := r.resolveTail(off)
	if err != nil {
		return 0, nil, err
	}
	return length, r.at(pos), nil
}

// ValidatePayload checks that a payload of byteLen bytes starting at
// the reader's current position fits within the buffer.
func (r *Reader) ValidatePayload(byteLen int) error {
	return r.validateSpan(r.pos, byteLen)
}

// ReadRawUnvalidated returns the next n bytes without bounds-checking
// pos+n against the buffer — the unvalidated leaf-data path spec's
// validation policy describes: structural positioning (reading the
// length/offset header) still happens through the checked path, only
// the final slice bounds check on trusted leaf data is skipped. It
// panics on a genuinely malformed buffer instead of returning an
// error; callers must only use it on output from a trusted serializer
// of the same formula.
func (r *Reader) ReadRawUnvalidated(n int) []byte {
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// zeroCopyString converts b to a string without copying. b must not be
// mutated afterward; since b aliases an immutable decode buffer owned
// by the caller for the lifetime of the returned value, this matches
// the teacher's UnsafeStrings technique (fractus.go, utils.go) and
// spec §4.4's "on decode it exposes a borrowed UTF-8 view into the
// buffer."
func zeroCopyString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
