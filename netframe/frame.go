// Package netframe provides caller-side length+CRC32 framing for
// Alkahest buffers sent over a byte stream. Alkahest's own wire format
// carries no length prefix or checksum of its own — spec leaves
// framing to the caller — so this package exists alongside the core
// module rather than inside it, adapted from the teacher's
// pkg/compactwire length+CRC32 preamble technique.
package netframe

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// magic identifies a netframe frame at the start of a stream; the
// header carries no version field.
const (
	magic        uint16 = 0xA1ca // "Alca" as in Alkahest
	headerLen           = 2 + 4 // magic + payload length
	trailerLen           = 4    // crc32
)

// ErrBadMagic is returned when a frame's magic bytes do not match.
var ErrBadMagic = fmt.Errorf("netframe: bad magic")

// ErrChecksumMismatch is returned when a frame's trailing CRC32 does
// not match its payload.
var ErrChecksumMismatch = fmt.Errorf("netframe: checksum mismatch")

// Encode wraps an Alkahest-encoded payload in a length-prefixed,
// CRC32-checked frame: magic(2) | length(4) | payload | crc32(4).
func Encode(payload []byte) []byte {
	out := make([]byte, headerLen+len(payload)+trailerLen)
	binary.LittleEndian.PutUint16(out[0:2], magic)
	binary.LittleEndian.PutUint32(out[2:6], uint32(len(payload)))
	copy(out[headerLen:], payload)
	crc := crc32.ChecksumIEEE(payload)
	binary.LittleEndian.PutUint32(out[headerLen+len(payload):], crc)
	return out
}

// Decode validates and unwraps a frame produced by Encode, returning
// the enclosed Alkahest payload unchanged (still lazily decodable by
// the core package — netframe never inspects it).
func Decode(frame []byte) ([]byte, error) {
	if len(frame) < headerLen+trailerLen {
		return nil, fmt.Errorf("netframe: frame too short")
	}
	if binary.LittleEndian.Uint16(frame[0:2]) != magic {
		return nil, ErrBadMagic
	}
	length := int(binary.LittleEndian.Uint32(frame[2:6]))
	if headerLen+length+trailerLen != len(frame) {
		return nil, fmt.Errorf("netframe: length mismatch: header says %d, frame is %d bytes", length, len(frame))
	}
	payload := frame[headerLen : headerLen+length]
	want := binary.LittleEndian.Uint32(frame[headerLen+length:])
	if crc32.ChecksumIEEE(payload) != want {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}

// WriteTo writes an encoded frame for payload to w.
func WriteTo(w io.Writer, payload []byte) (int, error) {
	return w.Write(Encode(payload))
}

// ReadFrom reads one frame's header to learn its total length, then
// reads and validates the rest from r.
func ReadFrom(r io.Reader) ([]byte, error) {
	var header [headerLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	if binary.LittleEndian.Uint16(header[0:2]) != magic {
		return nil, ErrBadMagic
	}
	length := int(binary.LittleEndian.Uint32(header[2:6]))
	rest := make([]byte, length+trailerLen)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, err
	}
	full := append(header[:], rest...)
	return Decode(full)
}
