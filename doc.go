// Package alkahest implements a schema-first, zero-copy binary
// serialization format: values are laid out so that reading one back
// requires no parsing pass over its contents, only pointer arithmetic
// over a shared buffer.
//
// A value's layout is described by a Formula, not by the Go type
// encoding it — Bytes, Str, Seq[F], Option[F], and Ref[F] above all
// describe the wire shape independently of which Go type a caller
// chooses to read or write through it. Struct types get their Formula
// derived automatically by reflection (see Record), caching the
// reflect.Type walk the first time each type is seen.
//
// Every value splits into two regions: a fixed-size inline region
// whose layout is knowable from the formula alone, and a heap region
// holding variable-length payloads, referenced from the inline region
// by offsets measured backward from the end of the buffer. See Writer
// and Reader for the mechanics.
package alkahest
