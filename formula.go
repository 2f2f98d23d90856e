package alkahest

// Formula is the compile-time-in-spirit descriptor of a binary layout.
// Leaf formulas (primitives, Bytes, Str) are small fixed structs;
// compound formulas (Seq, Ref, Option, tuples, arrays, enums, Lazy,
// Skip) hold their element formulas (and an array's length) as fields —
// the Go analogue of the source's type-level-only descriptor. See DESIGN.md for why Go generics, not
// reflection, carry the catalogue.
type Formula interface {
	// StackSize is the number of bytes this formula contributes to the
	// inline region of its container. Meaningless (callers must not
	// rely on it) when MaxStackSize's bounded is false.
	StackSize() int

	// MaxStackSize is a tight upper bound on StackSize. bounded is
	// false when the formula has no static bound. Every leaf formula in
	// the catalogue is bounded (Seq/Bytes/Str report their fixed 2W
	// inline footprint); a compound formula reports false only when one
	// of its element formulas does.
	MaxStackSize() (size int, bounded bool)

	// ExactSize reports whether every value of this formula consumes
	// exactly StackSize bytes inline.
	ExactSize() bool

	// HeapBounded reports whether total heap usage per value has a
	// static upper bound.
	HeapBounded() bool
}

// BareFormula marks a Formula as usable at the top level of a message,
// i.e. without being wrapped in Ref[F]. Only formulas whose stack size
// is determinate and self-sufficient (not dependent on a container
// supplying a length prefix) implement it.
type BareFormula interface {
	Formula
	bare()
}

// exact is embedded by fixed-width catalogue formulas: ExactSize is
// always true for them, and HeapBounded defaults to true (Bytes, Str
// and Ref override HeapBounded).
type exact struct{}

func (exact) ExactSize() bool   { return true }
func (exact) HeapBounded() bool { return true }

// bareMarker is embedded by formulas legal at message top level.
type bareMarker struct{}

func (bareMarker) bare() {}
