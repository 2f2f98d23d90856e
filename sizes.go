package alkahest

// Sizes tracks the heap and stack bytes produced so far by a
// serialization in progress. Mirrors the original's core::serialize::
// Sizes struct (_examples/original_source/core/src/serialize.rs),
// which exists so a composite Serialize implementation can report a
// size hint without a full dry run.
type Sizes struct {
	Heap  int
	Stack int
}

// Total returns the combined heap and stack byte count.
func (s Sizes) Total() int { return s.Heap + s.Stack }

// Add returns the element-wise sum of two Sizes.
func (s Sizes) Add(o Sizes) Sizes {
	return Sizes{Heap: s.Heap + o.Heap, Stack: s.Stack + o.Stack}
}
