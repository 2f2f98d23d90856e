package diag

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DumpBuffer logs the inline/heap split of an encoded Alkahest buffer
// and returns a human-readable hex dump of each region, in the style
// of the teacher corpus's array/map slab dumps: a walk over a binary
// structure's regions rather than its semantic contents, since
// Alkahest formulas carry no self-describing type tags to interpret.
func DumpBuffer(buf []byte, stackSize int) string {
	if stackSize > len(buf) {
		stackSize = len(buf)
	}
	inline := buf[:stackSize]
	heap := buf[stackSize:]

	Logger().Debug("alkahest buffer",
		zap.Int("total_bytes", len(buf)),
		zap.Int("stack_bytes", len(inline)),
		zap.Int("heap_bytes", len(heap)),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "total=%d stack=%d heap=%d\n", len(buf), len(inline), len(heap))
	fmt.Fprintf(&b, "inline: %s\n", hexDump(inline))
	fmt.Fprintf(&b, "heap:   %s\n", hexDump(heap))
	return b.String()
}

func hexDump(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}
