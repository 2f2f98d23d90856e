// alkdump prints the inline/heap structure of an Alkahest-encoded
// file, for debugging a wire payload without the Go type that
// produced it.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/alkahest-go/alkahest/internal/diag"
)

func main() {
	path := flag.String("f", "", "path to an alkahest-encoded file")
	stackSize := flag.Int("stack", 0, "known inline (stack) region size in bytes; 0 dumps the whole buffer as heap")
	verbose := flag.Bool("v", false, "enable structural debug logging")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: alkdump -f <file> [-stack N] [-v]")
		os.Exit(2)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			diag.SetLogger(l)
		}
	}

	buf, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Print(diag.DumpBuffer(buf, *stackSize))
}
