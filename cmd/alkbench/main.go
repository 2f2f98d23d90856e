// alkbench profiles repeated encode/decode cycles of a representative
// struct, adapted from the teacher's main/main.go pprof harness:
// expose pprof over HTTP, write a heap profile, and loop the
// Serializer/Deserializer enough times for the profile to be
// meaningful. It additionally reports the size of the last encoded
// buffer after compressing it with klauspost/compress/zstd, for callers curious whether a general-
// purpose compressor would shrink their wire format further — purely
// a benchmark-time curiosity, never wired into the core codec.
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/klauspost/compress/zstd"

	alkahest "github.com/alkahest-go/alkahest"
)

type benchRecord struct {
	Name   string
	Scores []uint32
	Active bool
}

func main() {
	iterations := flag.Int("n", 200000, "number of encode/decode cycles")
	profPath := flag.String("memprofile", "mem.prof", "heap profile output path")
	pprofAddr := flag.String("pprof", "", "if set, serve net/http/pprof on this address (e.g. localhost:6060)")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	rec := benchRecord{
		Name:   "alkahest-bench",
		Scores: []uint32{1, 2, 3, 4, 5, 6, 7, 8},
		Active: true,
	}

	runtime.MemProfileRate = 1
	var last []byte
	start := time.Now()
	for i := 0; i < *iterations; i++ {
		buf, err := alkahest.SerializeToVec(rec)
		if err != nil {
			log.Fatalf("serialize: %v", err)
		}
		if _, err := alkahest.Deserialize[benchRecord](buf); err != nil {
			log.Fatalf("deserialize: %v", err)
		}
		last = buf
	}
	elapsed := time.Since(start)
	log.Printf("%d cycles in %s (%s/cycle)", *iterations, elapsed, elapsed/time.Duration(*iterations))

	reportCompressedSize(last)

	f, err := os.Create(*profPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Fatal(err)
	}
}

func reportCompressedSize(buf []byte) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		log.Printf("zstd: %v", err)
		return
	}
	defer enc.Close()
	compressed := enc.EncodeAll(buf, nil)
	log.Printf("raw=%d bytes zstd=%d bytes (%.1f%%)", len(buf), len(compressed), 100*float64(len(compressed))/float64(len(buf)))
}
