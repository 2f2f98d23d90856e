package alkahest

import (
	"testing"

	"gopkg.in/yaml.v3"
)

type benchComparisonRecord struct {
	Name   string
	Scores []uint32
	Active bool
}

var benchRecordValue = benchComparisonRecord{
	Name:   "comparison",
	Scores: []uint32{1, 2, 3, 4, 5},
	Active: true,
}

func BenchmarkSerializeToVec(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := SerializeToVec(benchRecordValue); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeserialize(b *testing.B) {
	buf, err := SerializeToVec(benchRecordValue)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Deserialize[benchComparisonRecord](buf); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkYamlMarshal is a comparison point against a self-describing
// text codec, in the style of the teacher's own yaml.v3 comparison
// benchmarks (fractus_testt.go, fractus_improv_test.go) — not a claim
// that the two formats are interchangeable.
func BenchmarkYamlMarshal(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := yaml.Marshal(benchRecordValue); err != nil {
			b.Fatal(err)
		}
	}
}
