package checksum

import (
	"strings"
	"testing"
)

// BenchmarkSum benchmarks digesting a typical project document
func BenchmarkSum(b *testing.B) {
	calculator := New()
	content := []byte(strings.Repeat("<property key=\"name\" value=\"value\"/>\n", 1000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calculator.Sum(content)
	}
}
