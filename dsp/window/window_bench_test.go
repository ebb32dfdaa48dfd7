package window

import (
	"strconv"
	"testing"
)

func BenchmarkFill(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		dst := make([]float64, n)
		b.Run("hann/"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Fill(TypeHann, dst)
			}
		})
	}
}
