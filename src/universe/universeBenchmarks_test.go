package universe

import (
	"fmt"
	"testing"
)

var benchSizes = [][2]int{{64, 64}, {128, 128}, {200, 200}, {512, 256}}

func newBenchUniverse(b *testing.B, width int, height int) *Universe {
	u, err := NewSized(width, height)
	if err != nil {
		b.Fatal(err)
	}
	u.Fill(DefaultSeed)
	return u
}

func Benchmark_Tick(b *testing.B) {
	for _, s := range benchSizes {
		b.Run(fmt.Sprintf("%vx%v", s[0], s[1]), func(b *testing.B) {
			u := newBenchUniverse(b, s[0], s[1])
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.Tick()
			}
		})
	}
}

func Benchmark_Render(b *testing.B) {
	u := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = u.Render()
	}
}
