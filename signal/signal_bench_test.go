package signal

import (
	"fmt"
	"testing"
)

func BenchmarkEmit(b *testing.B) {
	for _, n := range []int{1, 16, 256} {
		b.Run(fmt.Sprintf("subs=%d", n), func(b *testing.B) {
			s := New[int]()
			sum := 0
			for range n {
				s.Connect(func(v int) { sum += v })
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := range b.N {
				s.Emit(i)
			}
		})
	}
}

func BenchmarkConnectDisconnect(b *testing.B) {
	s := New[int]()
	fn := func(int) {}

	b.ReportAllocs()
	for range b.N {
		s.Disconnect(s.Connect(fn))
	}
}
