package book

import "testing"

func BenchmarkAddResting(b *testing.B) {
	bk := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Spread over 64 prices so levels stay hot but the tree is real.
		bk.Add(order(uint64(i+1), 1, Bid, int64(100+i%64), 10))
	}
}

func BenchmarkAddMatching(b *testing.B) {
	bk := New()
	for i := 0; i < b.N; i++ {
		bk.Add(order(uint64(i+1), 1, Ask, 100, 10))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bk.Add(order(uint64(b.N+i+1), 2, Bid, 100, 10))
	}
}

func BenchmarkCancel(b *testing.B) {
	bk := New()
	for i := 0; i < b.N; i++ {
		bk.Add(order(uint64(i+1), 1, Bid, int64(100+i%64), 10))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bk.Cancel(uint64(i + 1))
	}
}
