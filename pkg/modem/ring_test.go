package modem

import (
	"reflect"
	"testing"
)

func seq(from, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(from + i)
	}
	return out
}

func TestRingNeverExceedsCapacity(t *testing.T) {
	r := NewRing(100)
	for i := 0; i < 1000; i += 7 {
		r.Append(seq(i, 7))
		if r.Len() > 100 {
			t.Fatalf("ring grew to %d, capacity 100", r.Len())
		}
	}
}

func TestRingEvictsOldestFirst(t *testing.T) {
	r := NewRing(8)
	r.Append(seq(0, 6))
	r.Append(seq(6, 6)) // evicts samples 0..3

	if r.Start() != 4 || r.End() != 12 {
		t.Fatalf("retained [%d, %d), want [4, 12)", r.Start(), r.End())
	}
	if got := r.Range(4, 12); !reflect.DeepEqual(got, seq(4, 8)) {
		t.Errorf("contents %v, want %v", got, seq(4, 8))
	}
}

func TestRingOversizedAppendKeepsNewestTail(t *testing.T) {
	r := NewRing(4)
	r.Append(seq(0, 3))
	r.Append(seq(3, 10)) // larger than the whole ring

	if r.Start() != 9 || r.End() != 13 {
		t.Fatalf("retained [%d, %d), want [9, 13)", r.Start(), r.End())
	}
	if got := r.Range(9, 13); !reflect.DeepEqual(got, seq(9, 4)) {
		t.Errorf("contents %v, want %v", got, seq(9, 4))
	}
}

func TestRingAbsoluteIndexingSurvivesEviction(t *testing.T) {
	r := NewRing(16)
	for i := 0; i < 64; i += 4 {
		r.Append(seq(i, 4))
	}
	// samples 48..63 retained; any window inside it reads by absolute index
	if got := r.Range(50, 54); !reflect.DeepEqual(got, seq(50, 4)) {
		t.Errorf("window %v, want %v", got, seq(50, 4))
	}
}
