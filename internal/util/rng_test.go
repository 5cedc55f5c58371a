package util

import (
	"testing"

	"pgregory.net/rapid"
)

func TestStreamSameSeedSameSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint32().Draw(t, "seed")
		a, b := NewStream(seed), NewStream(seed)
		for i := 0; i < 64; i++ {
			x, y := a.Next(), b.Next()
			if x != y {
				t.Fatalf("draw %d differs: %v vs %v", i, x, y)
			}
			if x < 0 || x >= 1 {
				t.Fatalf("draw %d out of range: %v", i, x)
			}
		}
	})
}

func TestStreamKnownValue(t *testing.T) {
	// mulberry32(0) first draw, as produced by the browser client.
	s := NewStream(0)
	got := s.Next()
	if got < 0.26642 || got > 0.26643 {
		t.Fatalf("first draw for seed 0 = %v, want ~0.266424", got)
	}
}

func TestStreamDifferentSeedsDiverge(t *testing.T) {
	a, b := NewStream(1), NewStream(2)
	same := 0
	for i := 0; i < 16; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same == 16 {
		t.Fatalf("streams for seeds 1 and 2 are identical")
	}
}

func TestLCGChoiceStaysInRange(t *testing.T) {
	items := []string{"a", "b", "c"}
	l := NewLCG(42)
	for i := 0; i < 100; i++ {
		got := l.Choice(items)
		if got != "a" && got != "b" && got != "c" {
			t.Fatalf("unexpected choice %q", got)
		}
	}
	if NewLCG(1).Choice(nil) != "" {
		t.Fatalf("choice on empty list should be empty")
	}
}

func TestLCGFirstStep(t *testing.T) {
	l := NewLCG(0)
	want := float64(uint32(1013904223)) / 4294967296.0
	if got := l.Float64(); got != want {
		t.Fatalf("first draw = %v, want %v", got, want)
	}
}
