package sim

import "testing"

func TestRandSameSeedSameStream(t *testing.T) {
	a, b := NewRand(5), NewRand(5)
	for i := 0; i < 100; i++ {
		if a.N(1000) != b.N(1000) {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}
}

func TestRandNZeroLimit(t *testing.T) {
	if got := NewRand(1).N(0); got != 0 {
		t.Errorf("N(0) = %d", got)
	}
}

func TestVariationBounds(t *testing.T) {
	r := NewRand(9)
	for i := 0; i < 1000; i++ {
		v := r.Variation(100000)
		if v < 95000 || v > 105000 {
			t.Fatalf("variation %d outside ±5%%", v)
		}
	}
}
