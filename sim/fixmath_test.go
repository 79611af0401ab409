package sim

import "testing"

func TestSinCosCardinals(t *testing.T) {
	if got := Sin(0); got != 0 {
		t.Errorf("Sin(0) = %d", got)
	}
	if got := Sin(16384); got != 65536 {
		t.Errorf("Sin(quarter) = %d", got)
	}
	if got := Sin(32768); got != 0 {
		t.Errorf("Sin(half) = %d", got)
	}
	if got := Sin(49152); got != -65536 {
		t.Errorf("Sin(three-quarter) = %d", got)
	}
	if got := Cos(0); got != 65536 {
		t.Errorf("Cos(0) = %d", got)
	}
	if got := Cos(32768); got != -65536 {
		t.Errorf("Cos(half) = %d", got)
	}
}

func TestSinOddSymmetry(t *testing.T) {
	for _, a := range []uint16{1, 100, 5000, 16000, 20000, 40000} {
		if Sin(a) != -Sin(-a) {
			t.Errorf("Sin(%d) = %d, Sin(-%d) = %d", a, Sin(a), a, Sin(-a))
		}
	}
}

func TestSinBounded(t *testing.T) {
	for a := 0; a < 65536; a += 17 {
		v := Sin(uint16(a))
		if v < -65536 || v > 65536 {
			t.Fatalf("Sin(%d) = %d out of range", a, v)
		}
	}
}

func TestAtan2Cardinals(t *testing.T) {
	cases := []struct {
		y, x int32
		want uint16
	}{
		{0, 100, 0},
		{100, 0, 16384},
		{0, -100, 32768},
		{-100, 0, 49152},
		{100, 100, 8192},
		{100, -100, 24576},
		{-100, -100, 40960},
		{-100, 100, 57344},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := Atan2(c.y, c.x); got != c.want {
			t.Errorf("Atan2(%d, %d) = %d, want %d", c.y, c.x, got, c.want)
		}
	}
}

func TestAtan2RoundTrip(t *testing.T) {
	// Walking a circle through SinCosR and back through Atan2 should
	// recover the angle within table resolution.
	for a := 0; a < 65536; a += 331 {
		p := SinCosR(uint16(a), 10000)
		got := Atan2(p.Y, p.X)
		diff := AngleDelta(got - uint16(a))
		if diff < -64 || diff > 64 {
			t.Errorf("angle %d round-tripped to %d (delta %d)", a, got, diff)
		}
	}
}

func TestSqrt64(t *testing.T) {
	cases := []struct {
		in   uint64
		want uint32
	}{
		{0, 0}, {1, 1}, {3, 1}, {4, 2}, {15, 3}, {16, 4},
		{1 << 32, 1 << 16}, {99980001, 9999},
	}
	for _, c := range cases {
		if got := Sqrt64(c.in); got != c.want {
			t.Errorf("Sqrt64(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestSqrtMonotonic(t *testing.T) {
	prev := uint32(0)
	for v := uint64(0); v < 1<<20; v += 977 {
		r := Sqrt64(v)
		if r < prev {
			t.Fatalf("Sqrt64 not monotonic at %d", v)
		}
		prev = r
	}
}

func TestHypot(t *testing.T) {
	if got := Hypot(3, 4); got != 5 {
		t.Errorf("Hypot(3,4) = %d", got)
	}
	if got := Hypot(-3, 4); got != 5 {
		t.Errorf("Hypot(-3,4) = %d", got)
	}
	if got := Hypot3(2, 3, 6); got != 7 {
		t.Errorf("Hypot3(2,3,6) = %d", got)
	}
}

func TestQuantizeFractionSumsExactly(t *testing.T) {
	// Stepping tick by tick must land exactly where one big step lands:
	// the per-tick deltas telescope.
	num := Vector3{X: 317, Y: -811, Z: 53}
	const scale, den = 997, 10007
	var acc Vector3
	var prev uint32
	for tm := uint32(100); tm <= 2000; tm += 100 {
		acc = acc.Add(QuantizeFraction(num, scale, den, tm, prev))
		prev = tm
	}
	want := QuantizeFraction(num, scale, den, 2000, 0)
	if acc != want {
		t.Errorf("accumulated %+v, want %+v", acc, want)
	}
}

func TestClip(t *testing.T) {
	if got := Clip(5, 0, 10); got != 5 {
		t.Errorf("Clip mid = %d", got)
	}
	if got := Clip(-5, 0, 10); got != 0 {
		t.Errorf("Clip low = %d", got)
	}
	if got := Clip(15, 0, 10); got != 10 {
		t.Errorf("Clip high = %d", got)
	}
}
