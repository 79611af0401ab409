package sim

import "testing"

func TestCalcIndirectVelocitiesFlatGround(t *testing.T) {
	rng := NewRand(7)
	vx, vz, ft := CalcIndirectVelocities(1000, 0, 2000, 0, rng)
	if ft < 1 {
		t.Fatalf("flight time %d", ft)
	}
	if vx <= 0 {
		t.Errorf("vx = %d, want positive", vx)
	}
	if vz < 0 {
		t.Errorf("vz = %d, want non-negative", vz)
	}
	// Horizontal speed can never exceed the nominal speed plus the
	// random variation margin.
	if vx > 2000*105/100+1 {
		t.Errorf("vx = %d exceeds launch speed", vx)
	}
	// The parabola must land at the target: z(t) = 0 up to rounding.
	landZ := (int64(vz) - int64(ft)*Gravity/(2*GameTicksPerSec)) * int64(ft) / GameTicksPerSec
	if landZ < -int64(ft) || landZ > int64(ft) {
		t.Errorf("lands at z = %d after %dms", landZ, ft)
	}
}

func TestCalcIndirectVelocitiesOutOfReach(t *testing.T) {
	// Far out of range for this speed: the solver degrades to the
	// flattest reachable arc instead of failing.
	rng := NewRand(7)
	vx, vz, ft := CalcIndirectVelocities(2000, 0, 600, 0, rng)
	if ft < 1 {
		t.Fatalf("flight time %d", ft)
	}
	if vx <= 0 || vz < 0 {
		t.Errorf("vx = %d, vz = %d", vx, vz)
	}
}

func TestCalcIndirectVelocitiesMinPitch(t *testing.T) {
	// 45 degree minimum on a flat shot forces the steep solution,
	// which ignores random variation entirely.
	rng := NewRand(7)
	vx, vz, ft := CalcIndirectVelocities(2000, 0, 2000, 8192, rng)
	if got := int32(Atan2(vz, vx)); got < 8192 {
		t.Errorf("pitch %d below minimum", got)
	}
	if vx != 1000 || vz != 1000 || ft != 2000 {
		t.Errorf("vx, vz, t = %d, %d, %d; want 1000, 1000, 2000", vx, vz, ft)
	}
}

func TestCalcIndirectVelocitiesSteepDrop(t *testing.T) {
	// Target far below: launching downward is replaced by a flat
	// launch that falls the rest of the way.
	rng := NewRand(7)
	_, vz, ft := CalcIndirectVelocities(100, -10000, 300, 0, rng)
	if vz != 0 {
		t.Errorf("vz = %d, want 0", vz)
	}
	if ft < 1 {
		t.Fatalf("flight time %d", ft)
	}
}

func TestCalcIndirectVelocitiesDeterministic(t *testing.T) {
	a1, b1, c1 := CalcIndirectVelocities(1500, 300, 800, 0, NewRand(42))
	a2, b2, c2 := CalcIndirectVelocities(1500, 300, 800, 0, NewRand(42))
	if a1 != a2 || b1 != b2 || c1 != c2 {
		t.Errorf("same seed diverged: (%d,%d,%d) vs (%d,%d,%d)", a1, b1, c1, a2, b2, c2)
	}
}
