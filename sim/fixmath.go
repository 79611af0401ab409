package sim

import "math"

// Fixed-point conventions shared by the whole simulation:
// angles are uint16 with 65536 units per full turn, trig results are Q16
// (65536 = 1.0). All per-tick arithmetic stays in integers so that two
// peers stepping the same inputs produce bit-identical state.
const (
	GameTicksPerSec = 1000 // simulation time units per second
	Gravity         = 1000 // units/s²; must divide GameTicksPerSec evenly

	TrigScale     = 65536 // Q16 scale of Sin/Cos results
	quarterTurn   = 16384 // angle units in a quarter circle
	atanTableSize = 1024
)

// sinTable holds one quarter wave; the other quadrants are derived by
// symmetry. atanTable maps ratio i/1024 in [0,1] to atan(ratio) in angle
// units (one octant). Both are baked once at init, the same way the
// pack's other fixed-point kernels do it; after init no float math runs.
var (
	sinTable  [quarterTurn + 1]int32
	atanTable [atanTableSize + 1]uint16
)

func init() {
	for i := range sinTable {
		rad := float64(i) / 65536 * 2 * math.Pi
		sinTable[i] = int32(math.Round(math.Sin(rad) * TrigScale))
	}
	for i := range atanTable {
		ratio := float64(i) / atanTableSize
		atanTable[i] = uint16(math.Round(math.Atan(ratio) / (2 * math.Pi) * 65536))
	}
}

// Sin returns sin(a) in Q16.
func Sin(a uint16) int32 {
	r := int(a) & (quarterTurn - 1)
	switch a >> 14 {
	case 0:
		return sinTable[r]
	case 1:
		return sinTable[quarterTurn-r]
	case 2:
		return -sinTable[r]
	default:
		return -sinTable[quarterTurn-r]
	}
}

// Cos returns cos(a) in Q16.
func Cos(a uint16) int32 {
	return Sin(a + quarterTurn)
}

// SinR returns r*sin(a).
func SinR(a uint16, r int32) int32 {
	return int32(int64(r) * int64(Sin(a)) / TrigScale)
}

// CosR returns r*cos(a).
func CosR(a uint16, r int32) int32 {
	return int32(int64(r) * int64(Cos(a)) / TrigScale)
}

// SinCosR returns the point at angle a and distance r from the origin.
func SinCosR(a uint16, r int32) Vector2 {
	return Vector2{X: CosR(a, r), Y: SinR(a, r)}
}

// Atan2 returns the angle of (x, y) from the +X axis in angle units.
// The zero vector maps to 0.
func Atan2(y, x int32) uint16 {
	if x == 0 && y == 0 {
		return 0
	}
	ax, ay := x, y
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}

	var octant uint16
	if ax >= ay {
		idx := int64(ay) * atanTableSize / int64(ax)
		octant = atanTable[idx]
	} else {
		idx := int64(ax) * atanTableSize / int64(ay)
		octant = quarterTurn - atanTable[idx]
	}

	switch {
	case x >= 0 && y >= 0:
		return octant
	case x < 0 && y >= 0:
		return 2*quarterTurn - octant
	case x < 0 && y < 0:
		return 2*quarterTurn + octant
	default:
		return -octant
	}
}

// AngleDelta maps a to the signed range [-32768, 32767].
func AngleDelta(a uint16) int32 {
	return int32(int16(a))
}

// Sqrt64 returns the integer square root of v, rounded down.
func Sqrt64(v uint64) uint32 {
	if v == 0 {
		return 0
	}
	var r uint64
	bit := uint64(1) << 62
	for bit > v {
		bit >>= 2
	}
	for bit != 0 {
		if v >= r+bit {
			v -= r + bit
			r = r>>1 + bit
		} else {
			r >>= 1
		}
		bit >>= 2
	}
	return uint32(r)
}

// Sqrt32 returns the integer square root of v, rounded down.
func Sqrt32(v uint32) uint32 {
	return Sqrt64(uint64(v))
}

// Hypot returns the length of (dx, dy), rounded down.
func Hypot(dx, dy int32) int32 {
	return int32(Sqrt64(uint64(int64(dx)*int64(dx)) + uint64(int64(dy)*int64(dy))))
}

// Hypot3 returns the length of (dx, dy, dz), rounded down.
func Hypot3(dx, dy, dz int32) int32 {
	return int32(Sqrt64(uint64(int64(dx)*int64(dx)) +
		uint64(int64(dy)*int64(dy)) +
		uint64(int64(dz)*int64(dz))))
}

// Clip restricts v to [lo, hi].
func Clip(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clip64 restricts v to [lo, hi].
func Clip64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// QuantizeFraction returns num*scale*t/den - num*scale*prevT/den
// componentwise. Used to advance a position by an exact fraction of a
// step without letting rounding drift accumulate between ticks.
func QuantizeFraction(num Vector3, scale, den int64, t, prevT uint32) Vector3 {
	if den == 0 {
		den = 1
	}
	frac := func(n int32) int32 {
		nn := int64(n) * scale
		return int32(nn*int64(t)/den - nn*int64(prevT)/den)
	}
	return Vector3{X: frac(num.X), Y: frac(num.Y), Z: frac(num.Z)}
}
