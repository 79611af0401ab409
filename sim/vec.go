package sim

// Vector2 is an integer point or offset in world units.
type Vector2 struct {
	X, Y int32
}

// Vector3 is an integer point or offset in world units, Z up.
type Vector3 struct {
	X, Y, Z int32
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// XY projects onto the ground plane.
func (v Vector3) XY() Vector2 {
	return Vector2{v.X, v.Y}
}

// Length returns the vector's length, rounded down.
func (v Vector2) Length() int32 {
	return Hypot(v.X, v.Y)
}

// Length returns the vector's length, rounded down.
func (v Vector3) Length() int32 {
	return Hypot3(v.X, v.Y, v.Z)
}

// MulDiv scales the vector by num/den with 64-bit intermediates.
func (v Vector3) MulDiv(num, den int64) Vector3 {
	if den == 0 {
		den = 1
	}
	return Vector3{
		X: int32(int64(v.X) * num / den),
		Y: int32(int64(v.Y) * num / den),
		Z: int32(int64(v.Z) * num / den),
	}
}

// InSphere reports whether p lies within radius of center.
func InSphere(p, center Vector3, radius int32) bool {
	d := p.Sub(center)
	dist2 := int64(d.X)*int64(d.X) + int64(d.Y)*int64(d.Y) + int64(d.Z)*int64(d.Z)
	return dist2 <= int64(radius)*int64(radius)
}
