package sim

// Broad-phase query radius around a projectile's position. Generous:
// the narrow phase sorts out the rest.
const ProjNeighborRange = TileUnits * 4

// Sub-tick collision times are expressed in 1/collisionScale of the
// tick's movement.
const collisionScale = 1024

type interval struct {
	begin, end int32
}

func (i interval) empty() bool {
	return i.begin >= i.end
}

func intersectIntervals(a, b interval) interval {
	if b.begin > a.begin {
		a.begin = b.begin
	}
	if b.end < a.end {
		a.end = b.end
	}
	return a
}

// collideZ returns the scaled time range during which a coordinate
// moving linearly z1 to z2 over the tick stays within ±height of zero.
func collideZ(z1, z2, height int32) interval {
	ret := interval{-1, -1}
	// Mirror so the movement is always upward; the window is symmetric.
	if z1 > z2 {
		z1, z2 = -z1, -z2
	}
	if z1 > height || z2 < -height {
		return ret
	}
	if z1 == z2 {
		return interval{0, collisionScale}
	}
	ret.begin = int32(int64(collisionScale) * int64(-height-z1) / int64(z2-z1))
	ret.end = int32(int64(collisionScale) * int64(height-z1) / int64(z2-z1))
	return ret
}

// collideCircle returns the scaled time range during which a point
// moving (x1,y1) to (x2,y2) over the tick stays within radius of zero.
func collideCircle(x1, y1, x2, y2, radius int32) interval {
	dx := int64(x2 - x1)
	dy := int64(y2 - y1)
	a := dx*dx + dy*dy
	b := int64(x1)*dx + int64(y1)*dy
	c := int64(x1)*int64(x1) + int64(y1)*int64(y1) - int64(radius)*int64(radius)

	d := b*b - a*c
	ret := interval{-1, -1}
	if d < 0 {
		return ret // misses the circle entirely
	}
	if a == 0 {
		// Not moving relative to the target.
		if c <= 0 {
			return interval{0, collisionScale}
		}
		return ret
	}

	sq := int64(Sqrt64(uint64(d)))
	ret.begin = int32((-b - sq) * collisionScale / a)
	ret.end = int32((-b + sq) * collisionScale / a)
	return ret
}

// collideShape returns the earliest scaled time in [0, collisionScale]
// at which a projectile moving prev to cur (relative to the object's
// center) is inside the object's silhouette, or -1 for no contact.
func collideShape(prev, cur Vector3, o *GameObject) int32 {
	i := collideZ(prev.Z, cur.Z, o.Height)
	if o.Rectangular {
		i = intersectIntervals(i, collideZ(prev.X, cur.X, o.HalfSize.X))
		i = intersectIntervals(i, collideZ(prev.Y, cur.Y, o.HalfSize.Y))
	} else {
		i = intersectIntervals(i, collideCircle(prev.X, prev.Y, cur.X, cur.Y, o.Radius))
	}
	if i.empty() || i.begin > collisionScale || i.end < 0 {
		return -1
	}
	if i.begin < 0 {
		return 0 // already inside at the start of the tick
	}
	return i.begin
}

// resolveCollision finds the earliest thing the projectile hit during
// this tick, snaps the projectile back to that instant and flips it to
// the impact state. Reports whether anything was hit, and returns the
// child projectile when the round penetrated a droid.
func (s *Simulation) resolveCollision(p *Projectile, currentDistance int32) (*Projectile, bool) {
	st := p.Stats
	closestTime := NoHit
	var closestObj *GameObject

	buf := s.world.Neighbors(p.Pos.X, p.Pos.Y, ProjNeighborRange, s.queryBuf[:0])
	s.queryBuf = buf[:0]

	for _, obj := range buf {
		if !obj.Alive() || obj == p.Source || p.inDamaged(obj) {
			continue
		}
		if obj.Kind == ObjFeature && !obj.Damageable {
			continue
		}
		// Shots pass through allies unless the ally was the explicit
		// target.
		if obj != p.Dest && s.world.Allied(obj.Player, p.Player) {
			continue
		}
		// Anti-air rounds pass over buildings and anything else on the
		// ground. The reverse direction is not filtered here: a ground
		// round crossing a flying droid still connects.
		if !obj.Flying() && st.Surface&ShootGround == 0 {
			continue
		}

		objPrev := obj.Pos
		if obj.Kind == ObjDroid {
			objPrev = obj.PrevPos
		}
		ct := collideShape(p.PrevPos.Sub(objPrev), p.Pos.Sub(obj.Pos), obj)
		if ct < 0 {
			continue
		}
		when := p.PrevTime + uint32(int64(p.Time-p.PrevTime)*int64(ct)/collisionScale)
		if when < closestTime {
			closestTime = when
			closestObj = obj
		}
	}

	if ground := s.world.Terrain.LineIntersect(p.PrevPos, p.Pos, p.Time-p.PrevTime); ground != NoHit {
		if when := p.PrevTime + ground; when < closestTime {
			closestTime = when
			closestObj = nil
		}
	}

	if closestTime == NoHit {
		return nil, false
	}

	// Snap back to the instant of contact. Keep the time strictly
	// inside the current tick so the reaper's accounting holds.
	p.Pos = interpolatePos(p, closestTime)
	p.Time = closestTime
	if floor := s.time - s.tickLen + 1; p.Time < floor {
		p.Time = floor
	}
	if p.Time == p.PrevTime {
		p.PrevTime--
	}
	s.setDestination(p, closestObj)

	var child *Projectile
	if closestObj != nil && closestObj.Kind == ObjDroid && st.Penetrate &&
		int64(currentDistance)*4 < int64(st.LongRange(p.Player))*5 {
		// Punched through; the round continues as a fresh projectile
		// that can never hit this droid again.
		p.damaged = append(p.damaged, closestObj)
		child = s.sendProjectile(st, nil, p, p.Player, p.Dst, nil, true, -1, 0, 0)
	}

	p.State = StateImpact
	return child, true
}
