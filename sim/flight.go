package sim

// Homing rounds try to hold this band above the terrain while cruising,
// in world units.
const (
	HomingHeightMin = 200
	HomingHeightMax = 450
)

// CalcIndirectVelocities solves the launch of a ballistic shot covering
// dx ground units and dz height units at nominal speed v, returning the
// horizontal and vertical velocity split (units/s) and the flight time
// in game time units. The solution is randomly varied by a few percent
// so salvos spread, pitched up to at least minPitch, and degrades to
// the flattest reachable arc when the target is strictly out of reach.
func CalcIndirectVelocities(dx, dz, v int32, minPitch uint16, rng *Rand) (vx, vz, t int32) {
	const g = int64(Gravity)

	// a: twice the specific launch energy left over at the target
	// height. b: the term the discriminant compares it against.
	a := rng.Variation(int64(v)*int64(v)) - int64(dz)*g
	b := g * g * (int64(dx)*int64(dx) + int64(dz)*int64(dz))
	c := a*a - b
	if c < 0 {
		// Not enough speed to reach the target. Closest approach is
		// the arc with a zero discriminant.
		a = int64(Sqrt64(uint64(b))) + 1
		c = a*a - b
	}

	t64 := int64(Sqrt64(uint64(2*(a-int64(Sqrt64(uint64(c))))))) * (GameTicksPerSec / g)
	if t64 < 1 {
		t64 = 1
	}
	vx64 := int64(dx) * GameTicksPerSec / t64
	vz64 := int64(dz)*GameTicksPerSec/t64 + g*t64/(2*GameTicksPerSec)

	if vz64 < 0 {
		// Pointing downhill steeply enough that the "arc" would launch
		// downward. Drop the shot flat and let gravity do the rest.
		t64 = int64(Sqrt64(uint64(-2 * int64(dz) * GameTicksPerSec * GameTicksPerSec / g)))
		if t64 < 1 {
			t64 = 1
		}
		vx64 = int64(dx) * GameTicksPerSec / t64
		vz64 = 0
	} else if int32(Atan2(int32(vz64), int32(vx64))) < int32(minPitch) {
		// Steepen to the minimum pitch, plus however long the extra
		// height takes to fall.
		tan := int64(Sin(minPitch)) * TrigScale / int64(Cos(minPitch))
		rise := int64(dx)*tan - int64(dz)*TrigScale
		if rise < 0 {
			rise = 0
		}
		t64 = int64(Sqrt64(uint64(2 * rise * GameTicksPerSec * GameTicksPerSec / (g * TrigScale))))
		if t64 < 1 {
			t64 = 1
		}
		vx64 = int64(dx) * GameTicksPerSec / t64
		vz64 = tan * vx64 / TrigScale
	}

	return int32(vx64), int32(vz64), int32(t64)
}

// inFlight advances one in-flight projectile by one tick: moves it
// along its flight model, then checks collisions, range expiry and
// trail effects. Returns the child spawned if the round penetrated a
// droid and kept going.
func (s *Simulation) inFlight(p *Projectile) *Projectile {
	st := p.Stats
	if !assert(st != nil, "projectile %#x in flight with nil stats", p.ID) {
		p.State = StateInactive
		return nil
	}

	timeSoFar := s.time - p.Born
	p.Time = s.time
	deltaTime := p.Time - p.PrevTime

	var currentDistance int32
	switch st.Movement {
	case MMDirect:
		delta := p.Dst.Sub(p.Src)
		targetDistance := delta.XY().Length()
		if targetDistance < 1 {
			targetDistance = 1
		}
		currentDistance = int32(int64(timeSoFar) * int64(st.FlightSpeed) / GameTicksPerSec)
		p.Pos = p.Src.Add(delta.MulDiv(int64(currentDistance), int64(targetDistance)))

	case MMIndirect:
		delta := p.Dst.Sub(p.Src)
		delta.Z = int32((int64(p.VZ) - int64(timeSoFar)*int64(Gravity)/(2*GameTicksPerSec)) * int64(timeSoFar) / GameTicksPerSec)
		targetDistance := delta.XY().Length()
		if targetDistance < 1 {
			targetDistance = 1
		}
		currentDistance = int32(int64(timeSoFar) * int64(p.VXY) / GameTicksPerSec)
		p.Pos = p.Src.Add(delta.MulDiv(int64(currentDistance), int64(targetDistance)))
		p.Pos.Z = p.Src.Z + delta.Z
		p.Pitch = Atan2(p.VZ-int32(int64(timeSoFar)*int64(Gravity)/GameTicksPerSec), p.VXY)

	case MMHomingDirect, MMHomingIndirect:
		currentDistance = s.homingStep(p, timeSoFar, deltaTime)
	}

	child, hit := s.resolveCollision(p, currentDistance)
	if hit {
		return child
	}

	// Past extended max range with nothing hit: declare a miss.
	if int64(currentDistance)*100 >= int64(st.LongRange(p.Player))*int64(st.DistanceExtension) {
		p.State = StateImpact
		s.setDestination(p, nil)
		return nil
	}

	s.flightEffects(p)
	return nil
}

// homingStep re-aims a homing projectile at its (possibly moving)
// victim and advances it one tick. Returns the distance flown so far.
func (s *Simulation) homingStep(p *Projectile, timeSoFar, deltaTime uint32) int32 {
	st := p.Stats
	terr := s.world.Terrain

	if p.Dest != nil {
		p.Dst = p.Dest.Pos
		if st.Movement == MMHomingDirect {
			// Aim at the middle of the exposed silhouette.
			p.Dst.Z += p.Dest.Height - p.partVisible/2
		} else {
			p.Dst.Z += p.Dest.Height / 2
		}

		if p.Dest.Kind == ObjDroid && st.FlightSpeed > 0 {
			// Lead the target by its predicted travel over our
			// remaining flight time, trusting the prediction less the
			// faster it claims to move.
			toGo := p.Dst.Sub(p.Pos).XY().Length()
			flightTime := int64(toGo) * GameTicksPerSec / int64(st.FlightSpeed)
			predSpeed := p.Dest.Speed
			if limit := st.FlightSpeed * 3 / 4; predSpeed > limit {
				predSpeed = limit
			}
			lead := SinCosR(p.Dest.Heading, int32(int64(predSpeed)*flightTime/GameTicksPerSec))
			p.Dst.X += lead.X
			p.Dst.Y += lead.Y
		}
		p.Dst.X = Clip(p.Dst.X, 0, terr.WorldWidth()-1)
		p.Dst.Y = Clip(p.Dst.Y, 0, terr.WorldHeight()-1)
	}

	if st.Movement == MMHomingIndirect {
		if p.Dest == nil {
			// Lost the target: drop into the ground where we are.
			p.Dst.Z = terr.Height(p.Pos.X, p.Pos.Y) - 1
		}
		horiz := p.Dst.Sub(p.Pos).XY().Length()
		ahead := SinCosR(Atan2(p.Dst.Y-p.Pos.Y, p.Dst.X-p.Pos.X), int32(int64(st.FlightSpeed)*2*int64(deltaTime)/GameTicksPerSec))
		ground := terr.Height(p.Pos.X, p.Pos.Y)
		if h := terr.Height(Clip(p.Pos.X+ahead.X, 0, terr.WorldWidth()-1), Clip(p.Pos.Y+ahead.Y, 0, terr.WorldHeight()-1)); h > ground {
			ground = h
		}
		cruiseMin := int32(HomingHeightMin)
		if q := horiz / 4; q < cruiseMin {
			cruiseMin = q
		}
		desiredMin := ground + cruiseMin
		desiredMax := ground + HomingHeightMax
		if p.Dst.Z > desiredMax {
			desiredMax = p.Dst.Z
		}
		heightError := p.Pos.Z - Clip(p.Pos.Z, desiredMin, desiredMax)
		p.Dst.Z -= int32(int64(horiz) * int64(heightError) * 2 / HomingHeightMin)
	}

	delta := p.Dst.Sub(p.Pos)
	targetDistance := delta.Length()
	if targetDistance < 1 {
		targetDistance = 1
	}
	if p.Dest == nil && targetDistance < 10000 && st.Movement == MMHomingDirect {
		// Lost the target just short of it: keep flying straight past
		// the old aim point instead of orbiting it.
		p.Dst = p.Pos.Add(delta.MulDiv(10, 1))
	}
	currentDistance := int32(int64(timeSoFar) * int64(st.FlightSpeed) / GameTicksPerSec)

	step := QuantizeFraction(delta, int64(st.FlightSpeed), GameTicksPerSec*int64(targetDistance), p.Time, p.PrevTime)

	if st.Movement == MMHomingIndirect && p.Dest != nil {
		for tries := 0; tries < 10; tries++ {
			hit := s.world.Terrain.LineIntersect(p.PrevPos, p.Pos.Add(step), uint32(step.Length()))
			if hit >= uint32(targetDistance-1) {
				break
			}
			// Would fly into a hill; aim higher.
			p.Dst.Z += p.Dst.Sub(p.Pos).XY().Length()
			delta = p.Dst.Sub(p.Pos)
			targetDistance = delta.Length()
			if targetDistance < 1 {
				targetDistance = 1
			}
			step = QuantizeFraction(delta, int64(st.FlightSpeed), GameTicksPerSec*int64(targetDistance), p.Time, p.PrevTime)
		}
	}

	p.Pos = p.Pos.Add(step)
	p.Direction = Atan2(delta.Y, delta.X)
	p.Pitch = Atan2(delta.Z, delta.XY().Length())
	return currentDistance
}

// flightEffects emits trail effects along the distance covered this
// tick, one every 32 time units, when the projectile is visible on the
// local display.
func (s *Simulation) flightEffects(p *Projectile) {
	if !s.gfxVisible(p) {
		return
	}
	for et := (p.PrevTime + 31) &^ 31; et < p.Time; et += 32 {
		pos := interpolatePos(p, et)
		switch p.Stats.Subclass {
		case SubFlame:
			s.effects.AddEffect(pos, EffectFlameTrail, et)
		case SubEMP, SubLaser:
			s.effects.AddEffect(pos, EffectLaserBurst, et)
		case SubRocket, SubMissile:
			s.effects.AddEffect(pos, EffectSmokeTrail, et)
		default:
			if !p.Stats.Direct() {
				s.effects.AddEffect(pos, EffectSmokeTrail, et)
			}
		}
	}
}
