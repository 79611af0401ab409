package sim

// ProjState tracks a projectile through its life.
type ProjState uint8

const (
	StateInFlight ProjState = iota
	StateImpact
	StatePostImpact
	StateInactive
)

// Projectile IDs live in their own range so they can never collide with
// world object IDs in logs or sync records.
const trackerIDBase = 0xdead0000

// Line-of-fire clearance added above the ground when aiming at a bare
// map position.
const LineOfFireMinimum = 5

// Projectile is one shot in the air, or the lingering splash zone it
// leaves behind.
type Projectile struct {
	ID     uint32
	Player int
	Stats  *WeaponStats
	State  ProjState

	Src Vector3 // launch position
	Dst Vector3 // aim position, re-aimed every tick while homing
	Pos Vector3

	Direction uint16
	Pitch     uint16
	Roll      uint16

	// Initial velocity split for ballistic flight, units/s.
	VXY int32
	VZ  int32

	Born     uint32
	Time     uint32
	PrevTime uint32
	PrevPos  Vector3
	DiedAt   uint32

	Source *GameObject // who fired it; nil once the shooter dies
	Dest   *GameObject // intended victim; nil for position shots

	// Objects already hit, so penetrating rounds and lingering splash
	// never damage the same object twice.
	damaged []*GameObject

	// Damage promised to Dest while in flight, undone on impact.
	expectedDamage int32

	// Exposed silhouette height of the target at fire time.
	partVisible int32

	Visible bool
}

func (p *Projectile) inDamaged(o *GameObject) bool {
	for _, d := range p.damaged {
		if d == o {
			return true
		}
	}
	return false
}

// setDestination points the projectile at a new victim, moving the
// expected-damage registration atomically from the old one.
func (s *Simulation) setDestination(p *Projectile, o *GameObject) {
	addExpectedDamage(p.Dest, -p.expectedDamage)
	p.Dest = o
	addExpectedDamage(p.Dest, p.expectedDamage)
}

// Fire launches a projectile from attacker at the target object, or at
// the bare position when targetObj is nil. forceVisible shows the shot
// on every display regardless of visibility. Returns false only when
// the weapon stats are unusable.
func (s *Simulation) Fire(stats *WeaponStats, attacker *GameObject, player int, target Vector3, targetObj *GameObject, forceVisible bool, weaponSlot int) bool {
	return s.FireAngled(stats, attacker, player, target, targetObj, forceVisible, weaponSlot, 0, s.time)
}

// FireAngled is Fire with an explicit minimum launch pitch for indirect
// weapons and an explicit fire time, which may lie in the current tick
// to spread a salvo out.
func (s *Simulation) FireAngled(stats *WeaponStats, attacker *GameObject, player int, target Vector3, targetObj *GameObject, forceVisible bool, weaponSlot int, minPitch uint16, fireTime uint32) bool {
	p := s.sendProjectile(stats, attacker, nil, player, target, targetObj, forceVisible, weaponSlot, minPitch, fireTime)
	if p == nil {
		return false
	}
	s.projectiles = append(s.projectiles, p)
	return true
}

// sendProjectile builds a projectile ready for its first update. When
// parent is non-nil the new projectile continues the parent's flight
// after a penetration and inherits its origin, age and hit list.
func (s *Simulation) sendProjectile(stats *WeaponStats, attacker *GameObject, parent *Projectile, player int, target Vector3, targetObj *GameObject, forceVisible bool, weaponSlot int, minPitch uint16, fireTime uint32) *Projectile {
	if !assert(stats != nil, "firing with nil weapon stats") {
		return nil
	}
	if !assert(player >= 0 && player < MaxPlayers, "weapon %q: firing player out of range: %d", stats.Name, player) {
		return nil
	}
	if targetObj != nil && !assert(targetObj.Alive(), "weapon %q: firing at a dead object", stats.Name) {
		return nil
	}
	_ = weaponSlot // reserved for turret muzzle offsets

	s.trackerID++
	p := &Projectile{
		ID:     trackerIDBase + s.trackerID,
		Player: player,
		Stats:  stats,
		State:  StateInFlight,
	}

	if attacker != nil {
		p.Src = attacker.Pos
		p.Src.Z += attacker.Height
	} else {
		p.Src = target
	}
	p.Pos = p.Src
	p.PrevPos = p.Src
	p.Dst = target

	if parent != nil {
		// Continue the parent's trajectory: same origin, same age, so
		// range and lead calculations carry over unchanged.
		p.Born = parent.Born
		p.Src = parent.Src
		p.Pos = parent.Pos
		p.PrevPos = parent.Pos
		p.PrevTime = parent.Time
		p.Time = s.time
		if p.PrevTime == p.Time {
			p.PrevTime--
		}
		p.Source = parent.Source
		p.damaged = append(p.damaged, parent.damaged...)
	} else {
		p.Born = fireTime
		p.PrevTime = fireTime
		p.Time = fireTime
		p.Source = attacker
	}

	if targetObj != nil {
		// Aim somewhere on the target's exposed silhouette rather than
		// always at its feet.
		height := targetObj.Height
		if height < 1 {
			height = 1
		}
		p.Dst.Z = targetObj.Pos.Z + int32(s.rng.N(uint32(height)))
		p.partVisible = height
	} else {
		p.Dst.Z = target.Z + LineOfFireMinimum
	}

	p.expectedDamage = GuessFutureDamage(stats, player, targetObj)
	s.setDestination(p, targetObj)

	delta := p.Dst.Sub(p.Src)
	groundDistance := delta.XY().Length()
	p.Direction = Atan2(delta.Y, delta.X)

	if stats.Direct() {
		p.Pitch = Atan2(delta.Z, groundDistance)
	} else {
		vxy, vz, _ := CalcIndirectVelocities(groundDistance, delta.Z, stats.FlightSpeed, minPitch, s.rng)
		p.VXY = vxy
		p.VZ = vz
		p.Pitch = Atan2(vz, vxy)
	}

	if forceVisible || s.gfxVisible(p) {
		p.Visible = true
		if stats.FireSound != NoSound {
			at := p.Pos
			if p.Source != nil {
				at = p.Source.Pos
			}
			s.effects.PlaySound(at, stats.FireSound, p.Time)
		}
	}

	s.clog.fired(s.time, p, targetObj)
	return p
}
