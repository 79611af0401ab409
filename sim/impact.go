package sim

// damageIntent carries one pending application of damage from a
// projectile to a target through the bookkeeping pipeline. Built and
// consumed within a single resolution call, never stored.
type damageIntent struct {
	proj   *Projectile
	target *GameObject

	damage    int32
	class     WeaponClass
	subclass  WeaponSubclass
	when      uint32
	perSecond bool
	minDamage int32
	emp       bool // came from the EMP-radius pass of an area sweep
}

// impact applies the direct hit, triggers the effect burst, then either
// retires the projectile or parks it in the post-impact state for its
// splash and burn windows.
func (s *Simulation) impact(p *Projectile) {
	st := p.Stats
	if !assert(st != nil, "projectile %#x impacting with nil stats", p.ID) {
		p.State = StateInactive
		return
	}
	up := st.upgrade(p.Player)
	s.lastAttacker = p.Source

	show := s.gfxVisible(p)
	if show {
		if st.ImpactSound != NoSound {
			s.effects.PlaySound(p.Pos, st.ImpactSound, p.Time)
		}
		if up.PeriodicalDamageRadius != 0 && up.PeriodicalDamageTime != 0 {
			ground := Vector3{p.Pos.X, p.Pos.Y, s.world.Terrain.Height(p.Pos.X, p.Pos.Y)}
			s.effects.AddEffect(ground, EffectGroundFire, p.Time)
		}
	}

	if p.Dest == nil {
		// Hit the ground or ran out of range.
		if show {
			s.effects.AddEffect(p.Pos, EffectExplosion, p.Time)
			if st.Surface&ShootInAir != 0 && st.Surface&ShootGround == 0 {
				// Anti-air burst in open sky.
				s.effects.AddEffect(p.Pos, EffectDriftingSmoke, p.Time)
			}
		}
	} else {
		if p.Dest.Kind == ObjFeature && !p.Dest.Damageable {
			// Scenery soaks the shot without a mark.
			p.State = StateInactive
			return
		}
		if show {
			s.effects.AddEffect(p.Pos, EffectExplosion, p.Time)
		}
		damage := CalcDamage(st.WeaponDamage(p.Player), st.Effect, p.Dest)
		rel := s.objectDamage(damageIntent{
			proj:      p,
			target:    p.Dest,
			damage:    damage,
			class:     st.Class,
			subclass:  st.Subclass,
			when:      p.Time,
			minDamage: up.MinimumDamage,
		})
		if rel >= 0 {
			// Survived; never hit it again with this round.
			p.damaged = append(p.damaged, p.Dest)
		}
	}

	// The promised damage has been delivered (or foregone). Clear the
	// registration without losing the destination reference.
	dest := p.Dest
	s.setDestination(p, nil)
	p.expectedDamage = 0
	s.setDestination(p, dest)

	if up.Radius == 0 && up.PeriodicalDamageTime == 0 {
		p.State = StateInactive
		return
	}

	p.State = StatePostImpact
	p.Born = s.time

	if up.Radius > 0 || up.EMPRadius > 0 {
		// Splash around the droid actually hit rather than the shell,
		// so a last-moment swerve cannot drag the blast off-target.
		center := p.Pos
		if p.Dest != nil && p.Dest.Kind == ObjDroid {
			center = p.Dest.Pos
		}
		if up.EMPRadius > 0 && st.Subclass == SubEMP {
			s.radiusSweep(p, center, up.EMPRadius, true)
		}
		if up.Radius > 0 {
			s.radiusSweep(p, center, up.Radius, false)
		}
	}
}

// radiusSweep deals splash damage to everything in the blast radius,
// skipping the direct victim.
func (s *Simulation) radiusSweep(p *Projectile, center Vector3, radius int32, emp bool) {
	st := p.Stats
	up := st.upgrade(p.Player)

	buf := s.world.Neighbors(center.X, center.Y, radius, s.queryBuf[:0])
	s.queryBuf = buf[:0]

	for _, obj := range buf {
		if !obj.Alive() || obj == p.Dest {
			continue
		}
		if obj.Kind == ObjFeature && !obj.Damageable {
			continue
		}
		if st.NoFriendlyFire && p.Source != nil && obj.Player == p.Source.Player {
			continue
		}
		if obj.Flying() {
			if st.Surface&ShootInAir == 0 {
				continue
			}
		} else if st.Surface&ShootGround == 0 {
			continue
		}
		// Droids get the true spherical test; structures and features
		// are tall enough that ground distance decides.
		if obj.Kind == ObjDroid {
			if !InSphere(obj.Pos, center, radius) {
				continue
			}
		} else if Hypot(obj.Pos.X-center.X, obj.Pos.Y-center.Y) > radius {
			continue
		}

		// Both passes deal the splash damage figure; the EMP pass only
		// widens the reach and flags the application.
		damage := CalcDamage(st.RadiusDamage(p.Player), st.Effect, obj)
		s.objectDamage(damageIntent{
			proj:      p,
			target:    obj,
			damage:    damage,
			class:     st.Class,
			subclass:  st.Subclass,
			when:      p.Time,
			minDamage: up.MinimumDamage,
			emp:       emp,
		})
	}
}

// postImpact keeps a spent projectile alive while its blast radius and
// burn patch are still meaningful, applying periodical damage each tick.
func (s *Simulation) postImpact(p *Projectile) {
	st := p.Stats
	up := st.upgrade(p.Player)

	age := s.time - p.Born
	if age > st.RadiusLife && age > up.PeriodicalDamageTime {
		p.State = StateInactive
		return
	}
	if up.PeriodicalDamageTime > 0 && age <= up.PeriodicalDamageTime {
		s.checkPeriodicalDamage(p)
	}
}

// checkPeriodicalDamage burns everything hostile standing in the patch.
func (s *Simulation) checkPeriodicalDamage(p *Projectile) {
	st := p.Stats
	up := st.upgrade(p.Player)
	s.lastAttacker = p.Source

	// Spread the application across the tick rather than pinning every
	// burn to the tick edge.
	when := s.time - s.tickLen/2 + 1

	buf := s.world.Neighbors(p.Pos.X, p.Pos.Y, up.PeriodicalDamageRadius, s.queryBuf[:0])
	s.queryBuf = buf[:0]

	for _, obj := range buf {
		if !obj.Alive() {
			continue
		}
		if s.world.Allied(p.Player, obj.Player) {
			continue
		}
		if obj.Flying() {
			continue // flames don't reach
		}
		if obj.Kind == ObjFeature && !obj.Damageable {
			continue
		}
		if Hypot(obj.Pos.X-p.Pos.X, obj.Pos.Y-p.Pos.Y) > up.PeriodicalDamageRadius {
			continue
		}

		damage := CalcDamage(up.PeriodicalDamage, st.PeriodicalEffect, obj)
		s.objectDamage(damageIntent{
			proj:      p,
			target:    obj,
			damage:    damage,
			class:     st.PeriodicalClass,
			subclass:  st.PeriodicalSubclass,
			when:      when,
			perSecond: true,
			minDamage: up.MinimumDamage,
		})
	}
}

// objectDamage routes one damage application: applies it, logs it, and
// grows the shooter's experience and kill count when warranted. Returns
// the relative damage as reported by GameObject.Damage.
func (s *Simulation) objectDamage(d damageIntent) int32 {
	rel := d.target.Damage(d.damage, d.class, d.subclass, d.when, d.perSecond, d.minDamage, d.emp, s.tickLen)

	s.clog.damaged(s.time, d.proj, d.target, d.damage, rel < 0)

	if s.shouldGainExperience(d.proj) {
		gain := int64(abs32(rel)) * int64(s.expGain[d.proj.Source.Player]) / 100
		s.awardExperience(d.proj, gain)
		if rel < 0 {
			s.awardKill(d.proj, d.target)
		}
	}
	return rel
}

// shouldGainExperience reports whether the shooter earns anything from
// this projectile's damage: a live shooter, a non-scenery target and no
// friendly fire.
func (s *Simulation) shouldGainExperience(p *Projectile) bool {
	if p.Source == nil {
		return false
	}
	if p.Dest != nil && p.Dest.Kind == ObjFeature {
		return false
	}
	if p.Dest != nil && p.Dest.Player == p.Source.Player {
		return false // friendly fire earns nothing
	}
	return true
}

// Experience from one hit can never exceed about twice a full kill.
const maxExperienceGain = 65536 * 21 / 10

// awardExperience credits the shooter, its commander and any droid
// giving it fire support. Structure kills credit the owning player's
// command designator when it is on this target.
func (s *Simulation) awardExperience(p *Projectile, gain int64) {
	src := p.Source
	switch src.Kind {
	case ObjDroid:
		if p.Dest != nil && p.Dest.Kind == ObjDroid && s.multiplayer {
			gain = gain * int64(qualityFactor(src, p.Dest)) / 65536
		}
		if !assert(gain < maxExperienceGain, "experience gain out of range: %d", gain) {
			return
		}
		src.Experience += gain
		if src.Commander.Alive() {
			src.Commander.Experience += gain
		}
		if src.FireSupport.Alive() && src.FireSupport.Kind == ObjDroid {
			src.FireSupport.Experience += gain
		}
	case ObjStructure:
		if d := s.world.DesignatorAttacking(src.Player, p.Dest); d != nil {
			d.Experience += gain
		}
	}
}

// awardKill bumps kill counters the same way awardExperience credits
// experience. victim is the object that actually died, which for splash
// and burn kills need not be the projectile's destination.
func (s *Simulation) awardKill(p *Projectile, victim *GameObject) {
	s.clog.killed(s.time, p, victim)

	src := p.Source
	switch src.Kind {
	case ObjDroid:
		src.Kills++
		if src.Commander.Alive() {
			src.Commander.Kills++
		}
	case ObjStructure:
		if d := s.world.DesignatorAttacking(src.Player, p.Dest); d != nil {
			d.Kills++
		}
	}
}

// qualityFactor scales droid-vs-droid experience by how the victim's
// build cost and body points compare to the attacker's, as a Q16 factor
// clamped to [0.5, 2].
func qualityFactor(attacker, victim *GameObject) uint32 {
	if attacker.Power <= 0 || attacker.Points <= 0 {
		return 65536 / 2
	}
	powerRatio := Clip64(int64(65536)*int64(victim.Power)/int64(attacker.Power), 65536/2, 65536*2)
	pointsRatio := Clip64(int64(65536)*int64(victim.Points)/int64(attacker.Points), 65536/2, 65536*2)
	return uint32((powerRatio + pointsRatio) / 2)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
