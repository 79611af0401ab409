package sim

// Default tick length. One tenth of a second keeps the parabola math
// exact: Gravity divides GameTicksPerSec evenly.
const DefaultTickLength = GameTicksPerSec / 10

// Simulation owns every live projectile and advances them in lockstep.
// All mutation happens on the caller's goroutine; given the same seed,
// the same world and the same Fire calls, two Simulations produce
// identical Checksum streams.
type Simulation struct {
	world   *World
	rng     *Rand
	effects EffectSink
	clog    *CombatLog

	projectiles []*Projectile
	spawned     []*Projectile
	iterCursor  int

	trackerID uint32
	time      uint32
	tickLen   uint32

	multiplayer bool
	localPlayer int

	expGain      [MaxPlayers]int32
	lastAttacker *GameObject

	queryBuf []*GameObject
}

// NewSimulation creates an empty simulation over the given world,
// seeding its private random stream.
func NewSimulation(world *World, seed int64) *Simulation {
	s := &Simulation{
		world:   world,
		rng:     NewRand(seed),
		effects: NullEffects{},
		tickLen: DefaultTickLength,
	}
	for p := range s.expGain {
		s.expGain[p] = 100
	}
	return s
}

// SetTickLength overrides the simulated time per UpdateAll call. Must
// divide evenly into GameTicksPerSec and must not change mid-run.
func (s *Simulation) SetTickLength(ms uint32) {
	if !assert(ms > 0 && GameTicksPerSec%ms == 0, "tick length %d does not divide %d", ms, GameTicksPerSec) {
		return
	}
	s.tickLen = ms
}

// SetMultiplayer toggles the multiplayer-only rules (quality-factor
// experience scaling, per-player damage stats).
func (s *Simulation) SetMultiplayer(on bool) {
	s.multiplayer = on
}

// SetLocalPlayer names the player whose display gates effect and sound
// emission. Cosmetic only.
func (s *Simulation) SetLocalPlayer(player int) {
	s.localPlayer = player
}

// SetEffectSink installs the renderer-facing sink. A nil sink restores
// the discard-everything default.
func (s *Simulation) SetEffectSink(sink EffectSink) {
	if sink == nil {
		sink = NullEffects{}
	}
	s.effects = sink
}

// SetCombatLog attaches a combat event recorder. May be nil.
func (s *Simulation) SetCombatLog(c *CombatLog) {
	s.clog = c
}

// Time returns the current game time in milliseconds.
func (s *Simulation) Time() uint32 {
	return s.time
}

// TickLength returns the simulated time per UpdateAll call.
func (s *Simulation) TickLength() uint32 {
	return s.tickLen
}

// Count returns the number of projectiles currently tracked, including
// ones in their post-impact or grace period.
func (s *Simulation) Count() int {
	return len(s.projectiles)
}

// LastAttacker returns the source of the most recent projectile to deal
// impact or periodical damage. Used for "under attack" notifications.
func (s *Simulation) LastAttacker() *GameObject {
	return s.lastAttacker
}

// SetExpGain sets the percentage applied to a player's experience
// awards. 100 is the unmodified rate.
func (s *Simulation) SetExpGain(player int, gain int32) {
	if !assert(player >= 0 && player < MaxPlayers, "exp gain player out of range: %d", player) {
		return
	}
	s.expGain[player] = gain
}

// ExpGain returns a player's experience award percentage.
func (s *Simulation) ExpGain(player int) int32 {
	if player < 0 || player >= MaxPlayers {
		return 100
	}
	return s.expGain[player]
}

// Reset drops every projectile and rewinds the clock. The world, the
// random stream and the attached sinks are kept.
func (s *Simulation) Reset() {
	for _, p := range s.projectiles {
		s.setDestination(p, nil)
		s.effects.ProjectileRemoved(p.ID)
	}
	s.projectiles = s.projectiles[:0]
	s.spawned = s.spawned[:0]
	s.trackerID = 0
	s.time = 0
	s.lastAttacker = nil
	for p := range s.expGain {
		s.expGain[p] = 100
	}
}

// Shutdown releases everything Reset does and flushes the combat log.
func (s *Simulation) Shutdown() {
	s.Reset()
	if s.clog != nil {
		s.clog.Stop()
	}
}

// UpdateAll advances the simulation by one tick: moves every projectile
// through its flight model, resolves collisions and impacts, removes
// projectiles that have been inactive for a full tick, then admits
// projectiles spawned during the pass. Iteration order is insertion
// order, always.
func (s *Simulation) UpdateAll() {
	s.time += s.tickLen
	s.world.RebuildGrid()

	s.spawned = s.spawned[:0]
	for _, p := range s.projectiles {
		if child := s.update(p); child != nil {
			s.spawned = append(s.spawned, child)
		}
	}

	// Reap projectiles that went inactive more than a tick ago. The
	// grace tick lets the renderer catch the removal notification.
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.DiedAt == 0 || p.DiedAt >= s.time-s.tickLen {
			kept = append(kept, p)
			continue
		}
		s.effects.ProjectileRemoved(p.ID)
	}
	s.projectiles = append(kept, s.spawned...)
	s.spawned = s.spawned[:0]
}

// First begins an insertion-ordered walk over the live projectiles.
// Returns nil when there are none.
func (s *Simulation) First() *Projectile {
	s.iterCursor = 0
	return s.Next()
}

// Next continues the walk started by First.
func (s *Simulation) Next() *Projectile {
	if s.iterCursor >= len(s.projectiles) {
		return nil
	}
	p := s.projectiles[s.iterCursor]
	s.iterCursor++
	return p
}

// update runs one projectile through one tick and returns the child
// projectile if the tick spawned one by penetration.
func (s *Simulation) update(p *Projectile) *Projectile {
	p.PrevPos = p.Pos
	p.PrevTime = p.Time

	// Forget references to the dead before they can influence anything.
	if p.Source != nil && !p.Source.Alive() {
		p.Source = nil
	}
	if p.Dest != nil && !p.Dest.Alive() {
		s.setDestination(p, nil)
	}
	liveDamaged := p.damaged[:0]
	for _, o := range p.damaged {
		if o.Alive() {
			liveDamaged = append(liveDamaged, o)
		}
	}
	p.damaged = liveDamaged

	if !s.world.Terrain.OnMap(p.Pos.X, p.Pos.Y) {
		p.DiedAt = s.time
		p.State = StateInactive
		return nil
	}

	var child *Projectile
	switch p.State {
	case StateInFlight:
		child = s.inFlight(p)
		if p.State != StateImpact {
			break
		}
		fallthrough
	case StateImpact:
		s.impact(p)
		if p.State != StatePostImpact {
			break
		}
		fallthrough
	case StatePostImpact:
		s.postImpact(p)
	case StateInactive:
		p.DiedAt = p.Time
	}
	return child
}

// interpolatePos returns the projectile's position at time t, linearly
// interpolated between its previous and current tick positions.
func interpolatePos(p *Projectile, t uint32) Vector3 {
	den := int64(p.Time - p.PrevTime)
	if den <= 0 {
		den = 1
	}
	step := p.Pos.Sub(p.PrevPos)
	return p.PrevPos.Add(step.MulDiv(int64(t-p.PrevTime), den))
}
