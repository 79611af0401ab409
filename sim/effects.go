package sim

// EffectKind names the visual side-effects the core can trigger. The
// renderer owns what they look like.
type EffectKind uint8

const (
	EffectExplosion EffectKind = iota
	EffectLaserBurst
	EffectSmokeTrail
	EffectFlameTrail
	EffectGroundFire
	EffectDriftingSmoke
)

// EffectSink receives visual/audio trigger calls from the simulation.
// Implementations must treat every call as fire-and-forget: nothing the
// sink does may feed back into game state.
type EffectSink interface {
	AddEffect(pos Vector3, kind EffectKind, when uint32)
	PlaySound(pos Vector3, sound int, when uint32)
	ProjectileRemoved(id uint32)
}

// NullEffects discards every trigger. The default sink.
type NullEffects struct{}

func (NullEffects) AddEffect(Vector3, EffectKind, uint32) {}
func (NullEffects) PlaySound(Vector3, int, uint32)        {}
func (NullEffects) ProjectileRemoved(uint32)              {}

// gfxVisible decides whether a projectile's effects should be shown on
// the local display. Purely cosmetic: the result never influences any
// state that feeds the lockstep checksum.
func (s *Simulation) gfxVisible(p *Projectile) bool {
	if p.Visible {
		return true
	}

	// The local player fired it.
	if p.Player == s.localPlayer {
		return true
	}

	// Someone else's structure firing at something the local player
	// cannot see.
	if p.Source.Alive() &&
		p.Source.Kind == ObjStructure &&
		p.Source.Player != s.localPlayer &&
		(!p.Dest.Alive() || !p.Dest.DisplayVisible) {
		return false
	}

	// Something unseen firing at a structure that is not the local
	// player's.
	if p.Dest.Alive() &&
		p.Dest.Kind == ObjStructure &&
		p.Dest.Player != s.localPlayer &&
		(p.Source == nil || !p.Source.DisplayVisible) {
		return false
	}

	if p.Source.Alive() && p.Source.DisplayVisible {
		return true
	}
	if p.Dest.Alive() && p.Dest.DisplayVisible {
		return true
	}
	return false
}
