package sim

import (
	"hash/fnv"

	"github.com/vmihailenco/msgpack/v5"
)

// ProjectileRecord is the canonical serialized form of one projectile
// for cross-peer desync checking. Only lockstep-relevant state goes in;
// display flags stay out.
type ProjectileRecord struct {
	ID        uint32 `msgpack:"id"`
	Player    int    `msgpack:"player"`
	Weapon    string `msgpack:"weapon"`
	State     uint8  `msgpack:"state"`
	X         int32  `msgpack:"x"`
	Y         int32  `msgpack:"y"`
	Z         int32  `msgpack:"z"`
	Direction uint16 `msgpack:"dir"`
	Pitch     uint16 `msgpack:"pitch"`
	Born      uint32 `msgpack:"born"`
	Time      uint32 `msgpack:"time"`
	Expected  int32  `msgpack:"expected"`
	Damaged   int    `msgpack:"damaged"`
}

// SyncState is the whole simulation's lockstep-relevant state at one
// tick, ready for serialization.
type SyncState struct {
	Time        uint32             `msgpack:"time"`
	Projectiles []ProjectileRecord `msgpack:"projectiles"`
}

func recordOf(p *Projectile) ProjectileRecord {
	return ProjectileRecord{
		ID:        p.ID,
		Player:    p.Player,
		Weapon:    p.Stats.Name,
		State:     uint8(p.State),
		X:         p.Pos.X,
		Y:         p.Pos.Y,
		Z:         p.Pos.Z,
		Direction: p.Direction,
		Pitch:     p.Pitch,
		Born:      p.Born,
		Time:      p.Time,
		Expected:  p.expectedDamage,
		Damaged:   len(p.damaged),
	}
}

// Records snapshots every live projectile in iteration order.
func (s *Simulation) Records() []ProjectileRecord {
	out := make([]ProjectileRecord, 0, len(s.projectiles))
	for _, p := range s.projectiles {
		out = append(out, recordOf(p))
	}
	return out
}

// SyncBytes serializes the current lockstep state. Identical across
// peers running the same inputs at the same tick.
func (s *Simulation) SyncBytes() ([]byte, error) {
	return msgpack.Marshal(SyncState{Time: s.time, Projectiles: s.Records()})
}

// Checksum digests the serialized state into a single comparable value.
// Two peers disagreeing here have desynced.
func (s *Simulation) Checksum() uint64 {
	raw, err := s.SyncBytes()
	if !assert(err == nil, "sync serialization failed: %v", err) {
		return 0
	}
	h := fnv.New64a()
	h.Write(raw)
	return h.Sum64()
}
