package sim

import (
	"bytes"
	"testing"
)

func TestRecordsMatchProjectiles(t *testing.T) {
	world := NewWorld(testTerrain())
	shooter := world.AddObject(testDroid(0, Vector3{256, 256, 0}, 200))
	shooter.Height = 10
	victim := world.AddObject(testDroid(1, Vector3{1280, 256, 0}, 200))

	s := NewSimulation(world, 1)
	s.Fire(directGun(30), shooter, 0, victim.Pos, victim, true, 0)
	s.UpdateAll()

	recs := s.Records()
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	r := recs[0]
	if r.Weapon != "test-gun" || r.Player != 0 {
		t.Errorf("record identity = %q/%d", r.Weapon, r.Player)
	}
	if r.State != uint8(StateInFlight) {
		t.Errorf("record state = %d", r.State)
	}
	if r.Expected != 30 {
		t.Errorf("record expected damage = %d, want 30", r.Expected)
	}
	if r.Time != s.Time() {
		t.Errorf("record time = %d, sim time %d", r.Time, s.Time())
	}
}

func TestSyncBytesIdenticalAcrossPeers(t *testing.T) {
	build := func() *Simulation {
		world := NewWorld(testTerrain())
		shooter := world.AddObject(testDroid(0, Vector3{256, 256, 0}, 200))
		shooter.Height = 10
		victim := world.AddObject(testDroid(1, Vector3{1280, 256, 0}, 200))
		s := NewSimulation(world, 7)
		s.Fire(directGun(30), shooter, 0, victim.Pos, victim, true, 0)
		return s
	}

	s1, s2 := build(), build()
	// Peers render for different players; state must not care.
	s1.SetLocalPlayer(0)
	s2.SetLocalPlayer(1)

	for i := 0; i < 10; i++ {
		s1.UpdateAll()
		s2.UpdateAll()
		b1, err := s1.SyncBytes()
		if err != nil {
			t.Fatal(err)
		}
		b2, err := s2.SyncBytes()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(b1, b2) {
			t.Fatalf("sync bytes diverged at tick %d", i)
		}
		if s1.Checksum() != s2.Checksum() {
			t.Fatalf("checksums diverged at tick %d", i)
		}
	}
}

func TestChecksumTracksState(t *testing.T) {
	world := NewWorld(testTerrain())
	shooter := world.AddObject(testDroid(0, Vector3{256, 256, 0}, 200))
	shooter.Height = 10

	s := NewSimulation(world, 1)
	before := s.Checksum()
	s.Fire(directGun(0), shooter, 0, Vector3{1280, 256, 300}, nil, true, 0)
	after := s.Checksum()
	if before == after {
		t.Error("checksum unchanged by a new projectile")
	}

	s.UpdateAll()
	if s.Checksum() == after {
		t.Error("checksum unchanged by a tick of movement")
	}
}
