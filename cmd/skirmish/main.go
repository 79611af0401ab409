package main

import (
	"flag"
	"fmt"
	"log"

	"battlesim/sim"
)

// Weapon roster for the scripted skirmish.
var (
	cannon = &sim.WeaponStats{
		Name:              "cannon",
		Movement:          sim.MMDirect,
		Class:             sim.ClassKinetic,
		Subclass:          sim.SubCannon,
		Effect:            sim.EffectAntiTank,
		FlightSpeed:       1200,
		Surface:           sim.ShootGround,
		DistanceExtension: 150,
		FireSound:         sim.NoSound,
		ImpactSound:       sim.NoSound,
	}
	mortar = &sim.WeaponStats{
		Name:              "mortar",
		Movement:          sim.MMIndirect,
		Class:             sim.ClassKinetic,
		Subclass:          sim.SubMortar,
		Effect:            sim.EffectAllRounder,
		FlightSpeed:       600,
		Surface:           sim.ShootGround,
		DistanceExtension: 200,
		FireSound:         sim.NoSound,
		ImpactSound:       sim.NoSound,
	}
)

func init() {
	for p := range cannon.Upgrades {
		cannon.Upgrades[p] = sim.WeaponUpgrade{
			MaxRange:      4096,
			Damage:        40,
			MinimumDamage: 1,
		}
		mortar.Upgrades[p] = sim.WeaponUpgrade{
			MaxRange:      6144,
			Damage:        60,
			RadDamage:     25,
			Radius:        256,
			MinimumDamage: 1,
		}
	}
}

func main() {
	seed := flag.Int64("seed", 1, "Deterministic random seed")
	ticks := flag.Int("ticks", 300, "Number of simulation ticks to run")
	dbPath := flag.String("db", "", "SQLite combat log path (empty: disabled)")
	flag.Parse()

	terrain := sim.NewTerrain(64, 64, 0)
	terrain.RaiseArea(28, 28, 36, 36, 192)

	world := sim.NewWorld(terrain)
	world.SetAlliance(0, 1, false)

	tankA := world.AddObject(&sim.GameObject{
		Kind:       sim.ObjDroid,
		Player:     0,
		Pos:        sim.Vector3{X: 2048, Y: 2048, Z: terrain.Height(2048, 2048)},
		Propulsion: sim.PropTracked,
		Body:       sim.BodyHeavy,
		HP:         400,
		Damageable: true,
		Radius:     96,
		Height:     64,
		Power:      300,
		Points:     400,
	})
	tankB := world.AddObject(&sim.GameObject{
		Kind:       sim.ObjDroid,
		Player:     1,
		Pos:        sim.Vector3{X: 5120, Y: 5120, Z: terrain.Height(5120, 5120)},
		Propulsion: sim.PropWheeled,
		Body:       sim.BodyMedium,
		HP:         250,
		Damageable: true,
		Radius:     80,
		Height:     56,
		Power:      180,
		Points:     250,
	})

	s := sim.NewSimulation(world, *seed)

	if *dbPath != "" {
		clog, err := sim.OpenCombatLog(*dbPath, *seed)
		if err != nil {
			log.Fatalf("combat log: %v", err)
		}
		s.SetCombatLog(clog)
	}

	log.Printf("Skirmish starting: seed=%d ticks=%d", *seed, *ticks)

	for tick := 0; tick < *ticks; tick++ {
		// Alternate fire every second of game time.
		if s.Time()%1000 == 0 {
			if tankA.Alive() && tankB.Alive() {
				s.Fire(cannon, tankA, 0, tankB.Pos, tankB, false, 0)
				s.Fire(mortar, tankB, 1, tankA.Pos, tankA, false, 0)
			}
		}
		s.UpdateAll()

		if s.Time()%1000 == 0 {
			fmt.Printf("t=%6dms projectiles=%3d checksum=%016x\n",
				s.Time(), s.Count(), s.Checksum())
		}
		if !tankA.Alive() || !tankB.Alive() {
			break
		}
	}

	switch {
	case tankA.Alive() && !tankB.Alive():
		log.Printf("Player 0 wins: %d HP left, %d kills", tankA.HP, tankA.Kills)
	case tankB.Alive() && !tankA.Alive():
		log.Printf("Player 1 wins: %d HP left, %d kills", tankB.HP, tankB.Kills)
	default:
		log.Printf("Timeout: A=%d HP, B=%d HP", tankA.HP, tankB.HP)
	}

	s.Shutdown()
}
