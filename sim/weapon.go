package sim

// MovementModel selects how a projectile flies. Dispatch is a single
// switch in the flight step so the per-tick loop stays branch-predictable.
type MovementModel uint8

const (
	MMDirect MovementModel = iota
	MMIndirect
	MMHomingDirect
	MMHomingIndirect
)

// WeaponClass is the broad damage class carried into damage application.
type WeaponClass uint8

const (
	ClassKinetic WeaponClass = iota
	ClassHeat
)

// WeaponSubclass selects impact behavior and effect flavor.
type WeaponSubclass uint8

const (
	SubMachineGun WeaponSubclass = iota
	SubCannon
	SubMortar
	SubRocket
	SubMissile
	SubFlame
	SubLaser
	SubEMP
	SubAAGun
)

// WeaponEffect indexes the damage-modifier tables.
type WeaponEffect uint8

const (
	EffectAntiPersonnel WeaponEffect = iota
	EffectAntiTank
	EffectBunkerBuster
	EffectFlamer
	EffectAllRounder

	numWeaponEffects
)

// Surface-to-air capability flags.
const (
	ShootInAir    = 1 << 0
	ShootGround   = 1 << 1
	ShootAnywhere = ShootInAir | ShootGround
)

// NoSound marks a weapon with no fire or impact audio.
const NoSound = -1

// WeaponUpgrade holds the per-player upgraded numbers for one weapon.
// Immutable for the duration of a tick.
type WeaponUpgrade struct {
	MaxRange   int32
	MinRange   int32
	ShortRange int32

	Damage           int32
	RadDamage        int32
	PeriodicalDamage int32
	MinimumDamage    int32

	Radius                 int32
	EMPRadius              int32
	PeriodicalDamageRadius int32
	PeriodicalDamageTime   uint32
}

// WeaponStats is the read-only description of one weapon type.
type WeaponStats struct {
	Name string

	Movement MovementModel
	Class    WeaponClass
	Subclass WeaponSubclass
	Effect   WeaponEffect

	// Periodical damage may carry its own class/effect (burning oil vs
	// the shell that delivered it).
	PeriodicalClass    WeaponClass
	PeriodicalSubclass WeaponSubclass
	PeriodicalEffect   WeaponEffect

	FlightSpeed    int32 // units/s
	Surface        uint8 // ShootInAir / ShootGround flags
	Penetrate      bool
	NoFriendlyFire bool

	// Percentage extension applied to max range before a shot is
	// declared a miss (100 = exactly max range).
	DistanceExtension int32

	// How long the post-impact radius stays live, in game time units.
	RadiusLife uint32

	FireSound   int
	ImpactSound int

	Upgrades [MaxPlayers]WeaponUpgrade
}

// upgrade returns the player's upgrade row, degrading to row zero on an
// out-of-range player index.
func (w *WeaponStats) upgrade(player int) *WeaponUpgrade {
	if !assert(player >= 0 && player < MaxPlayers, "weapon %q: player out of range: %d", w.Name, player) {
		return &w.Upgrades[0]
	}
	return &w.Upgrades[player]
}

// LongRange returns the player's upgraded maximum range.
func (w *WeaponStats) LongRange(player int) int32 {
	return w.upgrade(player).MaxRange
}

// MinRange returns the player's upgraded minimum range.
func (w *WeaponStats) MinRange(player int) int32 {
	return w.upgrade(player).MinRange
}

// ShortRange returns the player's upgraded short range.
func (w *WeaponStats) ShortRange(player int) int32 {
	return w.upgrade(player).ShortRange
}

// WeaponDamage returns the player's upgraded direct damage.
func (w *WeaponStats) WeaponDamage(player int) int32 {
	return w.upgrade(player).Damage
}

// RadiusDamage returns the player's upgraded splash damage.
func (w *WeaponStats) RadiusDamage(player int) int32 {
	return w.upgrade(player).RadDamage
}

// Direct reports whether the weapon's flight model is line-of-sight.
func (w *WeaponStats) Direct() bool {
	switch w.Movement {
	case MMDirect, MMHomingDirect:
		return true
	}
	return false
}

// Effect-modifier tables: percentage adjustments per weapon effect and
// target category. 100 means no adjustment. The broader game loads these
// from data files; the defaults below keep a standalone simulation
// sensible.
var (
	PropulsionModifier = [numWeaponEffects][numPropulsions]int32{
		EffectAntiPersonnel: {120, 90, 100, 100},
		EffectAntiTank:      {40, 130, 100, 80},
		EffectBunkerBuster:  {20, 40, 50, 30},
		EffectFlamer:        {130, 70, 110, 50},
		EffectAllRounder:    {100, 100, 100, 100},
	}

	BodyModifier = [numWeaponEffects][numBodySizes]int32{
		EffectAntiPersonnel: {110, 100, 80},
		EffectAntiTank:      {70, 100, 130},
		EffectBunkerBuster:  {50, 60, 70},
		EffectFlamer:        {120, 100, 60},
		EffectAllRounder:    {100, 100, 100},
	}

	StructStrengthModifier = [numWeaponEffects][numStrengths]int32{
		EffectAntiPersonnel: {60, 40, 30, 20},
		EffectAntiTank:      {90, 80, 70, 40},
		EffectBunkerBuster:  {130, 140, 150, 160},
		EffectFlamer:        {70, 30, 20, 10},
		EffectAllRounder:    {100, 100, 100, 100},
	}
)

// CalcDamage applies the effect-modifier tables to a base damage value.
// Zero base damage stays zero; any nonzero base deals at least 1.
func CalcDamage(baseDamage int32, effect WeaponEffect, target *GameObject) int32 {
	if baseDamage == 0 {
		return 0
	}

	damage := int64(baseDamage) * 100
	switch target.Kind {
	case ObjStructure:
		damage += int64(baseDamage) * int64(StructStrengthModifier[effect][target.Strength]-100)
	case ObjDroid:
		damage += int64(baseDamage) * int64(PropulsionModifier[effect][target.Propulsion]-100)
		damage += int64(baseDamage) * int64(BodyModifier[effect][target.Body]-100)
	}

	if damage < 100 {
		return 1
	}
	return int32(damage / 100)
}

// GuessFutureDamage estimates the damage a newly fired projectile will
// deal its target, for the expected-damage registration.
func GuessFutureDamage(w *WeaponStats, player int, target *GameObject) int32 {
	if target == nil || !target.Alive() {
		return 0
	}
	return CalcDamage(w.WeaponDamage(player), w.Effect, target)
}
