package sim

// MaxPlayers is the number of player slots in one battle.
const MaxPlayers = 8

// ObjectKind tags the union of object types the projectile core can
// target. Projectiles themselves are not world objects.
type ObjectKind uint8

const (
	ObjDroid ObjectKind = iota
	ObjStructure
	ObjFeature
)

// Propulsion classifies a droid's drive for damage modifiers and for the
// air/ground eligibility checks.
type Propulsion uint8

const (
	PropWheeled Propulsion = iota
	PropTracked
	PropHover
	PropLift // airborne when moving

	numPropulsions
)

// BodySize classifies a droid's chassis for damage modifiers.
type BodySize uint8

const (
	BodyLight BodySize = iota
	BodyMedium
	BodyHeavy

	numBodySizes
)

// StructStrength classifies a structure's build for damage modifiers.
type StructStrength uint8

const (
	StrengthSoft StructStrength = iota
	StrengthMedium
	StrengthHard
	StrengthBunker

	numStrengths
)

// GameObject is the narrow view of a droid, structure or feature that
// the projectile core needs: position, shape, health, allegiance and a
// handful of bookkeeping fields. The broader game owns everything else.
type GameObject struct {
	Kind   ObjectKind
	ID     uint32
	Player int

	Pos     Vector3
	PrevPos Vector3 // previous-tick position, for swept collision
	Heading uint16
	Speed   int32 // current ground speed in units/s
	Moving  bool

	Propulsion Propulsion
	Body       BodySize
	Strength   StructStrength

	HP         int32
	OrigHP     int32
	DiedAt     uint32 // game time of death; 0 while alive
	Damageable bool

	// Silhouette. Rectangular footprints use HalfSize, circular use Radius.
	Rectangular bool
	HalfSize    Vector2
	Radius      int32
	Height      int32

	// Effect gating only; never read by gameplay-affecting code.
	DisplayVisible bool

	// Incoming-damage estimate registered by in-flight projectiles so
	// external AI can reason about overkill.
	expectedDamage int32

	// Periodical damage accumulated during the current tick.
	periodicalDamageStart uint32
	periodicalDamage      int32

	// What hit last, for the broader game's armor response and stun
	// timers.
	LastHitTime   uint32
	LastHitClass  WeaponClass
	LastHitWeapon WeaponSubclass
	LastHitEMP    bool

	Kills      int
	Experience int64 // Q16 accumulated experience

	// Droid links used by experience/kill bookkeeping.
	Commander   *GameObject
	FireSupport *GameObject
	Target      *GameObject // current action target, for designator credit

	// Quality-factor inputs for droid-vs-droid experience scaling.
	Power  int32
	Points int32
}

// Alive reports whether the object exists and has not died.
func (o *GameObject) Alive() bool {
	return o != nil && o.DiedAt == 0
}

// Flying reports whether the object is currently airborne.
func (o *GameObject) Flying() bool {
	return o.Kind == ObjDroid && o.Propulsion == PropLift && o.Moving
}

// ExpectedDamage returns the damage in-flight projectiles have promised
// this object.
func (o *GameObject) ExpectedDamage() int32 {
	return o.expectedDamage
}

// addExpectedDamage adjusts the incoming-damage estimate; nil-safe so
// destination swaps do not special-case terrain aims.
func addExpectedDamage(o *GameObject, delta int32) {
	if o == nil {
		return
	}
	o.expectedDamage += delta
}

// Damage applies a hit and returns the fraction of original health
// removed, in Q16 (65536 = all of it), negated when the hit was lethal.
// Lethal hits on features stay positive: destroyed scenery earns no
// experience. perSecond damage accumulates across one tick and is scaled
// by tickLen, with a floor of one point per application. The weapon
// class, subclass and EMP flag are recorded on the object for the
// broader game's armor response and stun handling.
func (o *GameObject) Damage(amount int32, class WeaponClass, subclass WeaponSubclass, when uint32, perSecond bool, minDamage int32, emp bool, tickLen uint32) int32 {
	if !o.Alive() {
		return 0
	}

	o.LastHitTime = when
	o.LastHitClass = class
	o.LastHitWeapon = subclass
	o.LastHitEMP = emp

	actual := amount
	if perSecond {
		if o.periodicalDamageStart != when {
			o.periodicalDamageStart = when
			o.periodicalDamage = 0
		}
		actual = int32(int64(amount) * int64(tickLen) / GameTicksPerSec)
		if actual < 1 {
			actual = 1
		}
		o.periodicalDamage += actual
	}
	if actual < minDamage {
		actual = minDamage
	}

	if actual >= o.HP {
		rel := int32(int64(o.HP) * 65536 / int64(o.OrigHP))
		o.HP = 0
		o.DiedAt = when
		if o.Kind == ObjFeature {
			return rel
		}
		return -rel
	}

	o.HP -= actual
	return int32(int64(actual) * 65536 / int64(o.OrigHP))
}

// World is the object model the projectile core collides with: the live
// object list, the terrain, the alliance table and the broad-phase grid.
type World struct {
	Terrain *Terrain

	objects  []*GameObject
	nextID   uint32
	grid     *SpatialGrid
	allied   [MaxPlayers][MaxPlayers]bool
	designee [MaxPlayers]*GameObject
}

// NewWorld creates an empty world over the given terrain.
func NewWorld(t *Terrain) *World {
	w := &World{
		Terrain: t,
		grid:    NewSpatialGrid(t.WorldWidth(), t.WorldHeight()),
	}
	for p := 0; p < MaxPlayers; p++ {
		w.allied[p][p] = true
	}
	return w
}

// AddObject assigns the object a monotonic ID and inserts it into the
// world. Insertion order is the canonical iteration order everywhere.
func (w *World) AddObject(o *GameObject) *GameObject {
	w.nextID++
	o.ID = w.nextID
	if o.OrigHP == 0 {
		o.OrigHP = o.HP
	}
	o.PrevPos = o.Pos
	w.objects = append(w.objects, o)
	return o
}

// Objects returns the live insertion-ordered object list.
func (w *World) Objects() []*GameObject {
	return w.objects
}

// SetAlliance marks two players as allied (or not). Symmetric; a player
// is always allied with itself.
func (w *World) SetAlliance(a, b int, allied bool) {
	if !assert(a >= 0 && a < MaxPlayers && b >= 0 && b < MaxPlayers, "alliance players out of range: %d, %d", a, b) {
		return
	}
	if a == b {
		return
	}
	w.allied[a][b] = allied
	w.allied[b][a] = allied
}

// Allied reports whether two players are on the same side.
func (w *World) Allied(a, b int) bool {
	if !assert(a >= 0 && a < MaxPlayers && b >= 0 && b < MaxPlayers, "alliance players out of range: %d, %d", a, b) {
		return false
	}
	return w.allied[a][b]
}

// SetDesignator records a player's command designator droid, credited
// with experience and kills for structure-fired shots on its target.
func (w *World) SetDesignator(player int, droid *GameObject) {
	if !assert(player >= 0 && player < MaxPlayers, "designator player out of range: %d", player) {
		return
	}
	w.designee[player] = droid
}

// DesignatorAttacking returns the player's designator droid when it is
// actively targeting the given object.
func (w *World) DesignatorAttacking(player int, target *GameObject) *GameObject {
	if player < 0 || player >= MaxPlayers {
		return nil
	}
	d := w.designee[player]
	if d.Alive() && d.Target == target {
		return d
	}
	return nil
}

// RebuildGrid snapshots all live objects into the broad-phase grid.
// Called once at the start of every tick.
func (w *World) RebuildGrid() {
	w.grid.Clear()
	for _, o := range w.objects {
		if o.DiedAt == 0 {
			w.grid.Insert(o)
		}
	}
}

// Neighbors appends candidates near (x, y) to buf and returns it. The
// result is ordered by object ID regardless of grid layout.
func (w *World) Neighbors(x, y, radius int32, buf []*GameObject) []*GameObject {
	return w.grid.QueryBuf(x, y, radius, buf)
}
