package sim

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Combat event types.
const (
	EvtFired  = "fired"
	EvtDamage = "damage"
	EvtKill   = "kill"
)

// CombatEvent is one row bound for the combat_events table.
type CombatEvent struct {
	Tick     uint32
	Type     string
	Shooter  uint32 // world ID of the firing object, 0 when gone
	Target   uint32 // world ID of the victim, 0 for position shots
	Weapon   string
	Player   int
	Value    int32 // applied damage for damage events
	Lethal   bool
	Recorded time.Time
}

// CombatLog persists combat telemetry to SQLite with batched background
// writes so the simulation loop never waits on disk. Every method is
// safe on a nil receiver, which is how a detached log reads.
type CombatLog struct {
	db     *sql.DB
	runID  string
	events chan CombatEvent
	stop   chan struct{}
	wg     sync.WaitGroup
}

// OpenCombatLog opens (or creates) the SQLite file at path, registers a
// new run keyed by a fresh UUID and starts the background writer.
func OpenCombatLog(path string, seed int64) (*CombatLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrateCombatLog(db); err != nil {
		db.Close()
		return nil, err
	}

	c := &CombatLog{
		db:     db,
		runID:  uuid.NewString(),
		events: make(chan CombatEvent, 1024),
		stop:   make(chan struct{}),
	}
	if _, err := db.Exec(
		`INSERT INTO combat_runs (id, seed, created_at) VALUES (?, ?, ?)`,
		c.runID, seed, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		db.Close()
		return nil, err
	}

	c.wg.Add(1)
	go c.writer()
	return c, nil
}

func migrateCombatLog(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS combat_runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS combat_events (
		run_id TEXT NOT NULL REFERENCES combat_runs(id),
		tick INTEGER NOT NULL,
		event_type TEXT NOT NULL,
		shooter INTEGER NOT NULL DEFAULT 0,
		target INTEGER NOT NULL DEFAULT 0,
		weapon TEXT NOT NULL DEFAULT '',
		player INTEGER NOT NULL DEFAULT 0,
		value INTEGER NOT NULL DEFAULT 0,
		lethal INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_combat_events_run ON combat_events(run_id, tick);
	`
	_, err := db.Exec(schema)
	return err
}

// RunID returns the UUID identifying this run in the database.
func (c *CombatLog) RunID() string {
	if c == nil {
		return ""
	}
	return c.runID
}

// Stop flushes pending events and closes the database.
func (c *CombatLog) Stop() {
	if c == nil {
		return
	}
	close(c.stop)
	c.wg.Wait()
	if err := c.db.Close(); err != nil {
		log.Printf("combatlog: close error: %v", err)
	}
}

// track enqueues an event without blocking; a full queue drops it.
func (c *CombatLog) track(evt CombatEvent) {
	if c == nil {
		return
	}
	evt.Recorded = time.Now().UTC()
	select {
	case c.events <- evt:
	default:
		// Full queue; drop rather than stall the tick.
	}
}

func (c *CombatLog) fired(tick uint32, p *Projectile, target *GameObject) {
	if c == nil {
		return
	}
	evt := CombatEvent{Tick: tick, Type: EvtFired, Weapon: p.Stats.Name, Player: p.Player}
	if p.Source != nil {
		evt.Shooter = p.Source.ID
	}
	if target != nil {
		evt.Target = target.ID
	}
	c.track(evt)
}

func (c *CombatLog) damaged(tick uint32, p *Projectile, target *GameObject, damage int32, lethal bool) {
	if c == nil {
		return
	}
	evt := CombatEvent{
		Tick:   tick,
		Type:   EvtDamage,
		Target: target.ID,
		Weapon: p.Stats.Name,
		Player: p.Player,
		Value:  damage,
		Lethal: lethal,
	}
	if p.Source != nil {
		evt.Shooter = p.Source.ID
	}
	c.track(evt)
}

func (c *CombatLog) killed(tick uint32, p *Projectile, target *GameObject) {
	if c == nil {
		return
	}
	evt := CombatEvent{Tick: tick, Type: EvtKill, Weapon: p.Stats.Name, Player: p.Player}
	if p.Source != nil {
		evt.Shooter = p.Source.ID
	}
	if target != nil {
		evt.Target = target.ID
	}
	c.track(evt)
}

// writer batches and persists events until Stop.
func (c *CombatLog) writer() {
	defer c.wg.Done()

	batch := make([]CombatEvent, 0, 64)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case evt := <-c.events:
			batch = append(batch, evt)
			if len(batch) >= 50 {
				c.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				c.flush(batch)
				batch = batch[:0]
			}
		case <-c.stop:
			close(c.events)
			for evt := range c.events {
				batch = append(batch, evt)
			}
			if len(batch) > 0 {
				c.flush(batch)
			}
			return
		}
	}
}

func (c *CombatLog) flush(events []CombatEvent) {
	tx, err := c.db.Begin()
	if err != nil {
		log.Printf("combatlog: begin tx error: %v", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO combat_events
		(run_id, tick, event_type, shooter, target, weapon, player, value, lethal, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		log.Printf("combatlog: prepare error: %v", err)
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		lethal := 0
		if evt.Lethal {
			lethal = 1
		}
		if _, err := stmt.Exec(
			c.runID, evt.Tick, evt.Type, evt.Shooter, evt.Target,
			evt.Weapon, evt.Player, evt.Value, lethal,
			evt.Recorded.Format(time.RFC3339),
		); err != nil {
			log.Printf("combatlog: insert error: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("combatlog: commit error: %v", err)
	}
}

// EventCount returns the number of events recorded for this run that
// have reached the database.
func (c *CombatLog) EventCount() (int, error) {
	if c == nil {
		return 0, nil
	}
	var count int
	err := c.db.QueryRow(
		`SELECT COUNT(*) FROM combat_events WHERE run_id = ?`, c.runID,
	).Scan(&count)
	return count, err
}
