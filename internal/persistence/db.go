// Package persistence records a finished or in-progress session to SQLite for
// offline analysis. Records are export-only; nothing here restores a run.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/ex-umbris/internal/agents"
	"github.com/talgya/ex-umbris/internal/engine"
	"github.com/talgya/ex-umbris/internal/world"
)

// ErrUnknownRun is returned when a run id has no row in the runs table.
var ErrUnknownRun = errors.New("unknown run")

// RunID identifies one recorded session.
type RunID string

// DB wraps a SQLite connection for run recording.
type DB struct {
	conn *sqlx.DB
}

// Summary is the per-run row count overview.
type Summary struct {
	RunID       RunID  `db:"id" json:"run_id"`
	Seed        int64  `db:"seed" json:"seed"`
	Hubs        int    `db:"hubs" json:"hubs"`
	Agents      int    `db:"agents" json:"agents"`
	StartedAt   string `db:"started_at" json:"started_at"`
	Locations   int    `db:"locations" json:"locations"`
	Connections int    `db:"connections" json:"connections"`
	Sites       int    `db:"sites" json:"sites"`
	Roster      int    `db:"roster" json:"roster"`
	Events      int    `db:"events" json:"events"`
	LastTurn    uint64 `db:"last_turn" json:"last_turn"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		hubs INTEGER NOT NULL,
		agents INTEGER NOT NULL,
		started_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS locations (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		body TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		hub_id INTEGER,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS connections (
		run_id TEXT NOT NULL,
		a INTEGER NOT NULL,
		b INTEGER NOT NULL,
		cost REAL NOT NULL,
		PRIMARY KEY (run_id, a, b)
	);

	CREATE TABLE IF NOT EXISTS sites (
		run_id TEXT NOT NULL,
		location_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS roster (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		gender TEXT NOT NULL,
		location_id INTEGER,
		traits_json TEXT NOT NULL,
		modifiers_json TEXT NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		category TEXT NOT NULL,
		agent_id INTEGER NOT NULL,
		from_location INTEGER NOT NULL,
		to_location INTEGER NOT NULL,
		description TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run_turn ON events(run_id, turn);
	CREATE INDEX IF NOT EXISTS idx_sites_run ON sites(run_id, location_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// BeginRun registers a new session and returns its id.
func (db *DB) BeginRun(seed int64, hubs, agentCount int) (RunID, error) {
	id := RunID(uuid.NewString())
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, seed, hubs, agents, started_at) VALUES (?, ?, ?, ?, ?)",
		string(id), seed, hubs, agentCount, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	slog.Info("run recording started", "run", id, "seed", seed)
	return id, nil
}

// RecordGalaxy writes every location, each undirected link once, and every
// site of a generated galaxy.
func (db *DB) RecordGalaxy(run RunID, g *world.Galaxy) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, l := range g.Locations {
		var hub *uint32
		if l.Hub != 0 {
			h := uint32(l.Hub)
			hub = &h
		}
		_, err := tx.Exec(`INSERT INTO locations
			(run_id, id, kind, name, body, x, y, hub_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			string(run), uint32(l.ID), l.Kind.String(), l.Name, l.Body, l.Coord.X, l.Coord.Y, hub,
		)
		if err != nil {
			return fmt.Errorf("insert location %d: %w", l.ID, err)
		}

		for _, other := range l.Connections {
			if other < l.ID {
				continue
			}
			_, err := tx.Exec(
				"INSERT INTO connections (run_id, a, b, cost) VALUES (?, ?, ?, ?)",
				string(run), uint32(l.ID), uint32(other), g.EdgeCost(l.ID, other),
			)
			if err != nil {
				return fmt.Errorf("insert connection %d-%d: %w", l.ID, other, err)
			}
		}

		for _, s := range l.Sites {
			_, err := tx.Exec(
				"INSERT INTO sites (run_id, location_id, kind, name) VALUES (?, ?, ?, ?)",
				string(run), uint32(l.ID), s.Kind.String(), s.Name,
			)
			if err != nil {
				return fmt.Errorf("insert site at %d: %w", l.ID, err)
			}
		}
	}

	return tx.Commit()
}

// RecordRoster writes the roster as it stands now, replacing any earlier
// roster rows for the same run.
func (db *DB) RecordRoster(run RunID, roster []*agents.Agent) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM roster WHERE run_id = ?", string(run)); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO roster
		(run_id, id, name, gender, location_id, traits_json, modifiers_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range roster {
		names := make([]string, 0, len(a.Traits))
		for _, t := range a.Traits {
			names = append(names, t.Name)
		}
		traitsJSON, err := json.Marshal(names)
		if err != nil {
			return fmt.Errorf("encode traits of agent %d: %w", a.ID, err)
		}
		modsJSON, err := json.Marshal(a.Modifiers)
		if err != nil {
			return fmt.Errorf("encode modifiers of agent %d: %w", a.ID, err)
		}

		var loc *uint32
		if a.Location != 0 {
			l := uint32(a.Location)
			loc = &l
		}

		_, err = stmt.Exec(
			string(run), uint64(a.ID), a.Name, a.Gender.String(), loc,
			string(traitsJSON), string(modsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert agent %d: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// RecordEvents appends events to the run's log.
func (db *DB) RecordEvents(run RunID, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(`INSERT INTO events
			(run_id, turn, category, agent_id, from_location, to_location, description)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(run), e.Turn, e.Category, uint64(e.AgentID), uint32(e.From), uint32(e.To), e.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentEvents returns up to limit of the run's latest events, newest first.
func (db *DB) RecentEvents(run RunID, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		`SELECT turn, category, agent_id, from_location, to_location, description
		FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?`,
		string(run), limit,
	)
	return events, err
}

// RunSummary returns row counts for a recorded run.
func (db *DB) RunSummary(run RunID) (Summary, error) {
	var s Summary
	err := db.conn.Get(&s, `SELECT r.id, r.seed, r.hubs, r.agents, r.started_at,
		(SELECT COUNT(*) FROM locations WHERE run_id = r.id) AS locations,
		(SELECT COUNT(*) FROM connections WHERE run_id = r.id) AS connections,
		(SELECT COUNT(*) FROM sites WHERE run_id = r.id) AS sites,
		(SELECT COUNT(*) FROM roster WHERE run_id = r.id) AS roster,
		(SELECT COUNT(*) FROM events WHERE run_id = r.id) AS events,
		(SELECT COALESCE(MAX(turn), 0) FROM events WHERE run_id = r.id) AS last_turn
		FROM runs r WHERE r.id = ?`, string(run))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, fmt.Errorf("%w: %s", ErrUnknownRun, run)
		}
		return Summary{}, err
	}
	return s, nil
}
