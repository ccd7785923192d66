// Package store persists the simulation's durable record — thoughts,
// decisions, pheromones, collaboration projects, and swarm snapshots —
// in SQLite. The core treats persistence as best-effort, so every write
// here must either land or return an error; no partial rows.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/owizdom/swarm-mind/internal/types"
)

// Store is the SQLite-backed persistence collaborator.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// NewStore opens (or creates) the SQLite database at path and runs the
// schema. Pass ":memory:" for an ephemeral store.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// modernc's driver serializes at the connection level; a single
	// connection avoids table-lock errors under concurrent writers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS thoughts (
		id TEXT PRIMARY KEY,
		agent_id TEXT NOT NULL,
		reasoning TEXT,
		conclusion TEXT,
		actions_json TEXT,
		confidence REAL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_thoughts_agent ON thoughts(agent_id);

	CREATE TABLE IF NOT EXISTS decisions (
		id TEXT PRIMARY KEY,
		agent_id TEXT NOT NULL,
		action_kind TEXT NOT NULL,
		action_desc TEXT,
		priority REAL,
		status TEXT NOT NULL,
		estimated_tokens INTEGER,
		risk TEXT,
		result_json TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_decisions_agent ON decisions(agent_id);
	CREATE INDEX IF NOT EXISTS idx_decisions_status ON decisions(status);

	CREATE TABLE IF NOT EXISTS pheromones (
		id TEXT PRIMARY KEY,
		agent_id TEXT NOT NULL,
		content TEXT,
		domain TEXT,
		strength REAL,
		confidence REAL,
		parent_id TEXT,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pheromones_domain ON pheromones(domain);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		kind TEXT NOT NULL,
		status TEXT NOT NULL,
		agent_ids_json TEXT,
		detected_step INTEGER,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		step INTEGER NOT NULL,
		snapshot_json TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_step ON snapshots(step);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveThought records a reasoning result.
func (s *Store) SaveThought(ctx context.Context, t types.Thought) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions, err := json.Marshal(t.SuggestedActions)
	if err != nil {
		return fmt.Errorf("failed to encode suggested actions: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO thoughts (id, agent_id, reasoning, conclusion, actions_json, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.AgentID, t.Reasoning, t.Conclusion, string(actions), t.Confidence, t.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save thought: %w", err)
	}
	return nil
}

// SaveDecision records a decision at selection time. Status updates go
// through UpdateDecisionStatus.
func (s *Store) SaveDecision(ctx context.Context, d *types.AgentDecision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO decisions
			(id, agent_id, action_kind, action_desc, priority, status, estimated_tokens, risk, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.AgentID, string(d.Action.Kind()), d.Action.Describe(), d.Priority,
		string(d.Status), d.Cost.EstimatedTokens, string(d.Cost.Risk), d.CreatedAt.UTC(), now)
	if err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}
	return nil
}

// UpdateDecisionStatus transitions a stored decision and attaches its
// result when one exists.
func (s *Store) UpdateDecisionStatus(ctx context.Context, id string, status types.DecisionStatus, result *types.DecisionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resultJSON sql.NullString
	if result != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode decision result: %w", err)
		}
		resultJSON = sql.NullString{String: string(raw), Valid: true}
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE decisions SET status = ?, result_json = ?, updated_at = ? WHERE id = ?`,
		string(status), resultJSON, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update decision %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("decision %s not found", id)
	}
	return nil
}

// SavePheromone records an emitted pheromone for post-run analysis.
func (s *Store) SavePheromone(ctx context.Context, v PheromoneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO pheromones (id, agent_id, content, domain, strength, confidence, parent_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.AgentID, v.Content, v.Domain, v.Strength, v.Confidence, v.ParentID, v.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save pheromone: %w", err)
	}
	return nil
}

// PheromoneRecord is the stored form of a channel pheromone.
type PheromoneRecord struct {
	ID         string
	AgentID    string
	Content    string
	Domain     string
	Strength   float64
	Confidence float64
	ParentID   string
	CreatedAt  time.Time
}

// SaveProject records a detected collaboration project.
func (s *Store) SaveProject(ctx context.Context, id, title, kind, status string, agentIDs []string, detectedStep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := json.Marshal(agentIDs)
	if err != nil {
		return fmt.Errorf("failed to encode agent ids: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO projects (id, title, kind, status, agent_ids_json, detected_step, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, title, kind, status, string(ids), detectedStep, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// SaveSnapshot appends a full swarm snapshot for the given step.
func (s *Store) SaveSnapshot(ctx context.Context, snap types.SwarmSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (step, snapshot_json, created_at) VALUES (?, ?, ?)`,
		snap.Step, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recently stored snapshot, or an error
// if none exist yet.
func (s *Store) LatestSnapshot(ctx context.Context) (types.SwarmSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot_json FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return types.SwarmSnapshot{}, fmt.Errorf("no snapshots recorded")
	}
	if err != nil {
		return types.SwarmSnapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	var snap types.SwarmSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return types.SwarmSnapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// CountThoughts returns the number of stored thoughts, optionally
// scoped to one agent (empty agentID counts all).
func (s *Store) CountThoughts(ctx context.Context, agentID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	var err error
	if agentID == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM thoughts`).Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM thoughts WHERE agent_id = ?`, agentID).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count thoughts: %w", err)
	}
	return n, nil
}

// DecisionStatus reads back a stored decision's status.
func (s *Store) DecisionStatus(ctx context.Context, id string) (types.DecisionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM decisions WHERE id = ?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("decision %s not found", id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load decision %s: %w", id, err)
	}
	return types.DecisionStatus(status), nil
}
