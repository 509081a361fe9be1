// Package persistence is the save-code boundary: a SQLite store keyed by
// short shareable codes, and the versioned document migration that runs on
// every load.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/botfarm/internal/engine"
	"github.com/talgya/botfarm/internal/entropy"
)

// ErrNotFound is returned when a code does not exist or has expired.
var ErrNotFound = errors.New("save not found")

const (
	codeDigits  = 6
	codeRetries = 100
	saveTTL     = 30 * 24 * time.Hour
)

// Store wraps a SQLite connection holding saved games.
type Store struct {
	conn *sqlx.DB
	rand entropy.Source
}

// Open opens or creates the save database at path.
func Open(path string, src entropy.Source) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	st := &Store{conn: conn, rand: src}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		code TEXT PRIMARY KEY,
		state BLOB NOT NULL,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_saves_expires ON saves(expires_at);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// newCode draws a 6-digit code not currently in use. Bounded retry; the code
// space comfortably exceeds realistic save counts.
func (st *Store) newCode() (string, error) {
	for i := 0; i < codeRetries; i++ {
		code := fmt.Sprintf("%06d", int(st.rand.Float64()*1000000)%1000000)
		var n int
		if err := st.conn.Get(&n, "SELECT COUNT(*) FROM saves WHERE code = ?", code); err != nil {
			return "", err
		}
		if n == 0 {
			return code, nil
		}
	}
	return "", errors.New("code space exhausted")
}

// Save writes a game state under code, minting a fresh code when empty.
// The expiry window restarts on every save.
func (st *Store) Save(s *engine.GameState, code string) (string, error) {
	if code == "" {
		var err error
		if code, err = st.newCode(); err != nil {
			return "", err
		}
	}
	s.SaveCode = code
	blob, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	now := time.Now()
	_, err = st.conn.Exec(`
		INSERT INTO saves (code, state, created_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET state = excluded.state, expires_at = excluded.expires_at`,
		code, blob, now.Unix(), now.Add(saveTTL).Unix())
	if err != nil {
		return "", fmt.Errorf("write save: %w", err)
	}
	return code, nil
}

// Load retrieves and migrates the game state saved under code. Expired codes
// report ErrNotFound just like absent ones.
func (st *Store) Load(code string) (*engine.GameState, error) {
	var blob []byte
	err := st.conn.Get(&blob,
		"SELECT state FROM saves WHERE code = ? AND expires_at > ?", code, time.Now().Unix())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	return Decode(blob)
}

// Prune deletes expired saves, returning how many went.
func (st *Store) Prune() (int64, error) {
	res, err := st.conn.Exec("DELETE FROM saves WHERE expires_at <= ?", time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Decode unmarshals a save document, running migrations first so documents
// written by any earlier schema still load.
func Decode(blob []byte) (*engine.GameState, error) {
	var doc map[string]any
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	doc = Migrate(doc)
	migrated, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("re-encode save: %w", err)
	}
	var s engine.GameState
	if err := json.Unmarshal(migrated, &s); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &s, nil
}
