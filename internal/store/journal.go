package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "listical.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(s.localDir(), sqliteFileName)
}

// OpenDB opens the workspace sqlite file with the shared pragmas and schema.
// The command journal and the account tables live in the same file.
func (s Store) OpenDB(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is
	// locked" flakiness with a CLI and TUI touching the same workspace.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateDB(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateDB(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS commands (
			command_id TEXT PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			project_id TEXT NOT NULL,
			name TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_commands_created ON commands(created_at_unixms);`,
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL DEFAULT '',
			created_at_unixms INTEGER NOT NULL,
			deleted_at_unixms INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS deletion_requests (
			user_id TEXT PRIMARY KEY,
			requested_at_unixms INTEGER NOT NULL,
			due_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS audit_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_hash TEXT NOT NULL,
			action TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_audit_user ON audit_log(user_hash, created_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	_, err := ensureMetaUUID(ctx, db, "workspace_id")
	return err
}

func ensureMetaUUID(ctx context.Context, db *sql.DB, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("empty meta key")
	}
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, key).Scan(&v)
	if err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id, err := NewUUIDv4()
	if err != nil {
		return "", err
	}
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, key, id); err != nil {
		return "", err
	}
	return id, nil
}

// NewUUIDv4 returns a random RFC 4122 v4 uuid.
func NewUUIDv4() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		uint32(b[0])<<24|uint32(b[1])<<16|uint32(b[2])<<8|uint32(b[3]),
		uint16(b[4])<<8|uint16(b[5]),
		uint16(b[6])<<8|uint16(b[7]),
		uint16(b[8])<<8|uint16(b[9]),
		uint64(b[10])<<40|uint64(b[11])<<32|uint64(b[12])<<24|uint64(b[13])<<16|uint64(b[14])<<8|uint64(b[15]),
	), nil
}

// CommandRecord is one journaled command.
type CommandRecord struct {
	ID        string    `json:"id"`
	TS        time.Time `json:"ts"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Payload   any       `json:"payload,omitempty"`
}

// AppendCommand records one executed command in the append-only journal.
func (s Store) AppendCommand(ctx context.Context, projectID, name string, payload any) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("store: missing command name")
	}
	db, err := s.OpenDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	wsID, err := ensureMetaUUID(ctx, db, "workspace_id")
	if err != nil {
		return err
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	id, err := NewUUIDv4()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO commands(command_id, workspace_id, project_id, name, payload_json, created_at_unixms)
		VALUES(?, ?, ?, ?, ?, ?)
	`, id, wsID, projectID, name, string(pb), time.Now().UTC().UnixMilli())
	return err
}

// ReadCommands returns journal records in chronological order. A positive
// limit returns the most recent records only (tail).
func (s Store) ReadCommands(ctx context.Context, limit int) ([]CommandRecord, error) {
	db, err := s.OpenDB(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT command_id, created_at_unixms, project_id, name, payload_json
	      FROM commands
	      ORDER BY created_at_unixms DESC, rowid DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CommandRecord
	for rows.Next() {
		var id, projectID, name, payloadJSON string
		var tsMs int64
		if err := rows.Scan(&id, &tsMs, &projectID, &name, &payloadJSON); err != nil {
			return nil, err
		}
		var payload any
		_ = json.Unmarshal([]byte(payloadJSON), &payload)
		out = append(out, CommandRecord{
			ID:        id,
			TS:        time.UnixMilli(tsMs).UTC(),
			ProjectID: projectID,
			Name:      name,
			Payload:   payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Tail query runs newest-first; flip back to chronological.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if out == nil {
		out = []CommandRecord{}
	}
	return out, nil
}
