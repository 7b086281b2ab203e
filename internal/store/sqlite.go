package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/chat-memory/internal/model"
)

const defaultRecentLimit = 10

// SQLiteStore implements Store using SQLite. It also holds the parallel
// document-context table.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS interactions (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		prompt     TEXT NOT NULL,
		response   TEXT NOT NULL,
		ts         INTEGER NOT NULL,
		tags       TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_session ON interactions(session_id);
	CREATE INDEX IF NOT EXISTS idx_interactions_ts ON interactions(ts DESC);

	CREATE TABLE IF NOT EXISTS document_contexts (
		id         TEXT PRIMARY KEY,
		file_name  TEXT NOT NULL,
		summary    TEXT NOT NULL,
		key_points TEXT,
		content    TEXT NOT NULL,
		ts         INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_ts ON document_contexts(ts DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save appends one interaction. Timestamps are stored as unix milliseconds.
func (s *SQLiteStore) Save(ctx context.Context, p SaveParams) (*model.Interaction, error) {
	now := time.Now()
	id := s.newID()
	tags := dedupeTags(p.Tags)

	var tagsJSON *string
	if len(tags) > 0 {
		b, _ := json.Marshal(tags)
		str := string(b)
		tagsJSON = &str
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interactions (id, session_id, prompt, response, ts, tags)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.SessionID, p.Prompt, p.Response, now.UnixMilli(), tagsJSON)
	if err != nil {
		return nil, fmt.Errorf("insert interaction: %w", err)
	}

	return &model.Interaction{
		ID:        id,
		SessionID: p.SessionID,
		Prompt:    p.Prompt,
		Response:  p.Response,
		Timestamp: now,
		Tags:      tags,
	}, nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]model.Interaction, error) {
	return s.query(ctx, `SELECT id, session_id, prompt, response, ts, tags FROM interactions`)
}

func (s *SQLiteStore) BySession(ctx context.Context, sessionID string) ([]model.Interaction, error) {
	return s.query(ctx,
		`SELECT id, session_id, prompt, response, ts, tags FROM interactions WHERE session_id = ?`,
		sessionID)
}

// ByTags returns interactions carrying any of the given tags. Tags are stored
// as a JSON array, so membership is a quoted-substring match per tag.
func (s *SQLiteStore) ByTags(ctx context.Context, tags []string) ([]model.Interaction, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	conds := make([]string, 0, len(tags))
	args := make([]interface{}, 0, len(tags))
	for _, tag := range tags {
		conds = append(conds, "tags LIKE ?")
		args = append(args, `%"`+tag+`"%`)
	}

	q := `SELECT id, session_id, prompt, response, ts, tags FROM interactions WHERE ` +
		strings.Join(conds, " OR ")
	return s.query(ctx, q, args...)
}

// Search matches the query as a case-insensitive substring of prompt or
// response. SQLite LIKE is case-insensitive for ASCII.
func (s *SQLiteStore) Search(ctx context.Context, query string) ([]model.Interaction, error) {
	pat := "%" + query + "%"
	return s.query(ctx,
		`SELECT id, session_id, prompt, response, ts, tags FROM interactions
		 WHERE prompt LIKE ? OR response LIKE ?`, pat, pat)
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]model.Interaction, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.query(ctx,
		`SELECT id, session_id, prompt, response, ts, tags FROM interactions
		 ORDER BY ts DESC, id DESC LIMIT ?`, limit)
}

func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM interactions`)
	return err
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) CountByTag(ctx context.Context, tag string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM interactions WHERE tags LIKE ?`, `%"`+tag+`"%`).Scan(&n)
	return n, err
}

// Import inserts exported interactions, preserving ids and timestamps.
// Records whose id already exists are skipped. Returns the number imported.
func (s *SQLiteStore) Import(ctx context.Context, interactions []model.Interaction) (int, error) {
	imported := 0
	for _, in := range interactions {
		tags := dedupeTags(in.Tags)
		var tagsJSON *string
		if len(tags) > 0 {
			b, _ := json.Marshal(tags)
			str := string(b)
			tagsJSON = &str
		}
		id := in.ID
		if id == "" {
			id = s.newID()
		}
		res, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO interactions (id, session_id, prompt, response, ts, tags)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, in.SessionID, in.Prompt, in.Response, in.Timestamp.UnixMilli(), tagsJSON)
		if err != nil {
			return imported, fmt.Errorf("import interaction: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			imported++
		}
	}
	return imported, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...interface{}) ([]model.Interaction, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []model.Interaction
	for rows.Next() {
		in, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, in)
	}
	return interactions, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanInteraction(row scanner) (model.Interaction, error) {
	var in model.Interaction
	var tagsJSON sql.NullString
	var ts int64

	err := row.Scan(&in.ID, &in.SessionID, &in.Prompt, &in.Response, &ts, &tagsJSON)
	if err != nil {
		return in, err
	}

	in.Timestamp = time.UnixMilli(ts)
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &in.Tags)
	}
	return in, nil
}

// dedupeTags drops duplicate tags preserving first-seen order, so repeated
// saves of the same logical tag do not accumulate.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
