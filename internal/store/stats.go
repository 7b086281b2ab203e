package store

import (
	"context"
	"os"
	"time"
)

// Stats holds database statistics.
type Stats struct {
	DBPath            string         `json:"db_path"`
	DBSizeBytes       int64          `json:"db_size_bytes"`
	TotalInteractions int            `json:"total_interactions"`
	DocumentContexts  int            `json:"document_contexts"`
	Sessions          []SessionStats `json:"sessions"`
}

// SessionStats holds per-session counts.
type SessionStats struct {
	SessionID string    `json:"session_id"`
	Count     int       `json:"count"`
	LastSeen  time.Time `json:"last_seen"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&st.TotalInteractions)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM document_contexts`).Scan(&st.DocumentContexts)

	sessions, err := s.Sessions(ctx)
	if err != nil {
		return st, err
	}
	st.Sessions = sessions

	return st, nil
}

// Sessions lists distinct session ids with interaction counts, most active
// first.
func (s *SQLiteStore) Sessions(ctx context.Context) ([]SessionStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, COUNT(*) AS cnt, MAX(ts) AS last_ts
		FROM interactions
		GROUP BY session_id ORDER BY cnt DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []SessionStats
	for rows.Next() {
		var ss SessionStats
		var lastTS int64
		if err := rows.Scan(&ss.SessionID, &ss.Count, &lastTS); err != nil {
			return nil, err
		}
		ss.LastSeen = time.UnixMilli(lastTS)
		sessions = append(sessions, ss)
	}
	return sessions, rows.Err()
}
