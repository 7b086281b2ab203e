package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rcliao/chat-memory/internal/model"
)

// SaveDocumentParams holds parameters for storing a document context.
type SaveDocumentParams struct {
	FileName  string
	Summary   string
	KeyPoints []string
	Content   string
}

// SaveDocument stores one document context.
func (s *SQLiteStore) SaveDocument(ctx context.Context, p SaveDocumentParams) (*model.DocumentContext, error) {
	now := time.Now()
	id := s.newID()

	var keyPointsJSON *string
	if len(p.KeyPoints) > 0 {
		b, _ := json.Marshal(p.KeyPoints)
		str := string(b)
		keyPointsJSON = &str
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO document_contexts (id, file_name, summary, key_points, content, ts)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.FileName, p.Summary, keyPointsJSON, p.Content, now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("insert document context: %w", err)
	}

	return &model.DocumentContext{
		ID:        id,
		FileName:  p.FileName,
		Summary:   p.Summary,
		KeyPoints: p.KeyPoints,
		Content:   p.Content,
		Timestamp: now,
	}, nil
}

// Documents returns all document contexts, newest first.
func (s *SQLiteStore) Documents(ctx context.Context) ([]model.DocumentContext, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, summary, key_points, content, ts
		 FROM document_contexts ORDER BY ts DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.DocumentContext
	for rows.Next() {
		var d model.DocumentContext
		var keyPointsJSON sql.NullString
		var ts int64
		if err := rows.Scan(&d.ID, &d.FileName, &d.Summary, &keyPointsJSON, &d.Content, &ts); err != nil {
			return nil, err
		}
		d.Timestamp = time.UnixMilli(ts)
		if keyPointsJSON.Valid {
			json.Unmarshal([]byte(keyPointsJSON.String), &d.KeyPoints)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// RemoveDocument deletes one document context. Absent ids are a no-op.
func (s *SQLiteStore) RemoveDocument(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM document_contexts WHERE id = ?`, id)
	return err
}

// ClearDocuments deletes all document contexts.
func (s *SQLiteStore) ClearDocuments(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM document_contexts`)
	return err
}

// CountDocuments returns the total number of document contexts.
func (s *SQLiteStore) CountDocuments(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM document_contexts`).Scan(&n)
	return n, err
}
