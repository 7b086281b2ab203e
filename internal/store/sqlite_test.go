package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcliao/chat-memory/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	saved, err := s.Save(ctx, SaveParams{
		SessionID: "s1",
		Prompt:    "hello",
		Response:  "world",
		Tags:      []string{"chat"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected non-empty ID")
	}
	if saved.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(all))
	}
	got := all[0]
	if got.ID != saved.ID || got.SessionID != "s1" || got.Prompt != "hello" || got.Response != "world" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "chat" {
		t.Errorf("expected tags [chat], got %v", got.Tags)
	}
}

func TestSaveGeneratesUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		saved, err := s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "p", Response: "r"})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if seen[saved.ID] {
			t.Fatalf("duplicate id %s", saved.ID)
		}
		seen[saved.ID] = true
	}
}

func TestSaveDedupesTags(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	saved, _ := s.Save(ctx, SaveParams{
		SessionID: "s1", Prompt: "p", Response: "r",
		Tags: []string{"chat", "chat", "", "error"},
	})
	if len(saved.Tags) != 2 || saved.Tags[0] != "chat" || saved.Tags[1] != "error" {
		t.Errorf("expected [chat error], got %v", saved.Tags)
	}
}

func TestBySession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "a", Response: "x"})
	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "b", Response: "y"})
	s.Save(ctx, SaveParams{SessionID: "s2", Prompt: "c", Response: "z"})

	got, err := s.BySession(ctx, "s1")
	if err != nil {
		t.Fatalf("by session: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2, got %d", len(got))
	}

	// Exact match only
	got, _ = s.BySession(ctx, "s")
	if len(got) != 0 {
		t.Errorf("expected 0 for partial session id, got %d", len(got))
	}
}

func TestByTagsORSemantics(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "1", Response: "r", Tags: []string{"a"}})
	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "2", Response: "r", Tags: []string{"b"}})
	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "3", Response: "r", Tags: []string{"c"}})
	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "4", Response: "r", Tags: []string{"a", "b"}})

	got, err := s.ByTags(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("by tags: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected union of a/b (3), got %d", len(got))
	}
	for _, in := range got {
		if len(in.Tags) == 1 && in.Tags[0] == "c" {
			t.Errorf("record tagged only 'c' must not match: %+v", in)
		}
	}

	got, _ = s.ByTags(ctx, nil)
	if len(got) != 0 {
		t.Errorf("expected 0 for empty tag filter, got %d", len(got))
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "What is the Weather", Response: "Sunny"})
	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "unrelated", Response: "cloudy skies"})
	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "nothing", Response: "here"})

	// Match in prompt
	got, err := s.Search(ctx, "weather")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 prompt match, got %d", len(got))
	}

	// Match in response
	got, _ = s.Search(ctx, "CLOUDY")
	if len(got) != 1 {
		t.Errorf("expected 1 response match, got %d", len(got))
	}

	// No match
	got, _ = s.Search(ctx, "rain")
	if len(got) != 0 {
		t.Errorf("expected 0 matches, got %d", len(got))
	}
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 15; i++ {
		s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "p", Response: "r"})
	}

	got, err := s.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected 5, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("expected descending timestamps at %d", i)
		}
	}

	// Default limit is 10
	got, _ = s.Recent(ctx, 0)
	if len(got) != 10 {
		t.Errorf("expected default limit 10, got %d", len(got))
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	saved, _ := s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "p", Response: "r"})

	if err := s.Remove(ctx, saved.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	all, _ := s.All(ctx)
	if len(all) != 0 {
		t.Errorf("expected 0 after remove, got %d", len(all))
	}

	// Removing an absent id is a no-op
	if err := s.Remove(ctx, "no-such-id"); err != nil {
		t.Errorf("remove absent id should be a no-op, got %v", err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "a", Response: "r"})
	s.Save(ctx, SaveParams{SessionID: "s2", Prompt: "b", Response: "r"})

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	all, _ := s.All(ctx)
	if len(all) != 0 {
		t.Errorf("expected empty store after clear, got %d", len(all))
	}
	n, _ := s.Count(ctx)
	if n != 0 {
		t.Errorf("expected count 0 after clear, got %d", n)
	}
}

func TestCountByTag(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "a", Response: "r", Tags: []string{"chat"}})
	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "b", Response: "r", Tags: []string{"document-request"}})
	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "c", Response: "r", Tags: []string{"chat", "error"}})

	n, err := s.CountByTag(ctx, "chat")
	if err != nil {
		t.Fatalf("count by tag: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 chat, got %d", n)
	}
	n, _ = s.CountByTag(ctx, "error")
	if n != 1 {
		t.Errorf("expected 1 error, got %d", n)
	}
}

func TestImportPreservesIDs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src, _ := NewSQLiteStore(filepath.Join(dir, "src.db"))
	defer src.Close()
	a, _ := src.Save(ctx, SaveParams{SessionID: "s1", Prompt: "a", Response: "x", Tags: []string{"chat"}})
	src.Save(ctx, SaveParams{SessionID: "s1", Prompt: "b", Response: "y"})

	exported, _ := src.All(ctx)

	dst, _ := NewSQLiteStore(filepath.Join(dir, "dst.db"))
	defer dst.Close()

	n, err := dst.Import(ctx, exported)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}

	// Re-import skips duplicates
	n, _ = dst.Import(ctx, []model.Interaction{*a})
	if n != 0 {
		t.Errorf("expected 0 on duplicate import, got %d", n)
	}
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "a", Response: "r"})
	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "b", Response: "r"})
	s.Save(ctx, SaveParams{SessionID: "s2", Prompt: "c", Response: "r"})

	sessions, err := s.Sessions(ctx)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != "s1" || sessions[0].Count != 2 {
		t.Errorf("expected s1 with count 2 first, got %+v", sessions[0])
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Save(ctx, SaveParams{SessionID: "s1", Prompt: "a", Response: "r"})
	s.SaveDocument(ctx, SaveDocumentParams{FileName: "report.pdf", Summary: "sum", Content: "body"})

	stats, err := s.Stats(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalInteractions != 1 {
		t.Errorf("expected 1 interaction, got %d", stats.TotalInteractions)
	}
	if stats.DocumentContexts != 1 {
		t.Errorf("expected 1 document context, got %d", stats.DocumentContexts)
	}
	if stats.DBSizeBytes == 0 {
		t.Error("expected non-zero db size")
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
