package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_New_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	s.SaveToMemory(context.Background(), "Hello", "en", "hi", "नमस्ते", "", "ollama")
	s.Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()

	if _, found, _ := s.GetCachedTranslation(context.Background(), "Hello", "en", "hi", "ollama"); !found {
		t.Error("expected entry to survive reopening")
	}
}

func TestStore_GetCachedTranslation_Miss(t *testing.T) {
	s := newTestStore(t)

	text, found, err := s.GetCachedTranslation(context.Background(), "Hello", "en", "hi", "ollama")
	if err != nil {
		t.Errorf("GetCachedTranslation failed: %v", err)
	}
	if found {
		t.Error("expected not found for uncached translation")
	}
	if text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}

func TestStore_GetCachedTranslation_Hit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "Hello", "en", "hi", "नमस्ते", "Hindi Translation: नमस्ते", "ollama"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	text, found, err := s.GetCachedTranslation(ctx, "  Hello ", "en", "hi", "ollama")
	if err != nil {
		t.Errorf("GetCachedTranslation failed: %v", err)
	}
	if !found {
		t.Fatal("expected to find cached translation for whitespace-padded key")
	}
	if text != "नमस्ते" {
		t.Errorf("expected 'नमस्ते', got %q", text)
	}

	entries, _ := s.ListMemory(ctx)
	if len(entries) != 1 || entries[0].UsageCount != 2 {
		t.Errorf("expected usage count 2 after hit, got %+v", entries)
	}
}

func TestStore_GetCachedTranslation_NFC(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// "café" with a combining accent, looked up in precomposed form.
	s.SaveToMemory(ctx, "cafe\u0301", "en", "hi", "कैफ़े", "", "ollama")

	if _, found, _ := s.GetCachedTranslation(ctx, "caf\u00e9", "en", "hi", "ollama"); !found {
		t.Error("expected NFC-normalized lookup to match")
	}
}

func TestStore_GetCachedTranslation_Invalidated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveToMemory(ctx, "Hello", "en", "hi", "नमस्ते", "", "ollama")

	entries, err := s.ListMemory(ctx)
	if err != nil || len(entries) == 0 {
		t.Fatalf("ListMemory failed: %v (%d entries)", err, len(entries))
	}
	if err := s.InvalidateMemory(ctx, entries[0].ID); err != nil {
		t.Fatalf("InvalidateMemory failed: %v", err)
	}

	_, found, err := s.GetCachedTranslation(ctx, "Hello", "en", "hi", "ollama")
	if err != nil {
		t.Errorf("GetCachedTranslation failed: %v", err)
	}
	if found {
		t.Error("expected not found for invalidated translation")
	}
}

func TestStore_SaveToMemory_Replaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveToMemory(ctx, "Hello", "en", "hi", "हैलो", "", "ollama")
	s.SaveToMemory(ctx, "Hello", "en", "hi", "नमस्ते", "", "ollama")

	entries, _ := s.ListMemory(ctx)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].FinalText != "नमस्ते" {
		t.Errorf("expected latest translation to win, got %+v", entries[0])
	}
}

func TestStore_GetCachedTranslation_PerService(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveToMemory(ctx, "Hello", "en", "hi", "हैलो", "", "google")
	s.SaveToMemory(ctx, "Hello", "en", "hi", "नमस्ते", "", "ollama/llama2:7b-chat")

	if entries, _ := s.ListMemory(ctx); len(entries) != 2 {
		t.Fatalf("expected one entry per service, got %d", len(entries))
	}

	text, found, err := s.GetCachedTranslation(ctx, "Hello", "en", "hi", "ollama/llama2:7b-chat")
	if err != nil || !found || text != "नमस्ते" {
		t.Errorf("expected ollama entry, got %q found=%v err=%v", text, found, err)
	}
	if _, found, _ := s.GetCachedTranslation(ctx, "Hello", "en", "hi", "ollama/llama2:7b-chat+clean"); found {
		t.Error("entry of another service must not be served")
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 0 {
		t.Errorf("expected 0 total entries, got %d", stats.TotalEntries)
	}

	s.SaveToMemory(ctx, "Hello", "en", "hi", "नमस्ते", "", "ollama")
	s.SaveToMemory(ctx, "World", "en", "hi", "दुनिया", "", "ollama")
	entries, _ := s.ListMemory(ctx)
	s.InvalidateMemory(ctx, entries[0].ID)

	stats, err = s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 2 {
		t.Errorf("expected 2 total entries, got %d", stats.TotalEntries)
	}
	if stats.ActiveEntries != 1 || stats.InvalidEntries != 1 {
		t.Errorf("expected 1 active and 1 invalid, got %+v", stats)
	}
}

func TestStore_DeleteMemory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveToMemory(ctx, "Hello", "en", "hi", "नमस्ते", "", "ollama")
	entries, _ := s.ListMemory(ctx)
	if len(entries) == 0 {
		t.Fatal("expected at least one entry")
	}

	if err := s.DeleteMemory(ctx, entries[0].ID); err != nil {
		t.Errorf("DeleteMemory failed: %v", err)
	}

	entries, _ = s.ListMemory(ctx)
	if len(entries) != 0 {
		t.Errorf("expected 0 entries after delete, got %d", len(entries))
	}
}

func TestStore_ClearMemory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveToMemory(ctx, "Hello", "en", "hi", "नमस्ते", "", "ollama")
	s.SaveToMemory(ctx, "World", "en", "hi", "दुनिया", "", "ollama")

	count, err := s.ClearMemory(ctx)
	if err != nil {
		t.Fatalf("ClearMemory failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 cleared, got %d", count)
	}
}

func TestStore_Runs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateRun(ctx, "input.json", "output.csv", "ollama", "llama2:7b-chat", 10, 5)
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if !strings.HasPrefix(id, "run_") {
		t.Errorf("unexpected run ID %q", id)
	}

	run, err := s.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.Status != RunRunning || run.Start != 10 || run.Limit != 5 {
		t.Errorf("unexpected run %+v", run)
	}

	if err := s.RecordFailure(ctx, id, 12, "Good morning", "empty translation"); err != nil {
		t.Fatalf("RecordFailure failed: %v", err)
	}
	if err := s.RecordFailure(ctx, id, 11, "Hello", "request failed"); err != nil {
		t.Fatalf("RecordFailure failed: %v", err)
	}
	if err := s.FinishRun(ctx, id, RunCompleted, 5, 3, 2); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	run, _ = s.GetRun(ctx, id)
	if run.Status != RunCompleted || run.Attempted != 5 || run.Written != 3 || run.Failed != 2 {
		t.Errorf("unexpected finished run %+v", run)
	}

	failures, err := s.GetRunFailures(ctx, id)
	if err != nil {
		t.Fatalf("GetRunFailures failed: %v", err)
	}
	if len(failures) != 2 || failures[0].Index != 11 || failures[1].Index != 12 {
		t.Errorf("expected failures ordered by index, got %+v", failures)
	}
}

func TestStore_FinishRun_Unknown(t *testing.T) {
	s := newTestStore(t)

	if err := s.FinishRun(context.Background(), "run_missing", RunCompleted, 0, 0, 0); err == nil {
		t.Error("expected error for unknown run")
	}
	if _, err := s.GetRun(context.Background(), "run_missing"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestStore_ListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, _ := s.CreateRun(ctx, "a.json", "a.csv", "ollama", "", 0, 1)
	second, _ := s.CreateRun(ctx, "b.json", "b.csv", "gemini", "", 0, 1)

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}

	runs, _ = s.ListRuns(ctx, 1)
	if len(runs) != 1 {
		t.Errorf("expected limit to apply, got %d runs", len(runs))
	}
}
