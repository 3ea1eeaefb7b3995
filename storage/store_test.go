package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaguanLabs/gotlas"
)

// exerciseStore runs the common SnapshotStore contract against s.
func exerciseStore(t *testing.T, s gotlas.SnapshotStore) {
	t.Helper()

	if _, ok, err := s.Load("missing"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Save("k", []byte("one")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save("k", []byte("two")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	data, ok, err := s.Load("k")
	if err != nil || !ok || string(data) != "two" {
		t.Fatalf("Load = %q, %v, %v; want two", data, ok, err)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("deleting a missing key should succeed: %v", err)
	}
	if _, ok, _ := s.Load("k"); ok {
		t.Error("expected key to be gone")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)

	s.Save("a", []byte("x"))
	data, _, _ := s.Load("a")
	data[0] = 'y'
	if again, _, _ := s.Load("a"); string(again) != "x" {
		t.Error("Load must return a copy")
	}
	if keys := s.Keys(); len(keys) != 1 || keys[0] != "a" {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "nested"))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	exerciseStore(t, s)
}

func TestFileStore_KeyToFileName(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	if err := s.Save(gotlas.HistoryKey, []byte("[]")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ai-translator-conversation-history.json")); err != nil {
		t.Errorf("expected snapshot file: %v", err)
	}

	s.Save("../escape", []byte("x"))
	if _, err := os.Stat(filepath.Join(dir, ".._escape.json")); err != nil {
		t.Errorf("expected sanitized file name: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStore_UpdatedAt(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "gotlas.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok, _ := s.UpdatedAt("k"); ok {
		t.Error("expected no timestamp for missing key")
	}
	s.Save("k", []byte("v"))
	if at, ok, err := s.UpdatedAt("k"); !ok || err != nil || at.IsZero() {
		t.Errorf("UpdatedAt = %v, %v, %v", at, ok, err)
	}
}

func TestSQLiteStore_RequiresPath(t *testing.T) {
	if _, err := NewSQLiteStore(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		cfg     Config
		wantErr bool
	}{
		{Config{Backend: "memory"}, false},
		{Config{Backend: "file", Dir: dir}, false},
		{Config{Dir: dir}, false},
		{Config{Backend: "SQLite", SQLitePath: filepath.Join(dir, "s.db")}, false},
		{Config{Backend: "redis", RedisURL: "::bad"}, true},
		{Config{Backend: "mongo"}, true},
	}

	for _, tt := range tests {
		s, err := Open(tt.cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%+v) error = %v, wantErr %v", tt.cfg, err, tt.wantErr)
			continue
		}
		if s != nil {
			s.Close()
		}
	}
}

func TestStoresBackHistory(t *testing.T) {
	s := NewMemoryStore()
	h := gotlas.NewHistoryStore(s)
	h.Add(gotlas.ConversationDraft{
		SourceLanguage: "en",
		TargetLanguage: "es",
		OriginalText:   "Hello",
		TranslatedText: "Hola",
		Tone:           gotlas.ToneNeutral,
	})

	reloaded := gotlas.NewHistoryStore(s)
	if reloaded.Len() != 1 {
		t.Errorf("expected history to survive reload, got %d entries", reloaded.Len())
	}
}
