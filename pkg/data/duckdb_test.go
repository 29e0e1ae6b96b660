package data

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewDuckDBRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to init DB: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestInitDuckDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB: %v", err)
	}
	defer db.Close()

	var tableCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'kv'`).Scan(&tableCount)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}

	if tableCount != 1 {
		t.Errorf("Expected 1 table, got %d", tableCount)
	}
}

func TestInitDuckDBCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("DB file was not created")
	}
}

func TestGetMissingKey(t *testing.T) {
	repo := setupTestDB(t)

	value, ok, err := repo.Get("history")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ok {
		t.Errorf("Expected missing key, got value %q", value)
	}
}

func TestPutUpsert(t *testing.T) {
	repo := setupTestDB(t)

	if err := repo.Put("bookmarks", "[]"); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	if err := repo.Put("bookmarks", `[{"slug":"a"}]`); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}

	value, ok, err := repo.Get("bookmarks")
	if err != nil || !ok {
		t.Fatalf("Expected stored value, got ok=%v err=%v", ok, err)
	}
	if value != `[{"slug":"a"}]` {
		t.Errorf("Expected overwritten value, got %q", value)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "komik.db")

	repo, err := NewDuckDBRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	store := NewStore(repo, nil)
	store.Load()
	if err := store.RecordHistory(Comic{Slug: "one-piece", Title: "One Piece"}, nil); err != nil {
		t.Fatalf("Failed to record history: %v", err)
	}
	if _, err := store.ToggleBookmark(Comic{Slug: "one-piece", Title: "One Piece"}); err != nil {
		t.Fatalf("Failed to bookmark: %v", err)
	}
	repo.Close()

	repo, err = NewDuckDBRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen: %v", err)
	}
	defer repo.Close()

	reopened := NewStore(repo, nil)
	reopened.Load()

	if len(reopened.History()) != 1 || reopened.History()[0].Slug != "one-piece" {
		t.Errorf("Expected history to survive reopen, got %+v", reopened.History())
	}
	if !reopened.IsBookmarked("one-piece") {
		t.Error("Expected bookmark to survive reopen")
	}
}
