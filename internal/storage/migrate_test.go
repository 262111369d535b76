package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	if err := repo.Set(t.Context(), "student-app-store", []byte(`{"xp":10}`)); err != nil {
		t.Fatalf("set after roundtrip failed: %v", err)
	}

	got, err := repo.Get(t.Context(), "student-app-store")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if string(got) != `{"xp":10}` {
		t.Fatalf("unexpected value after roundtrip: %q", got)
	}
}
