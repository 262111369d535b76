package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`

// MigrateUp applies every up migration not yet recorded in schema_migrations.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(migrationsTable); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}
	entries, err := migrationNames(".up.sql")
	if err != nil {
		return err
	}
	for _, name := range entries {
		version := migrationVersion(name, ".up.sql")
		var exists int
		if err := db.QueryRow(`SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if exists > 0 {
			continue
		}
		if err := execMigration(db, name); err != nil {
			return err
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	return nil
}

// MigrateDown reverts all migrations, newest first.
func MigrateDown(db *sql.DB) error {
	entries, err := migrationNames(".down.sql")
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	for _, name := range entries {
		if err := execMigration(db, name); err != nil {
			return err
		}
	}
	if _, err := db.Exec(`DROP TABLE IF EXISTS schema_migrations`); err != nil {
		return fmt.Errorf("drop migrations table: %w", err)
	}
	return nil
}

func migrationNames(suffix string) ([]string, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	return entries, nil
}

func migrationVersion(name, suffix string) string {
	return strings.TrimSuffix(path.Base(name), suffix)
}

func execMigration(db *sql.DB, name string) error {
	sqlBytes, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	if _, err := db.Exec(string(sqlBytes)); err != nil {
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	return nil
}
