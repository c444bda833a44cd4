package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"blaemart-be/internal/config"
	"blaemart-be/internal/db"

	_ "github.com/lib/pq"
)

const ledgerDDL = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
`

func main() {
	mode := flag.String("mode", "up", "up applies pending migrations, down rolls back the latest")
	dir := flag.String("dir", "./migrations", "directory containing .sql migration files")
	flag.Parse()

	cfg := config.LoadConfig()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	defer database.Close()

	if err := run(database, *mode, *dir); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func run(db *sql.DB, mode, dir string) error {
	if _, err := db.Exec(ledgerDDL); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	switch mode {
	case "up":
		return migrateUp(db, files)
	case "down":
		return migrateDown(db, files)
	default:
		return fmt.Errorf("unknown mode %q (use up or down)", mode)
	}
}

func appliedVersions(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func migrateUp(db *sql.DB, files []string) error {
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	pending := 0
	for _, file := range files {
		version := filepath.Base(file)
		if applied[version] {
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}

		log.Printf("applying %s", version)
		if err := applyInTx(db, section(string(content), "Up"),
			`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("apply %s: %w", version, err)
		}
		pending++
	}

	if pending == 0 {
		log.Println("nothing to apply")
	} else {
		log.Printf("applied %d migration(s)", pending)
	}
	return nil
}

func migrateDown(db *sql.DB, files []string) error {
	var last string
	err := db.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC LIMIT 1`).Scan(&last)
	if err == sql.ErrNoRows {
		log.Println("nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read last applied version: %w", err)
	}

	var path string
	for _, f := range files {
		if filepath.Base(f) == last {
			path = f
			break
		}
	}
	if path == "" {
		return fmt.Errorf("no migration file for applied version %s", last)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	log.Printf("rolling back %s", last)
	if err := applyInTx(db, section(string(content), "Down"),
		`DELETE FROM schema_migrations WHERE version = $1`, last); err != nil {
		return fmt.Errorf("roll back %s: %w", last, err)
	}
	return nil
}

// applyInTx runs the migration SQL and the ledger bookkeeping in one
// transaction so a failed migration never leaves a stale ledger row.
func applyInTx(db *sql.DB, migrationSQL, ledgerSQL, version string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(migrationSQL); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(ledgerSQL, version); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// section extracts the SQL between "-- +migrate <name>" and the next
// "-- +migrate" marker.
func section(content, name string) string {
	var b strings.Builder
	in := false

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.Contains(line, "-- +migrate "+name):
			in = true
		case in && strings.HasPrefix(line, "-- +migrate"):
			return b.String()
		case in:
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
