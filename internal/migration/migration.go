// Package migration applies numbered SQL files to a database and records the
// applied version in a single-row schema_version table.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/habyt/internal/logger"
)

// Migration is one NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

type Runner struct {
	db *sql.DB
	fs fs.FS
}

// NewRunner reads migrations from the root of migrationFS.
func NewRunner(db *sql.DB, migrationFS fs.FS) *Runner {
	return &Runner{
		db: db,
		fs: migrationFS,
	}
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the applied schema version, 0 for a fresh database.
func (r *Runner) CurrentVersion() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, err
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Migrations returns every migration file sorted by version.
func (r *Runner) Migrations() ([]Migration, error) {
	files, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		prefix, name, ok := strings.Cut(file.Name(), "_")
		if !ok {
			return nil, fmt.Errorf("invalid migration filename %s (expected NNN_name.sql)", file.Name())
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version < 1 {
			return nil, fmt.Errorf("invalid version in migration filename %s", file.Name())
		}

		content, err := fs.ReadFile(r.fs, file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(name, ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}
	return migrations, nil
}

// Apply runs every pending migration, each in its own transaction, and
// returns how many were applied. A database newer than the newest migration
// is an error.
func (r *Runner) Apply() (int, error) {
	current, err := r.CurrentVersion()
	if err != nil {
		return 0, err
	}
	migrations, err := r.Migrations()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}

	latest := migrations[len(migrations)-1].Version
	if current > latest {
		return 0, fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := r.apply(m); err != nil {
			return applied, err
		}
		logger.Debug("Applied migration", "version", m.Version, "name", m.Name)
		applied++
	}
	return applied, nil
}

func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}
