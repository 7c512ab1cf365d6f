package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/habyt/internal/constants"
	"github.com/julianstephens/habyt/internal/logger"
	"github.com/julianstephens/habyt/internal/migration"
	"github.com/julianstephens/habyt/internal/models"
	"github.com/julianstephens/habyt/internal/store"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	habitsCounter = "habits"
	logsCounter   = "habit_logs"
)

// SQLiteStore keeps both stores in a single SQLite database. Every save
// rewrites the affected tables in one transaction.
type SQLiteStore struct {
	dir  string
	path string
	db   *sql.DB
}

func NewSQLiteStore(configDir string) *SQLiteStore {
	return &SQLiteStore{
		dir:  configDir,
		path: filepath.Join(configDir, constants.SQLiteFile),
	}
}

func (s *SQLiteStore) Init() error {
	created, err := ensureDir(s.dir)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Created config directory", "path", s.dir)
	}
	return s.open()
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	migrations, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		db.Close()
		return err
	}
	if _, err := migration.NewRunner(db, migrations).Apply(); err != nil {
		db.Close()
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	s.db = db
	return nil
}

// exists reports whether the database file is present. A missing file means
// an empty store and is not created by loading.
func (s *SQLiteStore) exists() (bool, error) {
	if s.db != nil {
		return true, nil
	}
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to access database: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) counter(name string) (int, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM counters WHERE name = ?", name).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return value, err
}

func (s *SQLiteStore) Load() (*store.HabitStore, error) {
	ok, err := s.exists()
	if err != nil {
		return nil, err
	}
	if !ok {
		return store.NewHabitStore(), nil
	}
	if err := s.open(); err != nil {
		return nil, err
	}

	hs := store.NewHabitStore()
	if hs.CurrentID, err = s.counter(habitsCounter); err != nil {
		return nil, fmt.Errorf("failed to read habit counter: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, name, quantum, unit, notes, streak, difficulty, kind, active
		FROM habits ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			h                        models.Habit
			name, unit               string
			streak, difficulty, kind string
		)
		if err := rows.Scan(&h.ID, &name, &h.Quantum, &unit, &h.Notes, &streak, &difficulty, &kind, &h.Active); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		if h.Name, err = models.NewHabitName(name); err != nil {
			return nil, fmt.Errorf("habit %d: %w", h.ID, err)
		}
		if h.Unit, err = models.NewHabitUnit(unit); err != nil {
			return nil, fmt.Errorf("habit %d: %w", h.ID, err)
		}
		h.Streak = models.Streak(streak)
		h.Difficulty = models.Difficulty(difficulty)
		h.Kind = models.Kind(kind)
		if !h.Streak.Valid() || !h.Difficulty.Valid() || !h.Kind.Valid() {
			return nil, fmt.Errorf("habit %d: unknown classification %q/%q/%q", h.ID, streak, difficulty, kind)
		}
		hs.Data[h.ID] = h
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}

	if hs.Repair() {
		s.log().Warn("Habit id counter was behind stored ids; raised", "current_id", hs.CurrentID)
	}
	s.log().Debug("Loaded habit store", "habits", hs.Len())
	return hs, nil
}

func (s *SQLiteStore) Save(hs *store.HabitStore) error {
	if err := hs.Validate(); err != nil {
		return fmt.Errorf("refusing to save habits: %w", err)
	}
	if err := s.Init(); err != nil {
		return err
	}

	err := s.rewrite(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM habits"); err != nil {
			return err
		}
		for _, h := range hs.List() {
			_, err := tx.Exec(`
				INSERT INTO habits (id, name, quantum, unit, notes, streak, difficulty, kind, active)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				h.ID, h.Name.String(), h.Quantum, h.Unit.String(), h.Notes,
				string(h.Streak), string(h.Difficulty), string(h.Kind), h.Active)
			if err != nil {
				return fmt.Errorf("habit %d: %w", h.ID, err)
			}
		}
		return setCounter(tx, habitsCounter, hs.CurrentID)
	})
	if err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}
	s.log().Debug("Saved habit store", "habits", hs.Len())
	return nil
}

func (s *SQLiteStore) LoadLog() (*store.HabitLogStore, error) {
	ok, err := s.exists()
	if err != nil {
		return nil, err
	}
	if !ok {
		return store.NewHabitLogStore(), nil
	}
	if err := s.open(); err != nil {
		return nil, err
	}

	ls := store.NewHabitLogStore()
	if ls.CurrentID, err = s.counter(logsCounter); err != nil {
		return nil, fmt.Errorf("failed to read log counter: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT entry_id, habit_id, quantum, notes, day
		FROM habit_logs ORDER BY entry_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query habit log: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entryID int
			day     string
			e       models.HabitLog
		)
		if err := rows.Scan(&entryID, &e.HabitID, &e.Quantum, &e.Notes, &day); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		if e.Date, err = models.ParseDate(day); err != nil {
			return nil, fmt.Errorf("log entry %d: %w", entryID, err)
		}
		ls.Data[entryID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read habit log: %w", err)
	}

	if ls.Repair() {
		s.log().Warn("Log id counter was behind stored ids; raised", "current_id", ls.CurrentID)
	}
	s.log().Debug("Loaded habit log", "entries", ls.Len())
	return ls, nil
}

func (s *SQLiteStore) SaveLog(ls *store.HabitLogStore) error {
	if err := ls.Validate(); err != nil {
		return fmt.Errorf("refusing to save habit log: %w", err)
	}
	if err := s.Init(); err != nil {
		return err
	}

	err := s.rewrite(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM habit_logs"); err != nil {
			return err
		}
		for id, e := range ls.Data {
			_, err := tx.Exec(`
				INSERT INTO habit_logs (entry_id, habit_id, quantum, notes, day)
				VALUES (?, ?, ?, ?, ?)`,
				id, e.HabitID, e.Quantum, e.Notes, e.Date.String())
			if err != nil {
				return fmt.Errorf("log entry %d: %w", id, err)
			}
		}
		return setCounter(tx, logsCounter, ls.CurrentID)
	})
	if err != nil {
		return fmt.Errorf("failed to save habit log: %w", err)
	}
	s.log().Debug("Saved habit log", "entries", ls.Len())
	return nil
}

func (s *SQLiteStore) rewrite(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func setCounter(tx *sql.Tx, name string, value int) error {
	_, err := tx.Exec(`
		INSERT INTO counters (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`, name, value)
	return err
}

func (s *SQLiteStore) log() *log.Logger {
	return logger.With("backend", constants.BackendSQLite, "path", s.path)
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.dir
}

func (s *SQLiteStore) Files() []string {
	return []string{s.path}
}
