package storage

import "github.com/julianstephens/habyt/internal/store"

// Provider maps the in-memory stores to durable storage. The habit store and
// the log store are loaded and saved independently.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Habits
	Load() (*store.HabitStore, error)
	Save(*store.HabitStore) error

	// Habit log
	LoadLog() (*store.HabitLogStore, error)
	SaveLog(*store.HabitLogStore) error

	// Utils
	GetConfigPath() string
	// Files lists the files that make up the persisted state
	Files() []string
}
