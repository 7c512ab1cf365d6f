package constants

// Backend selects the persistence implementation behind storage.Provider
type Backend string

const (
	AppName          = "habyt"
	Version          = "v0.2.0"
	DefaultConfigDir = "~/.habyt"

	// Store files, relative to the config directory
	HabitStoreFile = "habit_store.yaml"
	HabitLogFile   = "habit_log.yaml"
	SQLiteFile     = "habyt.db"

	// Habit limits
	MaxNameWords  = 3
	MaxNameLength = 50
	MaxUnitLength = 15
	MaxNoteLength = 280
	DefaultUnit   = "unit"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupDirPrefix  = "habyt-"
	BackupTimeFormat = "20060102-150405"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "habyt.log"

	// Backends
	BackendYAML   Backend = "yaml"
	BackendSQLite Backend = "sqlite"
)
