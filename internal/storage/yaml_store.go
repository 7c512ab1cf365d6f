package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habyt/internal/constants"
	"github.com/julianstephens/habyt/internal/logger"
	"github.com/julianstephens/habyt/internal/store"
)

// YAMLStore keeps each store in its own YAML file inside the config directory.
type YAMLStore struct {
	dir       string
	habitPath string
	logPath   string
}

func NewYAMLStore(configDir string) *YAMLStore {
	return &YAMLStore{
		dir:       configDir,
		habitPath: filepath.Join(configDir, constants.HabitStoreFile),
		logPath:   filepath.Join(configDir, constants.HabitLogFile),
	}
}

// Init creates the config directory and seeds every missing store file with
// an empty store. Existing files are left alone.
func (s *YAMLStore) Init() error {
	created, err := ensureDir(s.dir)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Created config directory", "path", s.dir)
	}

	if err := seed(s.habitPath, store.NewHabitStore()); err != nil {
		return err
	}
	return seed(s.logPath, store.NewHabitLogStore())
}

func seed(path string, empty interface{}) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
	if err := writeYAML(path, empty); err != nil {
		return err
	}
	logger.Info("Created store file", "path", path)
	return nil
}

func (s *YAMLStore) Close() error {
	return nil
}

// Load reads the habit store. A missing file yields an empty store; any
// other read or parse failure is returned.
func (s *YAMLStore) Load() (*store.HabitStore, error) {
	hs := store.NewHabitStore()
	found, err := readYAML(s.habitPath, hs)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	if !found {
		return store.NewHabitStore(), nil
	}
	if hs.Repair() {
		s.log().Warn("Habit id counter was behind stored ids; raised", "current_id", hs.CurrentID)
	}
	if err := hs.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load habits: %s: %w", s.habitPath, err)
	}
	s.log().Debug("Loaded habit store", "habits", hs.Len())
	return hs, nil
}

// Save overwrites the habit file with the whole store.
func (s *YAMLStore) Save(hs *store.HabitStore) error {
	if err := hs.Validate(); err != nil {
		return fmt.Errorf("refusing to save habits: %w", err)
	}
	if err := writeYAML(s.habitPath, hs); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}
	s.log().Debug("Saved habit store", "habits", hs.Len())
	return nil
}

func (s *YAMLStore) LoadLog() (*store.HabitLogStore, error) {
	ls := store.NewHabitLogStore()
	found, err := readYAML(s.logPath, ls)
	if err != nil {
		return nil, fmt.Errorf("failed to load habit log: %w", err)
	}
	if !found {
		return store.NewHabitLogStore(), nil
	}
	if ls.Repair() {
		s.log().Warn("Log id counter was behind stored ids; raised", "current_id", ls.CurrentID)
	}
	if err := ls.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load habit log: %s: %w", s.logPath, err)
	}
	s.log().Debug("Loaded habit log", "entries", ls.Len())
	return ls, nil
}

func (s *YAMLStore) SaveLog(ls *store.HabitLogStore) error {
	if err := ls.Validate(); err != nil {
		return fmt.Errorf("refusing to save habit log: %w", err)
	}
	if err := writeYAML(s.logPath, ls); err != nil {
		return fmt.Errorf("failed to save habit log: %w", err)
	}
	s.log().Debug("Saved habit log", "entries", ls.Len())
	return nil
}

func (s *YAMLStore) log() *log.Logger {
	return logger.With("backend", constants.BackendYAML, "path", s.dir)
}

func (s *YAMLStore) GetConfigPath() string {
	return s.dir
}

func (s *YAMLStore) Files() []string {
	return []string{s.habitPath, s.logPath}
}

func readYAML(path string, out interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}

func writeYAML(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", filepath.Base(path), err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
