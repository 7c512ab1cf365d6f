// Package backup snapshots the store files of a config directory and
// restores them. Each snapshot is a timestamped directory under
// <config>/backups holding a copy of every store file.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habyt/internal/constants"
	"github.com/julianstephens/habyt/internal/logger"
)

// BackupInfo describes one snapshot directory
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
	Files     int
}

// Name returns the snapshot's directory name
func (b BackupInfo) Name() string {
	return filepath.Base(b.Path)
}

// Manager handles backup operations
type Manager struct {
	files     []string
	backupDir string
	now       func() time.Time
}

// NewManager creates a manager for the given store files. Snapshots live in
// <configDir>/backups.
func NewManager(configDir string, files []string) *Manager {
	return &Manager{
		files:     files,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// HasData reports whether any store file exists yet.
func (m *Manager) HasData() bool {
	for _, f := range m.files {
		if _, err := os.Stat(f); err == nil {
			return true
		}
	}
	return false
}

// CreateBackup snapshots every existing store file and rotates old snapshots.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// AutoBackup snapshots the store files before a destructive change. It does
// nothing when there is no data yet; failures are logged, not returned.
func (m *Manager) AutoBackup() string {
	if !m.HasData() {
		return ""
	}
	path, err := m.CreateBackup()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return ""
	}
	logger.Debug("Automatic backup created", "path", path)
	return path
}

// createBackup skips rotation when called during a restore so the snapshot
// of the pre-restore state survives.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if !m.HasData() {
		return "", fmt.Errorf("nothing to back up: no store files found")
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	snapshotDir, err := m.uniqueSnapshotDir()
	if err != nil {
		return "", err
	}
	if err := os.Mkdir(snapshotDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	for _, src := range m.files {
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		dst := filepath.Join(snapshotDir, filepath.Base(src))
		if err := snapshotFile(src, dst); err != nil {
			os.RemoveAll(snapshotDir)
			return "", fmt.Errorf("failed to back up %s: %w", filepath.Base(src), err)
		}
	}
	logger.Info("Created backup", "path", snapshotDir)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return snapshotDir, nil
}

// uniqueSnapshotDir names a snapshot after the current second, adding a
// numeric suffix when several are taken within the same second.
func (m *Manager) uniqueSnapshotDir() (string, error) {
	base := constants.BackupDirPrefix + m.now().Format(constants.BackupTimeFormat)
	path := filepath.Join(m.backupDir, base)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup name")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d", base, counter))
	}
}

// ListBackups returns all snapshots, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type ranked struct {
		info    BackupInfo
		counter int
	}
	var found []ranked
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		timestamp, counter, ok := parseSnapshotName(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, entry.Name())
		size, files, err := dirSize(path)
		if err != nil {
			continue
		}
		found = append(found, ranked{
			info:    BackupInfo{Path: path, Timestamp: timestamp, Size: size, Files: files},
			counter: counter,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].info.Timestamp.Equal(found[j].info.Timestamp) {
			return found[i].info.Timestamp.After(found[j].info.Timestamp)
		}
		return found[i].counter > found[j].counter
	})

	backups := make([]BackupInfo, len(found))
	for i, r := range found {
		backups[i] = r.info
	}
	return backups, nil
}

// parseSnapshotName accepts habyt-YYYYMMDD-HHMMSS with an optional -N suffix.
func parseSnapshotName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupDirPrefix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimPrefix(name, constants.BackupDirPrefix)

	counter := 0
	if len(stamp) > len(constants.BackupTimeFormat) {
		suffix := stamp[len(constants.BackupTimeFormat):]
		if _, err := fmt.Sscanf(suffix, "-%d", &counter); err != nil || fmt.Sprintf("-%d", counter) != suffix {
			return time.Time{}, 0, false
		}
		stamp = stamp[:len(constants.BackupTimeFormat)]
	}

	timestamp, err := time.ParseInLocation(constants.BackupTimeFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return timestamp, counter, true
}

func dirSize(dir string) (int64, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, err
	}
	var size int64
	files := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return 0, 0, err
		}
		size += info.Size()
		files++
	}
	return size, files, nil
}

// rotateBackups removes snapshots beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) <= constants.MaxBackups {
		return nil
	}

	for _, b := range backups[constants.MaxBackups:] {
		if err := os.RemoveAll(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
		logger.Debug("Removed old backup", "path", b.Path)
	}
	return nil
}

// Resolve maps a snapshot name or path to an existing snapshot directory.
func (m *Manager) Resolve(nameOrPath string) (string, error) {
	candidates := []string{nameOrPath}
	if !filepath.IsAbs(nameOrPath) {
		candidates = append(candidates, filepath.Join(m.backupDir, nameOrPath))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return filepath.Abs(c)
		}
	}
	return "", fmt.Errorf("backup not found: %s", nameOrPath)
}

// RestoreBackup replaces the store files with the snapshot's copies. The
// current state is snapshotted first. Store files missing from the snapshot
// are left untouched.
func (m *Manager) RestoreBackup(snapshotDir string) (string, error) {
	info, err := os.Stat(snapshotDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("backup does not exist: %s", snapshotDir)
	}

	var restore []string
	for _, dst := range m.files {
		src := filepath.Join(snapshotDir, filepath.Base(dst))
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := verifyFile(src); err != nil {
			return "", fmt.Errorf("backup file %s is corrupted or invalid: %w", filepath.Base(src), err)
		}
		restore = append(restore, dst)
	}
	if len(restore) == 0 {
		return "", fmt.Errorf("backup %s contains no store files", filepath.Base(snapshotDir))
	}

	var previous string
	if m.HasData() {
		if previous, err = m.createBackup(true); err != nil {
			return "", fmt.Errorf("failed to back up current state before restore: %w", err)
		}
	}

	for _, dst := range restore {
		src := filepath.Join(snapshotDir, filepath.Base(dst))
		tempPath := dst + ".restore.tmp"
		if err := copyFile(src, tempPath); err != nil {
			os.Remove(tempPath)
			return previous, fmt.Errorf("failed to copy %s: %w", filepath.Base(src), err)
		}
		if err := os.Rename(tempPath, dst); err != nil {
			if removeErr := os.Remove(tempPath); removeErr != nil {
				logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
			}
			return previous, fmt.Errorf("failed to restore %s: %w", filepath.Base(dst), err)
		}
	}
	logger.Info("Restored backup", "path", snapshotDir, "files", len(restore))
	return previous, nil
}

func isDatabase(path string) bool {
	return filepath.Ext(path) == filepath.Ext(constants.SQLiteFile)
}

// snapshotFile copies src to dst. Databases go through VACUUM INTO so the
// copy is consistent; a plain copy is the fallback.
func snapshotFile(src, dst string) error {
	if !isDatabase(src) {
		return copyFile(src, dst)
	}

	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		db.Close()
		return copyFile(src, dst)
	}
	return nil
}

// verifyFile checks that a database snapshot can be queried. Other files
// only need to be readable.
func verifyFile(path string) error {
	if !isDatabase(path) {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		return f.Close()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
