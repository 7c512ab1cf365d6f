package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habyt/internal/constants"
)

func setupStoreFiles(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, constants.HabitStoreFile),
		filepath.Join(dir, constants.HabitLogFile),
	}
	writeFile(t, files[0], "current_id: 1\n")
	writeFile(t, files[1], "current_id: 0\n")
	return dir, files
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestCreateBackup(t *testing.T) {
	dir, files := setupStoreFiles(t)
	mgr := NewManager(dir, files)

	snapshot, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	for _, f := range files {
		copied := filepath.Join(snapshot, filepath.Base(f))
		if got, want := readFile(t, copied), readFile(t, f); got != want {
			t.Errorf("snapshot of %s = %q, want %q", filepath.Base(f), got, want)
		}
	}
	if filepath.Dir(snapshot) != mgr.GetBackupDir() {
		t.Errorf("snapshot %s not inside %s", snapshot, mgr.GetBackupDir())
	}
}

func TestCreateBackup_NoData(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(dir, []string{filepath.Join(dir, constants.HabitStoreFile)})

	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error when no store files exist")
	}
}

func TestCreateBackup_UniqueNames(t *testing.T) {
	dir, files := setupStoreFiles(t)
	mgr := NewManager(dir, files)
	mgr.now = fixedClock(time.Date(2024, 6, 3, 7, 30, 0, 0, time.Local))

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if filepath.Base(first) != "habyt-20240603-073000" {
		t.Errorf("unexpected first name %s", filepath.Base(first))
	}
	if filepath.Base(second) != "habyt-20240603-073000-1" {
		t.Errorf("unexpected second name %s", filepath.Base(second))
	}
}

func TestBackupRotation(t *testing.T) {
	dir, files := setupStoreFiles(t)
	mgr := NewManager(dir, files)

	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	numBackups := constants.MaxBackups + 5
	for i := 0; i < numBackups; i++ {
		mgr.now = fixedClock(start.Add(time.Duration(i) * time.Hour))
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted correctly: backup %d is newer than backup %d", i, i-1)
		}
	}
	newest := start.Add(time.Duration(numBackups-1) * time.Hour)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest backup is %v, want %v", backups[0].Timestamp, newest)
	}
}

func TestListBackups(t *testing.T) {
	dir, files := setupStoreFiles(t)
	mgr := NewManager(dir, files)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}

	mgr.now = fixedClock(time.Date(2024, 6, 3, 7, 30, 0, 0, time.Local))
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	// foreign entries are ignored
	if err := os.Mkdir(filepath.Join(mgr.GetBackupDir(), "unrelated"), 0700); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(mgr.GetBackupDir(), "habyt-notes.txt"), "x")

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}
	if backups[0].Name() != "habyt-20240603-073000-1" {
		t.Errorf("expected the suffixed snapshot first, got %s", backups[0].Name())
	}
	if backups[0].Files != 2 || backups[0].Size == 0 {
		t.Errorf("unexpected snapshot details %+v", backups[0])
	}
}

func TestParseSnapshotName(t *testing.T) {
	tests := []struct {
		name    string
		counter int
		ok      bool
	}{
		{name: "habyt-20240603-073000", ok: true},
		{name: "habyt-20240603-073000-12", counter: 12, ok: true},
		{name: "habyt-20240603-0730"},
		{name: "habyt-20240603-073000-x"},
		{name: "other-20240603-073000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, counter, ok := parseSnapshotName(tt.name)
			if ok != tt.ok {
				t.Fatalf("parseSnapshotName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if counter != tt.counter {
				t.Errorf("counter = %d, want %d", counter, tt.counter)
			}
		})
	}
}

func TestRestoreBackup(t *testing.T) {
	dir, files := setupStoreFiles(t)
	mgr := NewManager(dir, files)
	mgr.now = fixedClock(time.Date(2024, 6, 3, 7, 30, 0, 0, time.Local))

	snapshot, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	writeFile(t, files[0], "current_id: 9\n")

	previous, err := mgr.RestoreBackup(snapshot)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := readFile(t, files[0]); got != "current_id: 1\n" {
		t.Errorf("restored content = %q", got)
	}
	if previous == "" {
		t.Fatal("expected a snapshot of the pre-restore state")
	}
	if got := readFile(t, filepath.Join(previous, filepath.Base(files[0]))); got != "current_id: 9\n" {
		t.Errorf("pre-restore snapshot content = %q", got)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestRestoreBackup_Errors(t *testing.T) {
	dir, files := setupStoreFiles(t)
	mgr := NewManager(dir, files)

	if _, err := mgr.RestoreBackup(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing backup")
	}

	empty := filepath.Join(t.TempDir(), "habyt-20240603-073000")
	if err := os.Mkdir(empty, 0700); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(empty); err == nil {
		t.Error("expected error for a backup without store files")
	}
}

func TestResolve(t *testing.T) {
	dir, files := setupStoreFiles(t)
	mgr := NewManager(dir, files)
	snapshot, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	got, err := mgr.Resolve(filepath.Base(snapshot))
	if err != nil {
		t.Fatalf("Resolve by name failed: %v", err)
	}
	if got != snapshot {
		t.Errorf("Resolve = %s, want %s", got, snapshot)
	}
	if _, err := mgr.Resolve(snapshot); err != nil {
		t.Errorf("Resolve by path failed: %v", err)
	}
	if _, err := mgr.Resolve("habyt-19990101-000000"); err == nil {
		t.Error("expected error for unknown backup")
	}
}

func TestDatabaseBackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, constants.SQLiteFile)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE habits (id INTEGER PRIMARY KEY, name TEXT)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO habits (id, name) VALUES (1, 'run'), (2, 'read')"); err != nil {
		t.Fatalf("failed to insert rows: %v", err)
	}
	db.Close()

	mgr := NewManager(dir, []string{dbPath})
	snapshot, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	countRows := func(path string) int {
		t.Helper()
		db, err := sql.Open("sqlite", path)
		if err != nil {
			t.Fatalf("failed to open %s: %v", path, err)
		}
		defer db.Close()
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
			t.Fatalf("failed to query %s: %v", path, err)
		}
		return count
	}

	if n := countRows(filepath.Join(snapshot, constants.SQLiteFile)); n != 2 {
		t.Errorf("expected 2 rows in backup, got %d", n)
	}

	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM habits"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := mgr.RestoreBackup(snapshot); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if n := countRows(dbPath); n != 2 {
		t.Errorf("expected 2 rows after restore, got %d", n)
	}
}

func TestRestoreBackup_CorruptDatabase(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, constants.SQLiteFile)
	mgr := NewManager(dir, []string{dbPath})

	snapshot := filepath.Join(mgr.GetBackupDir(), "habyt-20240603-073000")
	if err := os.MkdirAll(snapshot, 0700); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(snapshot, constants.SQLiteFile), "this is not a database, just some text padding it out past the header size of a sqlite file")

	if _, err := mgr.RestoreBackup(snapshot); err == nil {
		t.Error("expected error for corrupt database backup")
	}
}

func TestAutoBackup(t *testing.T) {
	dir, files := setupStoreFiles(t)
	mgr := NewManager(dir, files)

	snapshot := mgr.AutoBackup()
	if snapshot == "" {
		t.Fatal("expected a snapshot when store files exist")
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 || backups[0].Path != snapshot {
		t.Errorf("unexpected backups %+v", backups)
	}

	empty := t.TempDir()
	if got := NewManager(empty, []string{filepath.Join(empty, constants.HabitStoreFile)}).AutoBackup(); got != "" {
		t.Errorf("AutoBackup without data = %q, want empty", got)
	}
	if _, err := os.Stat(filepath.Join(empty, constants.BackupDirName)); !os.IsNotExist(err) {
		t.Error("AutoBackup without data created the backup directory")
	}
}
