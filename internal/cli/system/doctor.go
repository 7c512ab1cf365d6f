package system

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/julianstephens/habyt/internal/cli"
	"github.com/julianstephens/habyt/internal/models"
	"github.com/julianstephens/habyt/internal/store"
)

type DoctorCmd struct{}

// checkResult is one line of the diagnostics report. A warning never fails
// the run.
type checkResult int

const (
	checkOK checkResult = iota
	checkFail
	checkWarn
	checkSkip
)

type report struct {
	ctx      *cli.Context
	hasError bool
}

func (r *report) print(name string, result checkResult, detail string) {
	switch result {
	case checkOK:
		r.ctx.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ %s: OK", name)))
	case checkFail:
		r.hasError = true
		r.ctx.Println(cli.ErrorStyle.Render(fmt.Sprintf("❌ %s: FAIL", name)))
		r.ctx.Printf("   Error: %s\n", detail)
	case checkWarn:
		r.ctx.Println(cli.WarningStyle.Render(fmt.Sprintf("⚠ %s: WARNING", name)))
		r.ctx.Printf("   %s\n", detail)
	case checkSkip:
		r.ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("⊘ %s: SKIPPED (%s)", name, detail)))
	}
}

// check runs fn and prints its outcome as a failure.
func (r *report) check(name string, fn func() error) bool {
	if err := fn(); err != nil {
		r.print(name, checkFail, err.Error())
		return false
	}
	r.print(name, checkOK, "")
	return true
}

// warn runs fn and prints its outcome as a warning.
func (r *report) warn(name string, fn func() error) {
	if err := fn(); err != nil {
		r.print(name, checkWarn, err.Error())
		return
	}
	r.print(name, checkOK, "")
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	r := &report{ctx: ctx}

	dirOK := r.check("Config directory", func() error {
		return checkConfigDir(ctx.Store.GetConfigPath())
	})

	var (
		hs *store.HabitStore
		ls *store.HabitLogStore
	)
	if dirOK {
		r.check("Habit store readable", func() error {
			var err error
			hs, err = ctx.Store.Load()
			return err
		})
		r.check("Habit log readable", func() error {
			var err error
			ls, err = ctx.Store.LoadLog()
			return err
		})
	} else {
		r.print("Habit store readable", checkSkip, "config directory missing")
		r.print("Habit log readable", checkSkip, "config directory missing")
	}

	if hs != nil {
		r.check("Habit data", func() error { return checkHabitData(hs) })
	} else {
		r.print("Habit data", checkSkip, "habit store not readable")
	}

	if hs != nil && ls != nil {
		r.warn("Log references", func() error { return checkLogReferences(hs, ls) })
		r.check("Log data", func() error { return checkLogData(ls) })
	} else {
		r.print("Log references", checkSkip, "stores not readable")
		r.print("Log data", checkSkip, "stores not readable")
	}

	r.warn("Backups present", func() error { return checkBackupsPresent(ctx) })
	r.check("Clock/timezone", checkClockTimezone)

	ctx.Println()
	if r.hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkConfigDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist - run 'habyt init'", dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// checkHabitData catches values the decoder accepts but the habit
// constructor would never produce.
func checkHabitData(hs *store.HabitStore) error {
	for _, h := range hs.List() {
		if math.IsNaN(h.Quantum) || h.Quantum < 0 {
			return fmt.Errorf("habit %d has an invalid quantum %v", h.ID, h.Quantum)
		}
		if h.Unit.IsEmpty() {
			return fmt.Errorf("habit %d has no unit", h.ID)
		}
		if err := models.ValidateNotes(h.Notes); err != nil {
			return fmt.Errorf("habit %d: %w", h.ID, err)
		}
	}
	return nil
}

func checkLogReferences(hs *store.HabitStore, ls *store.HabitLogStore) error {
	orphans := 0
	for _, e := range ls.List() {
		if _, ok := hs.Get(e.HabitID); !ok {
			orphans++
		}
	}
	if orphans > 0 {
		return fmt.Errorf("found %d log entries referencing unknown habits", orphans)
	}
	return nil
}

func checkLogData(ls *store.HabitLogStore) error {
	for _, e := range ls.List() {
		if e.Date.IsZero() {
			return fmt.Errorf("log entry for habit %d has no date", e.HabitID)
		}
		if err := models.ValidateNotes(e.Notes); err != nil {
			return fmt.Errorf("log entry for habit %d: %w", e.HabitID, err)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.BackupManager().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habyt backup create'")
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
