package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habyt/internal/cli"
	"github.com/julianstephens/habyt/internal/cli/backups"
	"github.com/julianstephens/habyt/internal/cli/system"
	"github.com/julianstephens/habyt/internal/constants"
	"github.com/julianstephens/habyt/internal/errors"
	"github.com/julianstephens/habyt/internal/logger"
	"github.com/julianstephens/habyt/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Dir     string `help:"Directory holding the habit store and log." type:"path" env:"HABYT_DIR" default:"${default_dir}"`
	Backend string `help:"Storage backend: yaml or sqlite." env:"HABYT_BACKEND" default:"yaml"`
	Debug   bool   `help:"Enable debug logging to stderr." env:"HABYT_DEBUG"`

	Add        cli.AddCmd        `cmd:"" help:"Commit to a new habit."`
	Update     cli.UpdateCmd     `cmd:"" aliases:"upd" help:"Update an existing habit."`
	Delete     cli.DeleteCmd     `cmd:"" aliases:"del" help:"Stop tracking a habit."`
	List       cli.ListCmd       `cmd:"" help:"List all habits."`
	Show       cli.ShowCmd       `cmd:"" help:"Show every field of a habit."`
	Activate   cli.ActivateCmd   `cmd:"" help:"Resume tracking a habit."`
	Deactivate cli.DeactivateCmd `cmd:"" help:"Pause a habit."`
	Toggle     cli.ToggleCmd     `cmd:"" help:"Flip a habit between active and paused."`
	Log        cli.LogCmd        `cmd:"" help:"Log progress on a habit for today."`
	LogList    cli.LogListCmd    `cmd:"" name:"log-list" aliases:"llist" help:"List logged progress grouped by habit."`
	Init       system.InitCmd    `cmd:"" help:"Initialize habyt storage."`
	Doctor     system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui        system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Inspect    system.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Backup     struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A minimal habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"default_dir": constants.DefaultConfigDir,
		},
	)

	// Until the provider has created the directory, log to stderr only
	logCfg := logger.Config{Debug: CLI.Debug, ConfigDir: CLI.Dir}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := storage.New(constants.Backend(CLI.Backend), CLI.Dir)
	if err != nil {
		errors.Fatal(err)
	}

	// init and doctor manage the directory themselves
	if cmd := ctx.Selected(); cmd == nil || (cmd.Name != "init" && cmd.Name != "doctor") {
		if err := store.Init(); err != nil {
			errors.Fatal(err)
		}
		if err := logger.Init(logCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "dir", CLI.Dir, "backend", CLI.Backend)
	err = ctx.Run(&cli.Context{Store: store})
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	errors.Fatal(err)
}
