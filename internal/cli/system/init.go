package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habyt/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Back up and then reset existing store files before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		mgr := ctx.BackupManager()
		if mgr.HasData() {
			snapshot, err := mgr.CreateBackup()
			if err != nil {
				return fmt.Errorf("failed to back up existing store: %w", err)
			}
			ctx.Printf("Backed up existing store to: %s\n", snapshot)
		}

		// Close first so the database file is not held open
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		for _, f := range ctx.Store.Files() {
			if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete %s: %w", f, err)
			}
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habyt storage at: %s\n", ctx.Store.GetConfigPath())
	for _, f := range ctx.Store.Files() {
		ctx.Println(cli.MutedStyle.Render("  " + f))
	}
	return nil
}
