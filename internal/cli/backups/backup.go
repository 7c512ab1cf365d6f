package backups

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habyt/internal/cli"
	"github.com/julianstephens/habyt/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	backupPath, err := ctx.BackupManager().CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Println(cli.SuccessStyle.Render("✓ Backup created: " + filepath.Base(backupPath)))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.Printf("  %s  %s  (%d files, %.1f KB)\n", timestamp, b.Name(), b.Files, sizeKB)
	}
	ctx.Printf("\n%s\n", cli.MutedStyle.Render("Backup directory: "+mgr.GetBackupDir()))

	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Name or path of the backup to restore."`
	Yes    bool   `short:"y" help:"Restore without asking for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()

	backupPath, err := mgr.Resolve(c.Backup)
	if err != nil {
		return fmt.Errorf("%w: tried %s and %s", err, c.Backup, mgr.GetBackupDir())
	}

	if !c.Yes {
		ctx.Println(cli.WarningStyle.Render("⚠️  WARNING: This will replace your current habits and log with the backup."))
		ctx.Println("A backup of your current state will be created before restoring.")
		ctx.Printf("\nRestore from: %s\n", backupPath)

		confirmed := false
		confirm := huh.NewConfirm().
			Title("Continue with restore?").
			Affirmative("Restore").
			Negative("Cancel").
			Value(&confirmed)
		if err := confirm.Run(); err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	// Close the current store connection before restoring
	if err := ctx.Store.Close(); err != nil {
		ctx.Println(cli.WarningStyle.Render(fmt.Sprintf("Warning: failed to close store: %v", err)))
	}

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if previous != "" {
		ctx.Printf("Created backup of current state: %s\n", filepath.Base(previous))
	}

	ctx.Println(cli.SuccessStyle.Render("✓ Store restored successfully!"))
	return nil
}
