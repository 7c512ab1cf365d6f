package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habyt/internal/backup"
	"github.com/julianstephens/habyt/internal/storage"
)

type Context struct {
	Store storage.Provider
	// Out receives command output; nil means stdout
	Out io.Writer
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// BackupManager returns a backup manager covering the provider's store files.
func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(c.Store.GetConfigPath(), c.Store.Files())
}

// PerformAutomaticBackup snapshots the store; failures never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	c.BackupManager().AutoBackup()
}
