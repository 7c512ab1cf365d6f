package system

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habyt/internal/cli"
)

type DebugCmd struct {
	Paths     DebugPathsCmd     `cmd:"" help:"Show storage paths as JSON."`
	DumpHabit DebugDumpHabitCmd `cmd:"" help:"Dump a habit as YAML."`
	DumpLog   DebugDumpLogCmd   `cmd:"" help:"Dump log entries as YAML."`
}

type DebugPathsCmd struct{}

func (cmd *DebugPathsCmd) Run(ctx *cli.Context) error {
	output := struct {
		Dir   string   `json:"dir"`
		Files []string `json:"files"`
	}{
		Dir:   ctx.Store.GetConfigPath(),
		Files: ctx.Store.Files(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDumpHabitCmd struct {
	ID int `arg:"" help:"ID of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	hs, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, ok := hs.Get(cmd.ID)
	if !ok {
		return fmt.Errorf("habit not found: %d", cmd.ID)
	}

	out, err := yaml.Marshal(habit)
	if err != nil {
		return fmt.Errorf("failed to marshal habit: %w", err)
	}
	ctx.Printf("%s", out)
	return nil
}

type DebugDumpLogCmd struct {
	Habit int `help:"Only dump entries for this habit id."`
}

func (cmd *DebugDumpLogCmd) Run(ctx *cli.Context) error {
	ls, err := ctx.Store.LoadLog()
	if err != nil {
		return err
	}

	entries := ls.List()
	if cmd.Habit != 0 {
		entries = ls.ForHabit(cmd.Habit)
	}

	out, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal log entries: %w", err)
	}
	ctx.Printf("%s", out)
	return nil
}
