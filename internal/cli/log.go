package cli

import (
	"fmt"
	"sort"

	"github.com/julianstephens/habyt/internal/models"
)

type LogCmd struct {
	ID      int     `arg:"" help:"id of the habit you want to log. E.g. 1"`
	Quantum float64 `short:"q" help:"The goal you've been able to achieve today. E.g. 750"`
	Notes   string  `short:"n" help:"Any accompanying thoughts you'd like to add."`
	Date    string  `help:"Log for another day (YYYY-MM-DD) instead of today."`
}

func (c *LogCmd) Run(ctx *Context) error {
	date := models.Today()
	if c.Date != "" {
		d, err := models.ParseDate(c.Date)
		if err != nil {
			return err
		}
		date = d
	}
	entry, err := models.NewHabitLogOn(c.ID, c.Quantum, c.Notes, date)
	if err != nil {
		return err
	}

	ls, err := ctx.Store.LoadLog()
	if err != nil {
		return err
	}
	entryID := ls.Add(entry)
	if err := ctx.Store.SaveLog(ls); err != nil {
		return err
	}

	ctx.Printf("Logged %s for habit %d on %s (entry %d)\n", models.FormatQuantum(entry.Quantum), entry.HabitID, entry.Date, entryID)
	return nil
}

type LogListCmd struct {
	Habit int `help:"Only show entries for this habit id."`
}

func (c *LogListCmd) Run(ctx *Context) error {
	ls, err := ctx.Store.LoadLog()
	if err != nil {
		return err
	}

	groups := ls.GroupByHabit()
	if c.Habit != 0 {
		points, ok := groups[c.Habit]
		groups = map[int][]models.LogPoint{}
		if ok {
			groups[c.Habit] = points
		}
	}
	if len(groups) == 0 {
		ctx.Println("No log entries yet.")
		return nil
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		ctx.Println(HeadingStyle.Render(fmt.Sprintf("-> habit %d", id)))
		for _, p := range groups[id] {
			ctx.Printf("   %s  %s\n", p.Date, models.FormatQuantum(p.Quantum))
		}
	}
	return nil
}
