package cli

import (
	"fmt"

	"github.com/julianstephens/habyt/internal/logger"
	"github.com/julianstephens/habyt/internal/models"
)

// Classification holds the optional streak/difficulty/kind flags shared by
// add and update. Empty values mean "not given".
type Classification struct {
	Streak     string `help:"How often the goal repeats: daily, weekly or monthly."`
	Difficulty string `help:"trivial, easy, medium or hard."`
	Kind       string `help:"positive (build it) or negative (break it)."`
}

func (c Classification) parse() (*models.Streak, *models.Difficulty, *models.Kind, error) {
	var (
		streak     *models.Streak
		difficulty *models.Difficulty
		kind       *models.Kind
	)
	if c.Streak != "" {
		s, err := models.ParseStreak(c.Streak)
		if err != nil {
			return nil, nil, nil, err
		}
		streak = &s
	}
	if c.Difficulty != "" {
		d, err := models.ParseDifficulty(c.Difficulty)
		if err != nil {
			return nil, nil, nil, err
		}
		difficulty = &d
	}
	if c.Kind != "" {
		k, err := models.ParseKind(c.Kind)
		if err != nil {
			return nil, nil, nil, err
		}
		kind = &k
	}
	return streak, difficulty, kind, nil
}

type AddCmd struct {
	Name    string  `arg:"" help:"A one to three word name for the habit. E.g. writing"`
	Quantum float64 `arg:"" help:"A daily goal. E.g. 750"`
	Unit    string  `short:"u" help:"A measurable unit. E.g. words"`
	Notes   string  `help:"Notes about the habit."`

	Classification `embed:""`
}

func (c *AddCmd) Run(ctx *Context) error {
	draft, err := models.NewHabitDraft(c.Name, c.Quantum, c.Unit)
	if err != nil {
		return err
	}
	if draft.Streak, draft.Difficulty, draft.Kind, err = c.Classification.parse(); err != nil {
		return err
	}
	if c.Notes != "" {
		if draft, err = draft.WithNotes(c.Notes); err != nil {
			return err
		}
	}

	hs, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	id, err := hs.Create(draft)
	if err != nil {
		return err
	}
	if err := ctx.Store.Save(hs); err != nil {
		return err
	}

	habit, _ := hs.Get(id)
	ctx.Printf("You have commited to %s %s of %s (%d) every %s!\n",
		models.FormatQuantum(habit.Quantum), habit.Unit, habit.Name, id, habit.Streak.Period())
	return nil
}

type UpdateCmd struct {
	ID      int     `arg:"" help:"id of the habit you want to update. E.g. 1"`
	Name    string  `short:"n" help:"A new name for the habit."`
	Quantum float64 `short:"q" help:"A new daily goal. Zero or negative values are ignored."`
	Unit    string  `short:"u" help:"A new unit."`
	Notes   string  `help:"New notes for the habit."`

	Classification `embed:""`
}

func (c *UpdateCmd) Run(ctx *Context) error {
	patch, err := models.NewHabitPatch(c.Name, c.Quantum, c.Unit)
	if err != nil {
		return err
	}
	if patch.Streak, patch.Difficulty, patch.Kind, err = c.Classification.parse(); err != nil {
		return err
	}
	if c.Notes != "" {
		notes := c.Notes
		patch.Notes = &notes
	}

	hs, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	found, err := hs.Update(c.ID, patch)
	if err != nil {
		return err
	}
	if !found {
		ctx.Printf("Habyt has no habit with id %d\n", c.ID)
		return nil
	}
	if patch.IsEmpty() {
		ctx.Println(MutedStyle.Render("Nothing to update."))
		return nil
	}
	if err := ctx.Store.Save(hs); err != nil {
		return err
	}

	habit, _ := hs.Get(c.ID)
	ctx.Printf("Updated %s (%d): %s %s every %s\n",
		habit.Name, habit.ID, models.FormatQuantum(habit.Quantum), habit.Unit, habit.Streak.Period())
	return nil
}

type DeleteCmd struct {
	ID int `arg:"" help:"id of the habit you want to delete. E.g. 1"`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	hs, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	if _, ok := hs.Get(c.ID); !ok {
		logger.Debug("Delete of unknown habit ignored", "id", c.ID)
		return nil
	}

	ctx.PerformAutomaticBackup()

	deleted, _ := hs.Delete(c.ID)
	if err := ctx.Store.Save(hs); err != nil {
		return err
	}
	ctx.Printf("Habyt is not tracking %s with id %d anymore!\n", deleted.Name, deleted.ID)
	return nil
}

type ListCmd struct {
	Active bool `help:"Only show active habits."`
}

func (c *ListCmd) Run(ctx *Context) error {
	hs, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	habits := hs.List()
	if c.Active {
		filtered := habits[:0]
		for _, h := range habits {
			if h.Active {
				filtered = append(filtered, h)
			}
		}
		habits = filtered
	}

	ctx.Println(HeadingStyle.Render(fmt.Sprintf("You've commited to %d habits so far...", len(habits))))
	for _, h := range habits {
		line := fmt.Sprintf("-> %s for %s %s a %s", h.Name, models.FormatQuantum(h.Quantum), h.Unit, h.Streak.Period())
		if !h.Active {
			line += " " + MutedStyle.Render("(inactive)")
		}
		ctx.Printf("%s %s\n", MutedStyle.Render(fmt.Sprintf("[%d]", h.ID)), line)
	}
	return nil
}

type ShowCmd struct {
	ID int `arg:"" help:"id of the habit to show."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	hs, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	h, ok := hs.Get(c.ID)
	if !ok {
		ctx.Printf("Habyt has no habit with id %d\n", c.ID)
		return nil
	}

	status := "active"
	if !h.Active {
		status = "inactive"
	}
	ctx.Println(HeadingStyle.Render(fmt.Sprintf("%s (%d)", h.Name, h.ID)))
	ctx.Printf("  Goal:       %s %s every %s\n", models.FormatQuantum(h.Quantum), h.Unit, h.Streak.Period())
	ctx.Printf("  Difficulty: %s\n", h.Difficulty.Label())
	ctx.Printf("  Kind:       %s\n", h.Kind.Label())
	ctx.Printf("  Status:     %s\n", status)
	if h.Notes != "" {
		ctx.Printf("  Notes:      %s\n", h.Notes)
	}
	return nil
}

// activation backs the activate, deactivate and toggle commands.
func activation(ctx *Context, id int, fn func(*models.Habit)) error {
	hs, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	if !hs.Modify(id, fn) {
		ctx.Printf("Habyt has no habit with id %d\n", id)
		return nil
	}
	if err := ctx.Store.Save(hs); err != nil {
		return err
	}

	h, _ := hs.Get(id)
	if h.Active {
		ctx.Printf("Habyt is tracking %s (%d) again.\n", h.Name, h.ID)
	} else {
		ctx.Printf("Habyt paused %s (%d).\n", h.Name, h.ID)
	}
	return nil
}

type ActivateCmd struct {
	ID int `arg:"" help:"id of the habit to activate."`
}

func (c *ActivateCmd) Run(ctx *Context) error {
	return activation(ctx, c.ID, (*models.Habit).Activate)
}

type DeactivateCmd struct {
	ID int `arg:"" help:"id of the habit to deactivate."`
}

func (c *DeactivateCmd) Run(ctx *Context) error {
	return activation(ctx, c.ID, (*models.Habit).Deactivate)
}

type ToggleCmd struct {
	ID int `arg:"" help:"id of the habit to toggle."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	return activation(ctx, c.ID, (*models.Habit).Toggle)
}
