package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/julianstephens/habyt/internal/tui/components/habits"
)

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Help   key.Binding
	Quit   key.Binding
	habits.KeyMap
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		KeyMap: habits.DefaultKeyMap(),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Log, k.Delete, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter},
		{k.Add, k.Toggle, k.Log, k.Delete},
		{k.Help, k.Quit},
	}
}
