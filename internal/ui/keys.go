package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap contains all keyboard shortcuts of the dashboard
type KeyMap struct {
	AddActivity  key.Binding
	AddChild     key.Binding
	Countdown    key.Binding
	Discard      key.Binding
	Down         key.Binding
	End          key.Binding
	LogHabit     key.Binding
	Pause        key.Binding
	Quit         key.Binding
	StartWork    key.Binding
	Up           key.Binding
}

// NewKeyMap creates the default key bindings
func NewKeyMap() KeyMap {
	return KeyMap{
		AddActivity: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add activity"),
		),
		AddChild: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add child"),
		),
		Countdown: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "countdown"),
		),
		Discard: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "discard"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		End: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end"),
		),
		LogHabit: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log habit"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		StartWork: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
	}
}

// ShortHelp returns the bindings shown in the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.StartWork, k.Countdown, k.Pause, k.End, k.Discard,
		k.AddActivity, k.LogHabit, k.Quit,
	}
}
