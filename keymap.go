package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	Select         key.Binding
	NextFocus      key.Binding
	PrevFocus      key.Binding
	Refresh        key.Binding
	ToggleConfig   key.Binding
	CycleGroup     key.Binding
	ToggleLabels   key.Binding
	ToggleStars    key.Binding
	ToggleTheme    key.Binding
	DismissError   key.Binding
	CopyItem       key.Binding
	Back           key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		NextFocus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevFocus:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		ToggleConfig: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "config panel")),
		CycleGroup:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "group filter")),
		ToggleLabels: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "labels")),
		ToggleStars:  key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "milestones")),
		ToggleTheme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		DismissError: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss error")),
		CopyItem:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy item")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Select, k.CycleGroup, k.Refresh, k.ToggleConfig, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.NextFocus, k.PrevFocus, k.ToggleConfig, k.CycleGroup},
		{k.Refresh, k.ToggleLabels, k.ToggleStars, k.ToggleTheme},
		{k.CopyItem, k.DismissError, k.Help, k.Quit},
	}
}
