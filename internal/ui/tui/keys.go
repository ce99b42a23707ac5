package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SplitRight key.Binding
	SplitDown  key.Binding
	NewTab     key.Binding
	Close      key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	More       key.Binding
	Repaint    key.Binding
	Help       key.Binding
	Quit       key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SplitRight, k.SplitDown, k.NewTab, k.Close, k.NextTab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SplitRight, k.SplitDown, k.NewTab, k.Close},
		{k.NextTab, k.PrevTab, k.More, k.Repaint},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		SplitRight: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "split right"),
		),
		SplitDown: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "split down"),
		),
		NewTab: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "new tab"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("shift+tab", "prev tab"),
		),
		More: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "all tabs"),
		),
		Repaint: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "repaint"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
