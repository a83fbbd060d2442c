package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle   key.Binding
	Reset    key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Grow     key.Binding
	Shrink   key.Binding
	Theme    key.Binding
	Snapshot key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Faster:   key.NewBinding(key.WithKeys("+", "=", "up", "k"), key.WithHelp("+/↑", "faster")),
		Slower:   key.NewBinding(key.WithKeys("-", "_", "down", "j"), key.WithHelp("-/↓", "slower")),
		Grow:     key.NewBinding(key.WithKeys("]", "right", "l"), key.WithHelp("]/→", "size +5")),
		Shrink:   key.NewBinding(key.WithKeys("[", "left", "h"), key.WithHelp("[/←", "size -5")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Snapshot: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export svg")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Faster, k.Slower, k.Grow, k.Shrink, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset},
		{k.Faster, k.Slower},
		{k.Grow, k.Shrink},
		{k.Theme, k.Snapshot, k.Help, k.Quit},
	}
}
