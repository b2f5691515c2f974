package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the dashboard key bindings.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Chat      key.Binding
	Close     key.Binding
	Send      key.Binding
	Reconnect key.Binding
	Help      key.Binding
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Chat, k.Reconnect, k.Help, k.Quit}
}

// FullHelp returns the expanded binding groups shown when help is toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Chat, k.Send, k.Close},
		{k.Reconnect, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Chat:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chat")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close chat")),
	Send:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Reconnect: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reconnect")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
