package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the game key bindings.
type keyMap struct {
	Rock     key.Binding
	Paper    key.Binding
	Scissors key.Binding
	Quit     key.Binding
}

// ShortHelp returns the bindings for the help bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rock, k.Paper, k.Scissors, k.Quit}
}

// FullHelp returns the bindings grouped for expanded help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Rock, k.Paper, k.Scissors},
		{k.Quit},
	}
}

// GameKeyMap returns the key bindings for a game session.
// Upper-case variants are bound because moves are case-insensitive.
func GameKeyMap() keyMap {
	return keyMap{
		Rock: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "rock"),
		),
		Paper: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "paper"),
		),
		Scissors: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "scissors"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
