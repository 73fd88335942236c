package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Home     key.Binding
	Upload   key.Binding
	Practice key.Binding
	Diagrams key.Binding
	Help     key.Binding
	About    key.Binding
	Primary  key.Binding
	Open     key.Binding
	Palette  key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Home:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		Upload:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		Practice: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "start practice")),
		Diagrams: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "diagram drill")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		About:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "about")),
		Primary:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "reveal / next")),
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open diagram file")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Primary, k.Home, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Upload, k.Practice, k.Diagrams},
		{k.Primary, k.Open},
		{k.Help, k.About, k.Palette, k.Quit},
	}
}
