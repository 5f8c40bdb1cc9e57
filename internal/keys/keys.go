// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the workspace screen.
type KeyMap struct {
	// Field navigation
	Up       key.Binding
	Down     key.Binding
	Decrease key.Binding
	Increase key.Binding

	// Datasets
	NextDataset      key.Binding
	PrevDataset      key.Binding
	ToggleVisibility key.Binding
	DeleteDataset    key.Binding

	// Layout
	OneView   key.Binding
	TwoViews  key.Binding
	FourViews key.Binding
	SwapView  key.Binding
	NextView  key.Binding

	// Workspace
	Save    key.Binding
	Reset   key.Binding
	Landing key.Binding

	// General
	Help         key.Binding
	Escape       key.Binding
	Quit         key.Binding
	ToggleStatus key.Binding
	ToggleLog    key.Binding
}

// DefaultKeyMap returns the default workspace keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next field"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "decrease"),
		),
		Increase: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "increase"),
		),

		NextDataset: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next dataset"),
		),
		PrevDataset: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous dataset"),
		),
		ToggleVisibility: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle visibility"),
		),
		DeleteDataset: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete dataset"),
		),

		OneView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "single view"),
		),
		TwoViews: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "two views"),
		),
		FourViews: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "four views"),
		),
		SwapView: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "cycle main view"),
		),
		NextView: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "focus next view"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save state"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset workspace"),
		),
		Landing: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "saved states"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "toggle log"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Save, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Decrease, k.Increase},                                    // Fields
		{k.NextDataset, k.PrevDataset, k.ToggleVisibility, k.DeleteDataset},       // Datasets
		{k.OneView, k.TwoViews, k.FourViews, k.SwapView, k.NextView},              // Layout
		{k.Save, k.Reset, k.Landing, k.Help, k.ToggleStatus, k.ToggleLog, k.Quit}, // General
	}
}

// LandingKeyMap defines the keybindings for the saved state list.
type LandingKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Restore key.Binding
	Delete  key.Binding
	Open    key.Binding
	Quit    key.Binding
}

// DefaultLandingKeyMap returns the keybindings for the saved state list.
func DefaultLandingKeyMap() LandingKeyMap {
	return LandingKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Restore: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "restore state"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete state"),
		),
		Open: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "open workspace"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k LandingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restore, k.Delete, k.Open, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k LandingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Restore, k.Delete, k.Open, k.Quit},
	}
}

// Workspace and Landing are the shared keymaps used by the app.
var (
	Workspace = DefaultKeyMap()
	Landing   = DefaultLandingKeyMap()
)
