package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/vizsync/internal/workspace"
)

type statesLoadedMsg struct {
	states []*workspace.SavedState
	err    error
}

type stateSavedMsg struct {
	name string
	err  error
}

type stateDeletedMsg struct {
	name string
	err  error
}

func (m Model) loadStates() tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		states, err := store.ListStates(ctx)
		return statesLoadedMsg{states: states, err: err}
	}
}

// saveState runs off the UI goroutine; SaveState only reads the scene.
func (m Model) saveState() tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		name, err := store.SaveState(ctx, "")
		return stateSavedMsg{name: name, err: err}
	}
}

func (m Model) deleteState(name string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		return stateDeletedMsg{name: name, err: store.DeleteState(ctx, name)}
	}
}
