package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vizsync/internal/keys"
	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/ui/styles"
	"github.com/zjrosen/vizsync/internal/ui/toaster"
)

func (m Model) handleLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := keys.Landing
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Up):
		if m.stateCursor > 0 {
			m.stateCursor--
		}
		return m, nil

	case key.Matches(msg, k.Down):
		if m.stateCursor < len(m.states)-1 {
			m.stateCursor++
		}
		return m, nil

	case key.Matches(msg, k.Open):
		m.store.ShowApp()
		return m, nil

	case key.Matches(msg, k.Restore):
		if len(m.states) == 0 {
			return m, nil
		}
		return m.restore(m.states[m.stateCursor].Name)

	case key.Matches(msg, k.Delete):
		if len(m.states) == 0 {
			return m, nil
		}
		return m, m.deleteState(m.states[m.stateCursor].Name)
	}
	return m, nil
}

// restore runs on the UI goroutine because it replaces the scene the
// components are bound to.
func (m Model) restore(name string) (tea.Model, tea.Cmd) {
	if err := m.store.RestoreState(m.ctx, name); err != nil {
		return m.toast(err.Error(), toaster.StyleError)
	}
	m.syncSelection()
	if err := m.restoreLayout(); err != nil {
		log.Warn(log.CatLayout, "Ignoring saved layout", "state", name, "error", err)
	}
	m.grid.Resize(m.gridSize())
	m.store.ShowApp()
	return m.toast("Restored "+name, toaster.StyleSuccess)
}

func (m Model) landingView() string {
	width := max(min(m.width, 80), 40)

	var body string
	if len(m.states) == 0 {
		body = styles.FieldDomainStyle.Render("No saved states. Press n to open an empty workspace.")
	} else {
		rows := make([]string, 0, len(m.states))
		for i, s := range m.states {
			indicator := "  "
			if i == m.stateCursor {
				indicator = styles.SelectionIndicatorStyle.Render("> ")
			}
			meta := fmt.Sprintf("%s  %d bytes", s.UpdatedAt.Format("2006-01-02 15:04"), len(s.Document))
			rows = append(rows, indicator+styles.FieldValueStyle.Render(s.Name)+"  "+styles.FieldDomainStyle.Render(meta))
		}
		body = strings.Join(rows, "\n")
	}

	height := max(len(m.states), 1) + 2
	panel := styles.RenderPanel(body, "Saved states", width, height, true, styles.TextPrimaryColor)
	title := styles.TitleStyle.Render("vizsync")
	return lipgloss.JoinVertical(lipgloss.Left, title, panel, m.help.View(keys.Landing))
}
