package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vizsync/internal/config"
	"github.com/zjrosen/vizsync/internal/keys"
	"github.com/zjrosen/vizsync/internal/layout"
	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/ui/fieldpanel"
	"github.com/zjrosen/vizsync/internal/ui/styles"
	"github.com/zjrosen/vizsync/internal/ui/toaster"
)

// userDataLayout is the saved state key holding the view layout.
const userDataLayout = "layout"

func (m Model) handleWorkspaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := keys.Workspace
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, k.Escape):
		m.showHelp = false
		return m, nil

	case key.Matches(msg, k.ToggleStatus):
		m.showStatus = !m.showStatus
		m.grid.Resize(m.gridSize())
		return m, nil

	case key.Matches(msg, k.Up):
		m.moveField(-1)
		return m, nil

	case key.Matches(msg, k.Down):
		m.moveField(1)
		return m, nil

	case key.Matches(msg, k.Decrease):
		return m.adjust(-1)

	case key.Matches(msg, k.Increase):
		return m.adjust(1)

	case key.Matches(msg, k.NextDataset):
		m.selectSource(1)
		return m, nil

	case key.Matches(msg, k.PrevDataset):
		m.selectSource(-1)
		return m, nil

	case key.Matches(msg, k.ToggleVisibility):
		src, ok := m.selectedSource()
		if !ok {
			return m, nil
		}
		if _, err := m.datasets.ToggleVisibility(src); err != nil {
			return m.toast(err.Error(), toaster.StyleWarn)
		}
		m.registry.RenderAllViews()
		m.refreshPanels()
		return m, nil

	case key.Matches(msg, k.DeleteDataset):
		src, ok := m.selectedSource()
		if !ok {
			return m, nil
		}
		name := src.Name()
		if err := m.datasets.Delete(src); err != nil {
			return m.toast(err.Error(), toaster.StyleError)
		}
		m.syncSelection()
		return m.toast("Deleted dataset "+name, toaster.StyleInfo)

	case key.Matches(msg, k.OneView):
		return m.setViewCount(1)

	case key.Matches(msg, k.TwoViews):
		return m.setViewCount(2)

	case key.Matches(msg, k.FourViews):
		return m.setViewCount(4)

	case key.Matches(msg, k.SwapView):
		grid, err := m.grid.SwapFocused()
		if err != nil {
			return m.toast(err.Error(), toaster.StyleWarn)
		}
		m.grid = grid
		return m.layoutChanged()

	case key.Matches(msg, k.NextView):
		m.grid = m.grid.FocusNext()
		return m, nil

	case key.Matches(msg, k.Save):
		if name := m.store.SavingStateName(); name != "" {
			return m.toast("Already saving "+name, toaster.StyleWarn)
		}
		m.store.SetUserData(userDataLayout, map[string]any{
			"order": m.cfg.Layout.Order(),
			"count": m.cfg.Layout.Count(),
		})
		return m, m.saveState()

	case key.Matches(msg, k.Reset):
		m.store.ResetWorkspace()
		m.syncSelection()
		return m.toast("Workspace reset", toaster.StyleInfo)

	case key.Matches(msg, k.Landing):
		m.store.ShowLanding()
		return m, m.loadStates()
	}
	return m, nil
}

func (m Model) adjust(dir int) (tea.Model, tea.Cmd) {
	if len(m.panels) == 0 {
		return m, nil
	}
	err := m.panels[m.focus].Adjust(dir)
	if errors.Is(err, fieldpanel.ErrNotAdjustable) {
		return m.toast(err.Error(), toaster.StyleWarn)
	}
	if err != nil {
		return m.toast(err.Error(), toaster.StyleError)
	}
	m.registry.RenderAllViews()
	return m, nil
}

func (m Model) setViewCount(count int) (tea.Model, tea.Cmd) {
	grid, err := m.grid.SetCount(count)
	if err != nil {
		return m.toast(err.Error(), toaster.StyleWarn)
	}
	m.grid = grid
	return m.layoutChanged()
}

// layoutChanged resizes the new views and writes the layout to the config file.
func (m Model) layoutChanged() (tea.Model, tea.Cmd) {
	m.grid.Resize(m.gridSize())
	m.registry.RenderAllViews()
	if m.cfg.ConfigPath == "" {
		return m, nil
	}
	lc := config.LayoutConfig{Order: m.cfg.Layout.Order(), Count: m.cfg.Layout.Count()}
	if err := config.SaveLayout(m.cfg.ConfigPath, lc); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to save layout", err, "path", m.cfg.ConfigPath)
		return m.toast("Failed to save layout: "+err.Error(), toaster.StyleError)
	}
	return m, nil
}

// restoreLayout applies the layout stored in a restored state's user data.
func (m Model) restoreLayout() error {
	raw, ok := m.store.UserData()[userDataLayout].(map[string]any)
	if !ok {
		return nil
	}
	order, count, err := decodeLayout(raw)
	if err != nil {
		return err
	}
	return m.cfg.Layout.Restore(order, count)
}

// decodeLayout accepts both the in-memory form and the JSON-decoded form.
func decodeLayout(raw map[string]any) ([]string, int, error) {
	var order []string
	switch v := raw["order"].(type) {
	case []string:
		order = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, 0, fmt.Errorf("%w: order entry %v", layout.ErrInvalidLayout, item)
			}
			order = append(order, s)
		}
	default:
		return nil, 0, fmt.Errorf("%w: missing order", layout.ErrInvalidLayout)
	}

	switch v := raw["count"].(type) {
	case int:
		return order, v, nil
	case float64:
		return order, int(v), nil
	}
	return nil, 0, fmt.Errorf("%w: missing count", layout.ErrInvalidLayout)
}

func (m Model) workspaceView() string {
	gridW, gridH := m.gridSize()
	sidebar := lipgloss.NewStyle().Width(sidebarWidth).MaxHeight(gridH).Render(m.sidebarView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, m.grid.View(gridW, gridH))

	parts := []string{body}
	if m.showStatus {
		parts = append(parts, m.statusView())
	}
	m.help.ShowAll = m.showHelp
	parts = append(parts, m.help.View(keys.Workspace))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) sidebarView() string {
	sections := []string{m.datasetsView()}
	for _, p := range m.panels {
		sections = append(sections, p.View(sidebarWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) datasetsView() string {
	sources := m.datasets.List()
	if len(sources) == 0 {
		return styles.RenderPanel(styles.FieldDomainStyle.Render("No datasets"), "Datasets", sidebarWidth, 3, false, styles.TextPrimaryColor)
	}

	rows := make([]string, 0, len(sources))
	for _, src := range sources {
		indicator := "  "
		if src.ID() == m.sourceID {
			indicator = styles.SelectionIndicatorStyle.Render("> ")
		}
		name := styles.FieldValueStyle.Render(src.Name())
		if visible, err := m.datasets.Visibility(src); err == nil && !visible {
			name = styles.HiddenDatasetStyle.Render(src.Name())
		}
		d := src.Dataset().Dimensions
		rows = append(rows, fmt.Sprintf("%s%s %s", indicator, name,
			styles.FieldDomainStyle.Render(fmt.Sprintf("%dx%dx%d", d[0], d[1], d[2]))))
	}
	return styles.RenderPanel(strings.Join(rows, "\n"), "Datasets", sidebarWidth, len(rows)+2, false, styles.TextPrimaryColor)
}

func (m Model) statusView() string {
	parts := []string{fmt.Sprintf("%d datasets", len(m.registry.Sources()))}
	if src, ok := m.selectedSource(); ok {
		parts = append(parts, src.Name())
	}
	if v, ok := m.grid.FocusedView(); ok {
		parts = append(parts, v.Type())
	}
	var enabled []string
	for name, on := range m.cfg.Flags.All() {
		if on {
			enabled = append(enabled, name)
		}
	}
	if len(enabled) > 0 {
		slices.Sort(enabled)
		parts = append(parts, "flags: "+strings.Join(enabled, ","))
	}
	if name := m.store.SavingStateName(); name != "" {
		parts = append(parts, "saving "+name)
	}
	return styles.StatusBarStyle.Width(m.width).Render(strings.Join(parts, " │ "))
}
