// Package layoutview draws the visible views of a layout as a grid of panes.
package layoutview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vizsync/internal/layout"
	"github.com/zjrosen/vizsync/internal/scene"
	"github.com/zjrosen/vizsync/internal/ui/styles"
)

// Model renders a layout.Manager. The focused pane receives view commands.
type Model struct {
	manager  *layout.Manager
	registry *scene.Registry
	focused  int
}

// New creates a grid over manager's visible views.
func New(manager *layout.Manager, registry *scene.Registry) Model {
	return Model{manager: manager, registry: registry}
}

// Focused returns the index of the focused pane.
func (m Model) Focused() int {
	return min(m.focused, max(m.manager.Count()-1, 0))
}

// FocusedView returns the view in the focused pane.
func (m Model) FocusedView() (*scene.View, bool) {
	views := m.manager.Views()
	if len(views) == 0 {
		return nil, false
	}
	return views[m.Focused()], true
}

// FocusNext moves focus to the next pane, wrapping around.
func (m Model) FocusNext() Model {
	if n := m.manager.Count(); n > 0 {
		m.focused = (m.Focused() + 1) % n
	}
	return m
}

// SetCount shows count views, keeping focus in range.
func (m Model) SetCount(count int) (Model, error) {
	if err := m.manager.Update(layout.Change{Index: m.Focused(), Count: count}); err != nil {
		return m, err
	}
	m.focused = m.Focused()
	return m, nil
}

// SwapFocused replaces the focused pane with the next view type in the
// order that is not currently visible.
func (m Model) SwapFocused() (Model, error) {
	order := m.manager.Order()
	count := m.manager.Count()
	if count >= len(order) {
		return m, fmt.Errorf("%w: every view type is visible", layout.ErrInvalidLayout)
	}
	return m, m.manager.Update(layout.Change{Index: m.Focused(), Count: count, NewType: order[count]})
}

// Resize gives each visible view its pane size.
func (m Model) Resize(width, height int) {
	rows, cols := m.manager.Grid()
	w, h := width/cols, height/rows
	for _, v := range m.manager.Views() {
		v.Resize(w-2, h-2)
	}
}

// View renders the grid at width x height.
func (m Model) View(width, height int) string {
	views := m.manager.Views()
	if len(views) == 0 {
		return ""
	}
	rows, cols := m.manager.Grid()
	paneW, paneH := width/cols, height/rows

	lines := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		panes := make([]string, 0, cols)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(views) {
				break
			}
			panes = append(panes, m.renderPane(views[i], paneW, paneH, i == m.Focused()))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, panes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderPane(v *scene.View, width, height int, focused bool) string {
	title := v.Type()
	if def, ok := m.registry.Definitions().Def(scene.GroupViews, v.Type()); ok && def.Label != "" {
		title = def.Label
	}

	var b strings.Builder
	axes := "off"
	if v.OrientationAxes() {
		axes = "on"
	}
	fmt.Fprintf(&b, "%s\n", styles.FieldDomainStyle.Render(fmt.Sprintf("bg %s  axes %s", v.Background(), axes)))

	for _, rep := range m.registry.Representations() {
		if rep.View() != v {
			continue
		}
		b.WriteString(renderRepresentation(rep))
		b.WriteString("\n")
	}
	return styles.RenderPanel(strings.TrimSuffix(b.String(), "\n"), title, width, height, focused, styles.ViewTypeColor(v.Type()))
}

func renderRepresentation(rep scene.RepresentationProxy) string {
	name := rep.Input().Name()
	detail := fmt.Sprintf("%.2f", rep.Opacity())
	switch r := rep.(type) {
	case *scene.Geometry:
		detail = r.Mode() + " " + detail
	case *scene.Slice:
		detail = fmt.Sprintf("slice %d %s", r.SliceIndex(), detail)
	}
	if rep.ColorBy() != "" {
		detail += " " + rep.ColorBy()
	}
	if !rep.Visibility() {
		return "  " + styles.HiddenDatasetStyle.Render(name) + " " + styles.FieldDomainStyle.Render(detail)
	}
	return "● " + styles.FieldValueStyle.Render(name) + " " + styles.FieldDomainStyle.Render(detail)
}
