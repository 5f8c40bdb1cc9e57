// Package toaster provides a notification toast shown at the bottom of the screen.
package toaster

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vizsync/internal/ui/styles"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3 * time.Second

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// ShowMsg asks the app to show a toast.
type ShowMsg struct {
	Message string
	Style   Style
}

// Show returns a command emitting ShowMsg.
func Show(message string, style Style) tea.Cmd {
	return func() tea.Msg {
		return ShowMsg{Message: message, Style: style}
	}
}

// DismissMsg signals that the toast should be dismissed.
type DismissMsg struct {
	seq int
}

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that dismisses it after
// DefaultDuration. A newer toast is not dismissed by an older timer.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	seq := m.seq
	return m, tea.Tick(DefaultDuration, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current message.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	var prefix string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.StatusErrorColor)
		prefix = "✗ "
	case StyleInfo:
		style = style.BorderForeground(styles.StatusInfoColor)
		prefix = "i "
	case StyleWarn:
		style = style.BorderForeground(styles.StatusWarningColor)
		prefix = "! "
	default:
		style = style.BorderForeground(styles.StatusSuccessColor)
		prefix = "✓ "
	}
	return style.Render(prefix + m.message)
}

// Overlay replaces the bottom rows of bg with the centered toast, one row
// above the bottom edge.
func (m Model) Overlay(bg string, width, height int) string {
	fg := m.View()
	if fg == "" {
		return bg
	}

	lines := strings.Split(bg, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	toast := strings.Split(fg, "\n")
	start := len(lines) - 1 - len(toast)
	if start < 0 {
		start = 0
	}
	for i, row := range toast {
		if start+i >= len(lines) {
			break
		}
		lines[start+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
	}
	return strings.Join(lines, "\n")
}
