// Package logview shows recent log entries in a scrollable pane.
package logview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/ui/styles"
)

// MaxEntries bounds the retained log entries.
const MaxEntries = 500

// Model is the log pane state. Entries arrive as log.LogEvent messages.
type Model struct {
	visible  bool
	minLevel log.Level
	entries  []string
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden log pane showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug, viewport: viewport.New(0, 0)}
}

// Toggle shows or hides the pane.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	m.refresh()
	return m
}

// Visible reports whether the pane is shown.
func (m Model) Visible() bool { return m.visible }

// Entries returns the retained entries, oldest first.
func (m Model) Entries() []string {
	out := make([]string, len(m.entries))
	copy(out, m.entries)
	return out
}

// SetSize sets the pane size including its border.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	m.refresh()
	return m
}

// Append adds an entry, dropping the oldest beyond MaxEntries.
func (m Model) Append(entry string) Model {
	entry = strings.TrimRight(entry, "\n")
	if entry == "" {
		return m
	}
	entries := append(m.entries, entry)
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}
	m.entries = entries
	m.refresh()
	return m
}

// Update handles log events and scrolling keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case log.LogEvent:
		return m.Append(msg.Payload), nil
	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		switch msg.String() {
		case "d":
			m.minLevel = log.LevelDebug
		case "i":
			m.minLevel = log.LevelInfo
		case "w":
			m.minLevel = log.LevelWarn
		case "e":
			m.minLevel = log.LevelError
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		m.refresh()
	}
	return m, nil
}

// View renders the pane, or "" when hidden.
func (m Model) View() string {
	if !m.visible || m.width == 0 {
		return ""
	}
	title := "Logs ≥ " + m.minLevel.String()
	return styles.RenderPanel(m.viewport.View(), title, m.width, m.height, true, styles.TextPrimaryColor)
}

func (m *Model) refresh() {
	if m.width <= 2 || m.height <= 2 {
		return
	}
	m.viewport.Width = m.width - 2
	m.viewport.Height = m.height - 2

	filtered := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		if entryLevel(entry) >= m.minLevel {
			filtered = append(filtered, colorize(ansi.Truncate(entry, m.viewport.Width, "…")))
		}
	}
	if len(filtered) == 0 {
		m.viewport.SetContent(styles.FieldDomainStyle.Italic(true).Render("No logs to display"))
		return
	}
	m.viewport.SetContent(strings.Join(filtered, "\n"))
	m.viewport.GotoBottom()
}

// entryLevel parses the "[LEVEL]" tag written by package log.
func entryLevel(entry string) log.Level {
	for _, l := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l
		}
	}
	return log.LevelDebug
}

func colorize(entry string) string {
	var color lipgloss.TerminalColor
	switch entryLevel(entry) {
	case log.LevelError:
		color = styles.StatusErrorColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	case log.LevelInfo:
		color = styles.TextPrimaryColor
	default:
		color = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}
