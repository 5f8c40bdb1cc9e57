package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPanel draws content inside a rounded border with title embedded in
// the top edge: ╭─ Title ────╮. width and height include the border.
func RenderPanel(content, title string, width, height int, focused bool, titleColor lipgloss.TerminalColor) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)

	inner := max(width-2, 1)
	rows := max(height-2, 1)

	var b strings.Builder
	b.WriteString(topBorder(title, inner, border, lipgloss.NewStyle().Foreground(titleColor).Bold(focused)))
	b.WriteString("\n")

	body := lipgloss.NewStyle().Width(inner).Height(rows).MaxWidth(inner).MaxHeight(rows).Render(content)
	lines := strings.Split(body, "\n")
	for i := 0; i < rows; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		if pad := inner - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		b.WriteString(border.Render(borderVertical) + line + border.Render(borderVertical) + "\n")
	}

	b.WriteString(border.Render(borderBottomLeft + strings.Repeat(borderHorizontal, inner) + borderBottomRight))
	return b.String()
}

func topBorder(title string, inner int, border, titleStyle lipgloss.Style) string {
	if title == "" || inner < 5 {
		return border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	}

	// "─ " + title + " " must fit with at least one trailing rule
	maxTitle := inner - 4
	if lipgloss.Width(title) > maxTitle {
		title = truncate(title, maxTitle)
	}
	rest := inner - 3 - lipgloss.Width(title)
	return border.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(title) +
		border.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}

func truncate(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
