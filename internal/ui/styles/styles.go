// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, domains, footers

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Sliders
	SliderFillColor  = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#3498DB"}
	SliderTrackColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#3A3A3A"}

	// View types
	View3DColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	View2DColor = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	FieldLabelStyle    = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	FieldValueStyle    = lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(true)
	FieldDomainStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	SliderFillStyle    = lipgloss.NewStyle().Foreground(SliderFillColor)
	SliderTrackStyle   = lipgloss.NewStyle().Foreground(SliderTrackColor)
	HiddenDatasetStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Strikethrough(true)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)

// ViewTypeColor returns the accent used for a view type's title.
func ViewTypeColor(viewType string) lipgloss.TerminalColor {
	if viewType == "View3D" {
		return View3DColor
	}
	return View2DColor
}
