// Package fieldpanel renders the synchronized fields of one component as an
// editable list: sliders for bounded numbers, checkboxes for booleans and
// cycling choices for strings.
package fieldpanel

import (
	"fmt"
	"math"
	"strings"

	"github.com/zjrosen/vizsync/internal/fieldsync"
	"github.com/zjrosen/vizsync/internal/ui/styles"
)

const (
	sliderWidth = 10
	labelWidth  = 20
)

// Model is one panel bound to a component.
type Model struct {
	title       string
	comp        *fieldsync.Component
	fields      []string
	cursor      int
	focused     bool
	showDomains bool
	options     map[string][]string
}

// New creates a panel listing every field of comp.
func New(title string, comp *fieldsync.Component) Model {
	return Model{
		title:       title,
		comp:        comp,
		fields:      comp.State().Names(),
		showDomains: true,
		options:     make(map[string][]string),
	}
}

// WithOptions sets the choices a string field cycles through.
func (m Model) WithOptions(field string, options ...string) Model {
	opts := make(map[string][]string, len(m.options)+1)
	for k, v := range m.options {
		opts[k] = v
	}
	opts[field] = options
	m.options = opts
	return m
}

// SetShowDomains toggles the domain hint after numeric fields.
func (m Model) SetShowDomains(show bool) Model {
	m.showDomains = show
	return m
}

// SetFocused marks the panel as receiving keys.
func (m Model) SetFocused(focused bool) Model {
	m.focused = focused
	return m
}

// Focused reports whether the panel receives keys.
func (m Model) Focused() bool { return m.focused }

// Title returns the panel title.
func (m Model) Title() string { return m.title }

// Component returns the bound component.
func (m Model) Component() *fieldsync.Component { return m.comp }

// Len returns the number of fields.
func (m Model) Len() int { return len(m.fields) }

// Cursor returns the selected row.
func (m Model) Cursor() int { return m.cursor }

// Selected returns the selected field name.
func (m Model) Selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.fields) {
		return "", false
	}
	return m.fields[m.cursor], true
}

// MoveUp selects the previous field. It reports false at the first row.
func (m Model) MoveUp() (Model, bool) {
	if m.cursor == 0 {
		return m, false
	}
	m.cursor--
	return m, true
}

// MoveDown selects the next field. It reports false at the last row.
func (m Model) MoveDown() (Model, bool) {
	if m.cursor >= len(m.fields)-1 {
		return m, false
	}
	m.cursor++
	return m, true
}

// Top selects the first field.
func (m Model) Top() Model {
	m.cursor = 0
	return m
}

// Bottom selects the last field.
func (m Model) Bottom() Model {
	m.cursor = max(len(m.fields)-1, 0)
	return m
}

// Adjust steps the selected field by dir and assigns it through the
// component, which pushes it to the scene.
func (m Model) Adjust(dir int) error {
	name, ok := m.Selected()
	if !ok {
		return ErrNotAdjustable
	}
	state := m.comp.State()
	current, _ := state.Get(name)
	d, hasDomain := state.Domain(name)

	next, err := Adjust(current, d, hasDomain, dir, m.options[name])
	if err != nil {
		return fmt.Errorf("adjust %s: %w", name, err)
	}
	return m.comp.Set(name, next)
}

// Height returns the rendered height including the border.
func (m Model) Height() int {
	return len(m.fields) + 2
}

// View renders the panel at width columns.
func (m Model) View(width int) string {
	rows := make([]string, 0, len(m.fields))
	for i, name := range m.fields {
		rows = append(rows, m.renderRow(name, i == m.cursor && m.focused))
	}
	return styles.RenderPanel(strings.Join(rows, "\n"), m.title, width, m.Height(), m.focused, styles.TextPrimaryColor)
}

func (m Model) renderRow(name string, selected bool) string {
	indicator := "  "
	if selected {
		indicator = styles.SelectionIndicatorStyle.Render("> ")
	}
	label := styles.FieldLabelStyle.Width(labelWidth).Render(name)

	state := m.comp.State()
	value, _ := state.Get(name)
	d, hasDomain := state.Domain(name)

	var b strings.Builder
	b.WriteString(indicator)
	b.WriteString(label)

	switch v := value.(type) {
	case bool:
		box := "[ ]"
		if v {
			box = "[x]"
		}
		b.WriteString(styles.FieldValueStyle.Render(box))
	case float64, int:
		f := toFloat(v)
		if hasDomain && d.Min != nil && d.Max != nil {
			b.WriteString(Slider(f, *d.Min, *d.Max, sliderWidth))
			b.WriteString(" ")
		}
		b.WriteString(styles.FieldValueStyle.Render(FormatValue(v)))
		if m.showDomains && hasDomain {
			b.WriteString(" ")
			b.WriteString(styles.FieldDomainStyle.Render(d.String()))
		}
	default:
		s := FormatValue(v)
		if s == "" {
			s = "-"
		}
		b.WriteString(styles.FieldValueStyle.Render(s))
		if opts := m.options[name]; len(opts) > 0 {
			b.WriteString(styles.FieldDomainStyle.Render(fmt.Sprintf(" (%d choices)", len(opts))))
		}
	}
	return b.String()
}

// Slider renders v within [lo, hi] as a filled bar of width cells.
func Slider(v, lo, hi float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if hi > lo {
		ratio := (v - lo) / (hi - lo)
		ratio = math.Max(0, math.Min(1, ratio))
		filled = int(math.Round(ratio * float64(width)))
	}
	return styles.SliderFillStyle.Render(strings.Repeat("█", filled)) +
		styles.SliderTrackStyle.Render(strings.Repeat("░", width-filled))
}

// FormatValue renders a field value compactly.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.4g", x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	}
	return math.NaN()
}
