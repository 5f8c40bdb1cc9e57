// Package layout arranges views in a one to four pane grid.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/scene"
)

// DefaultOrder is the initial view order.
var DefaultOrder = []string{"View3D", "View2D_Z", "View2D_X", "View2D_Y"}

// ErrInvalidLayout is returned for out-of-range indexes, counts or unknown types.
var ErrInvalidLayout = errors.New("invalid layout")

// Change is one layout request from the UI.
type Change struct {
	Index   int    // pane the request came from
	Count   int    // number of panes to show
	NewType string // view type to put in pane Index, or ""
}

// ViewSource provides views by type, creating them on demand.
type ViewSource interface {
	View(viewType string) (*scene.View, error)
}

// Manager tracks the view order and the visible views.
type Manager struct {
	source ViewSource
	order  []string
	views  []*scene.View
}

// NewManager creates a manager with order, or DefaultOrder when order is empty.
func NewManager(source ViewSource, order []string) (*Manager, error) {
	if len(order) == 0 {
		order = DefaultOrder
	}
	if err := validateOrder(order); err != nil {
		return nil, err
	}
	return &Manager{source: source, order: slices.Clone(order)}, nil
}

// Order returns the current view order.
func (m *Manager) Order() []string {
	return slices.Clone(m.order)
}

// Views returns the visible views.
func (m *Manager) Views() []*scene.View {
	return slices.Clone(m.views)
}

// Count returns the number of visible views.
func (m *Manager) Count() int {
	return len(m.views)
}

// Mount shows a single view when none are visible yet.
func (m *Manager) Mount() error {
	if len(m.views) > 0 {
		return nil
	}
	return m.UpdateViews(1)
}

// Update applies a change:
//   - with NewType, the pane at Index takes NewType and its old type moves to NewType's slot;
//   - with Count 1, the view at Index moves to the front;
//   - with Index 0 and Count 2, the second view swaps into the first pane.
func (m *Manager) Update(c Change) error {
	if c.Index < 0 || c.Index >= len(m.order) {
		return fmt.Errorf("%w: index %d", ErrInvalidLayout, c.Index)
	}
	switch {
	case c.NewType != "":
		order, err := swapOrder(m.order, c.Index, c.NewType)
		if err != nil {
			return err
		}
		m.order = order
	case c.Count == 1:
		m.order, _ = swapOrder(m.order, 0, m.order[c.Index])
	case c.Index == 0 && c.Count == 2:
		m.order, _ = swapOrder(m.order, c.Index, m.order[1])
	}
	if err := m.UpdateViews(c.Count); err != nil {
		return err
	}
	log.Debug(log.CatLayout, "Layout changed", "count", c.Count, "order", fmt.Sprint(m.order))
	return nil
}

// UpdateViews shows the first count view types of the order.
func (m *Manager) UpdateViews(count int) error {
	if count < 1 || count > len(m.order) {
		return fmt.Errorf("%w: count %d", ErrInvalidLayout, count)
	}
	views := make([]*scene.View, 0, count)
	for _, t := range m.order[:count] {
		v, err := m.source.View(t)
		if err != nil {
			return fmt.Errorf("layout view %s: %w", t, err)
		}
		views = append(views, v)
	}
	m.views = views
	return nil
}

// Restore replaces the order and shows its first count views. The new order
// must be a permutation of the current one.
func (m *Manager) Restore(order []string, count int) error {
	if err := validateOrder(order); err != nil {
		return err
	}
	if len(order) != len(m.order) {
		return fmt.Errorf("%w: order has %d view types, want %d", ErrInvalidLayout, len(order), len(m.order))
	}
	for _, t := range order {
		if !slices.Contains(m.order, t) {
			return fmt.Errorf("%w: view type %q", ErrInvalidLayout, t)
		}
	}
	prev := m.order
	m.order = slices.Clone(order)
	if err := m.UpdateViews(count); err != nil {
		m.order = prev
		return err
	}
	return nil
}

// GridRows returns the CSS-style row template: one row below four views.
func (m *Manager) GridRows() string {
	if len(m.views) < 4 {
		return "1fr"
	}
	return "1fr 1fr"
}

// GridColumns returns the CSS-style column template: one column below two views.
func (m *Manager) GridColumns() string {
	if len(m.views) < 2 {
		return "1fr"
	}
	return "1fr 1fr"
}

// Grid returns the number of rows and columns.
func (m *Manager) Grid() (rows, cols int) {
	rows, cols = 1, 1
	if len(m.views) >= 4 {
		rows = 2
	}
	if len(m.views) >= 2 {
		cols = 2
	}
	return rows, cols
}

func swapOrder(order []string, index int, newType string) ([]string, error) {
	dest := slices.Index(order, newType)
	if dest < 0 {
		return nil, fmt.Errorf("%w: view type %q", ErrInvalidLayout, newType)
	}
	result := slices.Clone(order)
	result[index], result[dest] = newType, result[index]
	return result, nil
}

func validateOrder(order []string) error {
	seen := make(map[string]bool, len(order))
	for _, t := range order {
		if seen[t] {
			return fmt.Errorf("%w: duplicate view type %q", ErrInvalidLayout, t)
		}
		seen[t] = true
	}
	return nil
}
