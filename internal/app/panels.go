package app

import (
	"github.com/zjrosen/vizsync/internal/domain/descriptor"
	"github.com/zjrosen/vizsync/internal/fieldsync"
	"github.com/zjrosen/vizsync/internal/flags"
	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/scene"
	"github.com/zjrosen/vizsync/internal/ui/fieldpanel"
)

// Backgrounds are the view background colors offered by the View panel.
var Backgrounds = []string{"#000000", "#FFFFFF", "#1E1E2E", "#4D4D66"}

// selectedSource returns the dataset the panels are bound to.
func (m Model) selectedSource() (*scene.Source, bool) {
	if m.sourceID == "" {
		return nil, false
	}
	p, ok := m.registry.Proxy(m.sourceID)
	if !ok {
		return nil, false
	}
	src, ok := p.(*scene.Source)
	return src, ok
}

// syncSelection rebinds the panels when the selected dataset disappeared or
// a first dataset appeared.
func (m *Model) syncSelection() {
	if _, ok := m.selectedSource(); ok {
		return
	}
	sources := m.registry.Sources()
	if len(sources) == 0 {
		m.bind(nil)
		return
	}
	m.sourceIdx = min(m.sourceIdx, len(sources)-1)
	m.bind(sources[m.sourceIdx])
}

// selectSource moves the selection by delta, wrapping around.
func (m *Model) selectSource(delta int) {
	sources := m.registry.Sources()
	if len(sources) < 2 {
		return
	}
	n := len(sources)
	m.sourceIdx = ((m.sourceIdx+delta)%n + n) % n
	m.bind(sources[m.sourceIdx])
}

// bind destroys the current components and mounts one per panel for src.
func (m *Model) bind(src *scene.Source) {
	m.destroyPanels()
	if src == nil {
		m.sourceID = ""
		return
	}
	m.sourceID = src.ID()

	binding := m.registry.Binding(src)
	opts := m.componentOptions()
	for _, p := range m.store.Panels() {
		comp := p.Definition.New(binding, opts...)
		comp.Mount()
		panel := fieldpanel.New(p.Name, comp).SetShowDomains(m.cfg.UI.ShowDomains)
		m.panels = append(m.panels, withChoices(panel, src))
	}
	m.focusPanel(0)
	log.Debug(log.CatUI, "Bound panels", "source", src.Name(), "panels", len(m.panels))
}

func (m *Model) destroyPanels() {
	for _, p := range m.panels {
		p.Component().Destroy()
	}
	m.panels = nil
	m.focus = 0
}

// componentOptions turns feature flags into component options. Each
// component gets its own target cache.
func (m Model) componentOptions() []fieldsync.Option {
	var opts []fieldsync.Option
	if m.cfg.Flags.Enabled(flags.FlagTargetCache) {
		opts = append(opts, fieldsync.WithTargetCache(fieldsync.NewInMemoryTargetCache()))
	}
	if m.cfg.Flags.Enabled(flags.FlagStrictDomains) {
		opts = append(opts, fieldsync.WithMergePolicy(descriptor.MergeStrict))
	}
	if m.cfg.Tracer != nil {
		opts = append(opts, fieldsync.WithTracer(m.cfg.Tracer))
	}
	return opts
}

// withChoices sets the values string fields cycle through.
func withChoices(p fieldpanel.Model, src *scene.Source) fieldpanel.Model {
	arrays := append([]string{""}, src.Dataset().Arrays...)
	return p.
		WithOptions("mode", scene.Modes...).
		WithOptions("colorBy", arrays...).
		WithOptions("background", Backgrounds...)
}

func (m *Model) focusPanel(i int) {
	if len(m.panels) == 0 {
		m.focus = 0
		return
	}
	m.focus = max(0, min(i, len(m.panels)-1))
	for j := range m.panels {
		m.panels[j] = m.panels[j].SetFocused(j == m.focus)
	}
}

// moveField moves the cursor, crossing into the neighboring panel at the edges.
func (m *Model) moveField(dir int) {
	if len(m.panels) == 0 {
		return
	}
	p := m.panels[m.focus]
	var moved bool
	if dir < 0 {
		p, moved = p.MoveUp()
	} else {
		p, moved = p.MoveDown()
	}
	m.panels[m.focus] = p
	if moved {
		return
	}

	next := m.focus + dir
	if next < 0 || next >= len(m.panels) {
		return
	}
	if dir < 0 {
		m.panels[next] = m.panels[next].Bottom()
	} else {
		m.panels[next] = m.panels[next].Top()
	}
	m.focusPanel(next)
}

// refreshPanels pulls scene values into every panel after a change made
// outside the components.
func (m Model) refreshPanels() {
	for _, p := range m.panels {
		p.Component().RefreshData()
	}
}
