// Package app contains the root application model.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/zjrosen/vizsync/internal/config"
	"github.com/zjrosen/vizsync/internal/flags"
	"github.com/zjrosen/vizsync/internal/keys"
	"github.com/zjrosen/vizsync/internal/layout"
	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/pubsub"
	"github.com/zjrosen/vizsync/internal/scene"
	"github.com/zjrosen/vizsync/internal/ui/fieldpanel"
	"github.com/zjrosen/vizsync/internal/ui/layoutview"
	"github.com/zjrosen/vizsync/internal/ui/logview"
	"github.com/zjrosen/vizsync/internal/ui/toaster"
	"github.com/zjrosen/vizsync/internal/watcher"
	"github.com/zjrosen/vizsync/internal/workspace"
)

const (
	sidebarWidth  = 60
	logPaneHeight = 10
)

// Config holds everything the application model needs.
type Config struct {
	Store  *workspace.Store
	Layout *layout.Manager
	Flags  *flags.Registry
	UI     config.UIConfig

	// ConfigPath receives layout changes. Empty disables saving them.
	ConfigPath string

	// WatchPath is the state database watched for external changes.
	// Empty disables auto-refresh of the saved state list.
	WatchPath string

	Tracer trace.Tracer
	Debug  bool
}

// Model is the root application state.
type Model struct {
	cfg      Config
	store    *workspace.Store
	registry *scene.Registry
	datasets workspace.Datasets
	grid     layoutview.Model

	// Field panels for the selected dataset; rebuilt whenever the selection changes.
	panels    []fieldpanel.Model
	focus     int
	sourceID  string
	sourceIdx int

	// Landing screen
	states      []*workspace.SavedState
	stateCursor int

	width      int
	height     int
	help       help.Model
	showHelp   bool
	showStatus bool
	toaster    toaster.Model
	logView    logview.Model

	ctx           context.Context
	cancel        context.CancelFunc
	sceneListener *pubsub.ContinuousListener[scene.RegistrationEvent]
	logListener   *log.LogListener
	watcher       *watcher.Watcher
	watchListener *pubsub.ContinuousListener[watcher.Change]
}

// New creates the application model. Watcher failures are logged and leave
// auto-refresh off.
func New(cfg Config) Model {
	if cfg.Flags == nil {
		cfg.Flags = flags.New(nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	registry := cfg.Store.Registry()

	if len(cfg.Store.Panels()) == 0 {
		for _, p := range workspace.DefaultPanels() {
			cfg.Store.AddPanel(p)
		}
	}

	m := Model{
		cfg:           cfg,
		store:         cfg.Store,
		registry:      registry,
		datasets:      workspace.NewDatasets(registry),
		grid:          layoutview.New(cfg.Layout, registry),
		help:          help.New(),
		showStatus:    cfg.UI.ShowStatusBar,
		logView:       logview.New(),
		ctx:           ctx,
		cancel:        cancel,
		sceneListener: pubsub.NewContinuousListener(ctx, registry.Broker()),
	}
	if cfg.Debug {
		m.logListener = log.NewListener(ctx)
	}

	if cfg.WatchPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(cfg.WatchPath))
		if err == nil {
			err = w.Start()
			if err != nil {
				_ = w.Stop()
			}
		}
		if err != nil {
			log.Warn(log.CatWatcher, "Auto-refresh disabled", "error", err)
		} else {
			m.watcher = w
			m.watchListener = pubsub.NewContinuousListener(ctx, w.Broker())
		}
	}

	if err := cfg.Layout.Mount(); err != nil {
		log.ErrorErr(log.CatLayout, "Failed to mount layout", err)
	}
	m.syncSelection()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadStates(),
		m.sceneListener.Listen(),
		m.watchListener.Listen(),
		m.logListener.Listen(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.logView = m.logView.SetSize(msg.Width, logPaneHeight)
		m.grid.Resize(m.gridSize())
		return m, nil

	case log.LogEvent:
		m.logView, _ = m.logView.Update(msg)
		return m, m.logListener.Listen()

	case pubsub.Event[scene.RegistrationEvent]:
		m.syncSelection()
		return m, m.sceneListener.Listen()

	case pubsub.Event[watcher.Change]:
		log.Debug(log.CatWatcher, "State database changed", "path", msg.Payload.Path)
		return m, tea.Batch(m.loadStates(), m.watchListener.Listen())

	case statesLoadedMsg:
		if msg.err != nil {
			return m.toast("Failed to load saved states: "+msg.err.Error(), toaster.StyleError)
		}
		m.states = msg.states
		m.stateCursor = min(m.stateCursor, max(len(m.states)-1, 0))
		return m, nil

	case stateSavedMsg:
		if msg.err != nil {
			return m.toast("Save failed: "+msg.err.Error(), toaster.StyleError)
		}
		var cmd tea.Cmd
		m, cmd = m.toast("Saved "+msg.name, toaster.StyleSuccess)
		return m, tea.Batch(cmd, m.loadStates())

	case stateDeletedMsg:
		if msg.err != nil {
			return m.toast("Delete failed: "+msg.err.Error(), toaster.StyleError)
		}
		var cmd tea.Cmd
		m, cmd = m.toast("Deleted "+msg.name, toaster.StyleInfo)
		return m, tea.Batch(cmd, m.loadStates())

	case toaster.ShowMsg:
		return m.toast(msg.Message, msg.Style)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Workspace.ToggleLog) {
		m.logView = m.logView.Toggle()
		m.grid.Resize(m.gridSize())
		return m, nil
	}
	if m.logView.Visible() && !key.Matches(msg, keys.Workspace.Quit) {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	if m.store.Route() == workspace.RouteApp {
		return m.handleWorkspaceKey(msg)
	}
	return m.handleLandingKey(msg)
}

func (m Model) toast(message string, style toaster.Style) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, style)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	if m.store.Route() == workspace.RouteApp {
		view = m.workspaceView()
	} else {
		view = m.landingView()
	}

	if m.logView.Visible() {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.logView.View())
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return view
}

// gridSize returns the area left for the view grid.
func (m Model) gridSize() (int, int) {
	w := max(m.width-sidebarWidth, 20)
	h := m.height - m.footerHeight()
	if m.logView.Visible() {
		h -= logPaneHeight
	}
	return w, max(h, 6)
}

func (m Model) footerHeight() int {
	n := 1
	if m.showStatus {
		n++
	}
	return n
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.destroyPanels()
	m.cancel()

	var err error
	if m.watcher != nil {
		err = multierr.Append(err, m.watcher.Stop())
	}
	return err
}
