package workspace

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/scene"
	"github.com/zjrosen/vizsync/internal/tracing"
)

// Route is the top-level screen.
type Route string

const (
	RouteLanding Route = "landing"
	RouteApp     Route = "app"
)

// StateExtension is appended to generated state names.
const StateExtension = ".vizsync"

// ErrSaveInProgress is returned when SaveState is called while a save is running.
var ErrSaveInProgress = errors.New("a save is already in progress")

// Store is the workspace state shared by the UI.
type Store struct {
	mu              sync.RWMutex
	registry        *scene.Registry
	repo            StateRepository
	now             func() time.Time
	tracer          trace.Tracer
	route           Route
	savingStateName string
	panels          map[int][]Panel
	userData        map[string]any
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the clock used for generated names and timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithTracer traces SaveState and RestoreState.
func WithTracer(tracer trace.Tracer) StoreOption {
	return func(s *Store) {
		s.tracer = tracer
	}
}

// NewStore creates a store on the landing route.
func NewStore(registry *scene.Registry, repo StateRepository, opts ...StoreOption) *Store {
	s := &Store{
		registry: registry,
		repo:     repo,
		now:      time.Now,
		route:    RouteLanding,
		panels:   make(map[int][]Panel),
		userData: make(map[string]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the scene registry.
func (s *Store) Registry() *scene.Registry {
	return s.registry
}

// Route returns the current route.
func (s *Store) Route() Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.route
}

// ShowLanding switches to the landing route.
func (s *Store) ShowLanding() {
	s.setRoute(RouteLanding)
}

// ShowApp switches to the app route.
func (s *Store) ShowApp() {
	s.setRoute(RouteApp)
}

func (s *Store) setRoute(r Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = r
}

// SavingStateName returns the name of the state being saved, or "".
func (s *Store) SavingStateName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.savingStateName
}

// AddPanel registers a panel under its priority.
func (s *Store) AddPanel(p Panel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panels[p.Priority] = append(s.panels[p.Priority], p)
}

// Panels returns every panel ordered by priority, then by insertion.
func (s *Store) Panels() []Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	priorities := make([]int, 0, len(s.panels))
	for p := range s.panels {
		priorities = append(priorities, p)
	}
	sort.Ints(priorities)

	out := make([]Panel, 0)
	for _, p := range priorities {
		out = append(out, s.panels[p]...)
	}
	return out
}

// SetUserData stores a persisted value under key.
func (s *Store) SetUserData(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userData[key] = value
}

// UserData returns a copy of the persisted values.
func (s *Store) UserData() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMap(s.userData)
}

// StateName returns the name SaveState generates for t.
func StateName(t time.Time) string {
	return fmt.Sprintf("%d%d%d_%d-%d-%d%s",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), StateExtension)
}

// SaveState persists the scene and user data under name, or under a generated
// name when name is empty. It returns the name used.
func (s *Store) SaveState(ctx context.Context, name string) (string, error) {
	now := s.now()
	if name == "" {
		name = StateName(now)
	}

	s.mu.Lock()
	if s.savingStateName != "" {
		s.mu.Unlock()
		return "", ErrSaveInProgress
	}
	s.savingStateName = name
	userData := cloneMap(s.userData)
	userData["route"] = string(s.route)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.savingStateName = ""
		s.mu.Unlock()
	}()

	err := tracing.Run(ctx, s.tracer, tracing.SpanSaveState, func(ctx context.Context) error {
		data, err := s.registry.SaveState(userData).Marshal()
		if err != nil {
			return fmt.Errorf("encode state %s: %w", name, err)
		}
		if err := s.repo.Save(ctx, &SavedState{Name: name, Document: data, CreatedAt: now, UpdatedAt: now}); err != nil {
			return fmt.Errorf("save state %s: %w", name, err)
		}
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int(tracing.AttrBytes, len(data)))
		log.Info(log.CatState, "State saved", "name", name, "bytes", len(data))
		return nil
	}, attribute.String(tracing.AttrStateName, name))
	if err != nil {
		return "", err
	}
	return name, nil
}

// RestoreState resets the workspace and loads the saved state name.
func (s *Store) RestoreState(ctx context.Context, name string) error {
	return tracing.Run(ctx, s.tracer, tracing.SpanRestoreState, func(ctx context.Context) error {
		return s.restoreState(ctx, name)
	}, attribute.String(tracing.AttrStateName, name))
}

func (s *Store) restoreState(ctx context.Context, name string) error {
	saved, err := s.repo.Find(ctx, name)
	if err != nil {
		return fmt.Errorf("restore state %s: %w", name, err)
	}
	doc, err := scene.UnmarshalState(saved.Document)
	if err != nil {
		return fmt.Errorf("restore state %s: %w", name, err)
	}

	s.ResetWorkspace()

	userData, err := s.registry.LoadState(doc)
	if err != nil {
		return fmt.Errorf("restore state %s: %w", name, err)
	}

	s.mu.Lock()
	if route, ok := userData["route"].(string); ok {
		s.route = Route(route)
		delete(userData, "route")
	}
	mergeRecursive(s.userData, userData)
	s.mu.Unlock()

	log.Info(log.CatState, "State restored", "name", name)
	return nil
}

// ResetWorkspace deletes every source, then renders and resets every view.
func (s *Store) ResetWorkspace() {
	for _, src := range s.registry.Sources() {
		if err := s.registry.DeleteProxy(src); err != nil {
			log.ErrorErr(log.CatState, "Failed to delete source during reset", err, "id", src.ID())
		}
	}
	s.registry.RenderAllViews()
	s.registry.ResetCameraInAllViews()
}

// ListStates returns the saved states, most recent first.
func (s *Store) ListStates(ctx context.Context) ([]*SavedState, error) {
	return s.repo.List(ctx)
}

// DeleteState removes a saved state.
func (s *Store) DeleteState(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete state %s: %w", name, err)
	}
	return nil
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = cloneMap(nested)
		}
		out[k] = v
	}
	return out
}

// mergeRecursive copies src into dst, merging nested maps key by key.
func mergeRecursive(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeRecursive(dstMap, srcMap)
			continue
		}
		if srcIsMap {
			v = cloneMap(srcMap)
		}
		dst[k] = v
	}
}
