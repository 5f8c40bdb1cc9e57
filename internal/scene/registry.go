package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/pubsub"
)

var (
	// ErrUnknownProxy is returned when a proxy is not registered.
	ErrUnknownProxy = errors.New("unknown proxy")
	// ErrUnknownViewType is returned for a view type missing from the definitions.
	ErrUnknownViewType = errors.New("unknown view type")
	// ErrUnknownSourceKind is returned for a source kind missing from the definitions.
	ErrUnknownSourceKind = errors.New("unknown source kind")
)

// DefaultSourceKind is the kind used when AddSource is given no kind.
const DefaultSourceKind = "TrivialProducer"

// RegistrationEvent describes one proxy registration change.
type RegistrationEvent struct {
	Action  pubsub.EventType // pubsub.RegisteredEvent or pubsub.UnregisteredEvent
	Group   Group
	ProxyID string
}

// Registry owns every proxy of the scene.
type Registry struct {
	mu      sync.RWMutex
	defs    *Definitions
	sources []*Source
	views   []*View
	reps    []RepresentationProxy

	listeners *pubsub.Listeners[RegistrationEvent]
	broker    *pubsub.Broker[RegistrationEvent]
}

// NewRegistry creates an empty registry using defs for proxy descriptors.
func NewRegistry(defs *Definitions) *Registry {
	return &Registry{
		defs:      defs,
		listeners: pubsub.NewListeners[RegistrationEvent](),
		broker:    pubsub.NewBroker[RegistrationEvent](),
	}
}

// Definitions returns the proxy definitions the registry was built with.
func (r *Registry) Definitions() *Definitions {
	return r.defs
}

// OnRegistrationChange registers a synchronous callback for every registration
// change. Callbacks run in subscription order inside the mutating call.
func (r *Registry) OnRegistrationChange(fn func(RegistrationEvent)) *pubsub.Subscription {
	return r.listeners.Add(fn)
}

// Broker publishes registration changes asynchronously.
func (r *Registry) Broker() *pubsub.Broker[RegistrationEvent] {
	return r.broker
}

// Close shuts down the broker.
func (r *Registry) Close() {
	r.broker.Close()
}

// AddSource registers a source and creates its representation in every view.
func (r *Registry) AddSource(name, kind string, dataset Dataset) (*Source, error) {
	if kind == "" {
		kind = DefaultSourceKind
	}
	if _, ok := r.defs.Def(GroupSources, kind); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSourceKind, kind)
	}

	src := &Source{
		base:    newBase(GroupSources, kind, r.defs.UI(GroupSources, kind)),
		name:    name,
		dataset: dataset,
	}

	r.mu.Lock()
	r.sources = append(r.sources, src)
	events := []RegistrationEvent{registered(src)}
	for _, view := range r.views {
		rep := r.newRepresentation(src, view)
		r.reps = append(r.reps, rep)
		events = append(events, registered(rep))
	}
	r.mu.Unlock()

	log.Info(log.CatScene, "Source registered", "id", src.ID(), "name", name, "kind", kind)
	r.notify(events)
	return src, nil
}

// AddView registers a view of viewType and creates a representation for every source.
func (r *Registry) AddView(viewType string) (*View, error) {
	return r.addView(viewType, false)
}

// View returns the first view of viewType, creating it if none exists.
func (r *Registry) View(viewType string) (*View, error) {
	return r.addView(viewType, true)
}

// addView registers a view of viewType. With reuse set, the lookup of an
// existing view and the insert happen under one lock.
func (r *Registry) addView(viewType string, reuse bool) (*View, error) {
	def, ok := r.defs.Def(GroupViews, viewType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownViewType, viewType)
	}

	r.mu.Lock()
	if reuse {
		for _, v := range r.views {
			if v.Type() == viewType {
				r.mu.Unlock()
				return v, nil
			}
		}
	}
	view := &View{
		base:       newBase(GroupViews, viewType, r.defs.UI(GroupViews, viewType)),
		axis:       def.Axis,
		background: "#000000",
		axes:       true,
	}
	r.views = append(r.views, view)
	events := []RegistrationEvent{registered(view)}
	for _, src := range r.sources {
		rep := r.newRepresentation(src, view)
		r.reps = append(r.reps, rep)
		events = append(events, registered(rep))
	}
	r.mu.Unlock()

	log.Info(log.CatScene, "View registered", "id", view.ID(), "type", viewType)
	r.notify(events)
	return view, nil
}

// Sources returns the registered sources in registration order.
func (r *Registry) Sources() []*Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Source(nil), r.sources...)
}

// Views returns the registered views in registration order.
func (r *Registry) Views() []*View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*View(nil), r.views...)
}

// Representations returns every representation in registration order.
func (r *Registry) Representations() []RepresentationProxy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]RepresentationProxy(nil), r.reps...)
}

// RepresentationsOf returns the representations of source, in view order.
func (r *Registry) RepresentationsOf(source *Source) []RepresentationProxy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RepresentationProxy, 0, len(r.views))
	for _, rep := range r.reps {
		if rep.Input() == source {
			out = append(out, rep)
		}
	}
	return out
}

// Representation returns the representation of source in view, or nil.
func (r *Registry) Representation(source *Source, view *View) RepresentationProxy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rep := range r.reps {
		if rep.Input() == source && rep.View() == view {
			return rep
		}
	}
	return nil
}

// Proxy looks up a proxy by id.
func (r *Registry) Proxy(id string) (Proxy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sources {
		if s.ID() == id {
			return s, true
		}
	}
	for _, v := range r.views {
		if v.ID() == id {
			return v, true
		}
	}
	for _, rep := range r.reps {
		if rep.ID() == id {
			return rep, true
		}
	}
	return nil, false
}

// DeleteProxy unregisters p and every representation that depends on it.
// Dependent representations are unregistered first.
func (r *Registry) DeleteProxy(p Proxy) error {
	r.mu.Lock()
	var events []RegistrationEvent

	switch proxy := p.(type) {
	case *Source:
		idx := indexOf(r.sources, proxy)
		if idx < 0 {
			r.mu.Unlock()
			return fmt.Errorf("delete source %s: %w", proxy.ID(), ErrUnknownProxy)
		}
		events = r.removeRepresentations(func(rep RepresentationProxy) bool { return rep.Input() == proxy })
		r.sources = append(r.sources[:idx], r.sources[idx+1:]...)
	case *View:
		idx := indexOf(r.views, proxy)
		if idx < 0 {
			r.mu.Unlock()
			return fmt.Errorf("delete view %s: %w", proxy.ID(), ErrUnknownProxy)
		}
		events = r.removeRepresentations(func(rep RepresentationProxy) bool { return rep.View() == proxy })
		r.views = append(r.views[:idx], r.views[idx+1:]...)
	case RepresentationProxy:
		events = r.removeRepresentations(func(rep RepresentationProxy) bool { return rep == proxy })
		if len(events) == 0 {
			r.mu.Unlock()
			return fmt.Errorf("delete representation %s: %w", proxy.ID(), ErrUnknownProxy)
		}
		r.mu.Unlock()
		r.notify(events)
		return nil
	default:
		r.mu.Unlock()
		return fmt.Errorf("delete %T: %w", p, ErrUnknownProxy)
	}
	events = append(events, unregistered(p))
	r.mu.Unlock()

	log.Info(log.CatScene, "Proxy unregistered", "id", p.ID(), "group", string(p.Group()))
	r.notify(events)
	return nil
}

// RenderAllViews renders every view.
func (r *Registry) RenderAllViews() {
	for _, v := range r.Views() {
		v.Render()
	}
}

// ResetCameraInAllViews resets the camera of every view.
func (r *Registry) ResetCameraInAllViews() {
	for _, v := range r.Views() {
		v.ResetCamera()
	}
}

// ResizeAllViews gives every view the same viewport size.
func (r *Registry) ResizeAllViews(width, height int) {
	for _, v := range r.Views() {
		v.Resize(width, height)
	}
}

func (r *Registry) newRepresentation(src *Source, view *View) RepresentationProxy {
	viewDef, _ := r.defs.Def(GroupViews, view.Type())
	kind := viewDef.Representation
	common := newRepresentation(kind, r.defs.UI(GroupRepresentations, kind), src, view)
	if view.Axis() != "" {
		return &Slice{representation: common, sliceIndex: src.Dataset().Dimensions[axisIndex(view.Axis())] / 2}
	}
	return &Geometry{representation: common, pointSize: 1, mode: "Surface"}
}

// removeRepresentations must be called with the lock held.
func (r *Registry) removeRepresentations(match func(RepresentationProxy) bool) []RegistrationEvent {
	var events []RegistrationEvent
	kept := r.reps[:0]
	for _, rep := range r.reps {
		if match(rep) {
			events = append(events, unregistered(rep))
			continue
		}
		kept = append(kept, rep)
	}
	for i := len(kept); i < len(r.reps); i++ {
		r.reps[i] = nil
	}
	r.reps = kept
	return events
}

func (r *Registry) notify(events []RegistrationEvent) {
	for _, e := range events {
		log.Debug(log.CatScene, "Registration change", "action", string(e.Action), "group", string(e.Group), "id", e.ProxyID)
		r.listeners.Notify(e)
		r.broker.Publish(e.Action, e)
	}
}

func registered(p Proxy) RegistrationEvent {
	return RegistrationEvent{Action: pubsub.RegisteredEvent, Group: p.Group(), ProxyID: p.ID()}
}

func unregistered(p Proxy) RegistrationEvent {
	return RegistrationEvent{Action: pubsub.UnregisteredEvent, Group: p.Group(), ProxyID: p.ID()}
}

func indexOf[T comparable](items []T, item T) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return -1
}
