package scene

import (
	"github.com/zjrosen/vizsync/internal/fieldsync"
)

// SyncBackend adapts a Registry to fieldsync.Backend.
type SyncBackend struct {
	registry *Registry
}

var _ fieldsync.Backend = SyncBackend{}

// SyncBackend returns the registry's field synchronization adapter.
func (r *Registry) SyncBackend() SyncBackend {
	return SyncBackend{registry: r}
}

// Binding binds source to this registry.
func (r *Registry) Binding(source *Source) fieldsync.Binding {
	return fieldsync.Binding{Source: source, Backend: r.SyncBackend()}
}

func (b SyncBackend) Views() []fieldsync.Target {
	views := b.registry.Views()
	out := make([]fieldsync.Target, len(views))
	for i, v := range views {
		out[i] = v
	}
	return out
}

// Representation returns an untyped nil when there is none, so callers can
// compare the result with nil.
func (b SyncBackend) Representation(source, view fieldsync.Target) fieldsync.Target {
	src, ok := source.(*Source)
	if !ok {
		return nil
	}
	v, ok := view.(*View)
	if !ok {
		return nil
	}
	rep := b.registry.Representation(src, v)
	if rep == nil {
		return nil
	}
	return rep
}

func (b SyncBackend) OnRegistrationChange(fn func()) func() {
	sub := b.registry.OnRegistrationChange(func(RegistrationEvent) { fn() })
	return sub.Unsubscribe
}
