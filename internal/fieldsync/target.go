package fieldsync

import (
	"github.com/zjrosen/vizsync/internal/domain/descriptor"
)

// Target is any backend object that may expose field capabilities.
type Target = any

// Backend is the part of the scene registry a component needs.
type Backend interface {
	// Views returns the registered views in registry order.
	Views() []Target
	// Representation returns the representation of source in view, or nil.
	Representation(source, view Target) Target
	// OnRegistrationChange registers fn and returns the function that releases it.
	OnRegistrationChange(fn func()) (release func())
}

// Describer is implemented by targets that publish a UI descriptor tree.
type Describer interface {
	UI() []descriptor.Node
}

// Binding ties a component to its source and backend.
type Binding struct {
	Source  Target
	Backend Backend
}

type noBackend struct{}

func (noBackend) Views() []Target                    { return nil }
func (noBackend) Representation(_, _ Target) Target  { return nil }
func (noBackend) OnRegistrationChange(func()) func() { return func() {} }

func (b Binding) backend() Backend {
	if b.Backend == nil {
		return noBackend{}
	}
	return b.Backend
}
