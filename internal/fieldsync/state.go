package fieldsync

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zjrosen/vizsync/internal/domain/descriptor"
)

var (
	// ErrUnknownField is returned when a name was not declared on the definition.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldType is returned when a value does not match the field's declared type.
	ErrFieldType = errors.New("value has wrong type for field")
)

// WatchFunc observes a field value change.
type WatchFunc func(newValue, oldValue any)

type watcher struct {
	id int
	fn WatchFunc
}

// State is the per-component reactive store. Its field keys are fixed at
// creation; watchers run synchronously when a value actually changes.
type State struct {
	fields   map[string]any
	descs    map[string]FieldDescriptor
	order    []string
	domains  map[string]descriptor.Domain
	watchers map[string][]watcher
	nextID   int
}

func newState(fields []FieldDescriptor) *State {
	s := &State{
		fields:   make(map[string]any, len(fields)),
		descs:    make(map[string]FieldDescriptor, len(fields)),
		order:    make([]string, 0, len(fields)),
		domains:  make(map[string]descriptor.Domain),
		watchers: make(map[string][]watcher),
	}
	for _, f := range fields {
		name := f.FieldName()
		s.fields[name] = f.InitialValue()
		s.descs[name] = f
		s.order = append(s.order, name)
	}
	return s
}

// Names returns the declared field names in declaration order.
func (s *State) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the current value of a field.
func (s *State) Get(name string) (any, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// Set assigns a field and notifies its watchers when the value changed.
func (s *State) Set(name string, value any) error {
	desc, ok := s.descs[name]
	if !ok {
		return fmt.Errorf("set %q: %w", name, ErrUnknownField)
	}
	if !desc.accepts(value) {
		return fmt.Errorf("set %q to %T: %w", name, value, ErrFieldType)
	}

	old := s.fields[name]
	if desc.equal(old, value) {
		return nil
	}
	s.fields[name] = value

	snapshot := append([]watcher(nil), s.watchers[name]...)
	for _, w := range snapshot {
		if s.watching(name, w.id) {
			w.fn(value, old)
		}
	}
	return nil
}

// Watch registers fn for changes of name and returns its release function.
// Watching an undeclared name registers nothing.
func (s *State) Watch(name string, fn WatchFunc) (release func()) {
	if _, ok := s.descs[name]; !ok {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.watchers[name] = append(s.watchers[name], watcher{id: id, fn: fn})

	return func() {
		list := s.watchers[name]
		for i, w := range list {
			if w.id == id {
				s.watchers[name] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(s.watchers[name]) == 0 {
			delete(s.watchers, name)
		}
	}
}

// WatcherCount returns the number of registered watchers across all fields.
func (s *State) WatcherCount() int {
	n := 0
	for _, list := range s.watchers {
		n += len(list)
	}
	return n
}

// Domain returns the domain extracted for name, if any.
func (s *State) Domain(name string) (descriptor.Domain, bool) {
	d, ok := s.domains[name]
	return d, ok
}

// Domains returns a copy of the extracted domains.
func (s *State) Domains() map[string]descriptor.Domain {
	out := make(map[string]descriptor.Domain, len(s.domains))
	for k, v := range s.domains {
		out[k] = v
	}
	return out
}

// DomainNames returns the extracted domain names, sorted.
func (s *State) DomainNames() []string {
	names := make([]string, 0, len(s.domains))
	for name := range s.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *State) replaceDomains(domains map[string]descriptor.Domain) {
	s.domains = domains
}

func (s *State) watching(name string, id int) bool {
	for _, w := range s.watchers[name] {
		if w.id == id {
			return true
		}
	}
	return false
}

// Value returns the field value as T.
func Value[T any](s *State, name string) (T, bool) {
	var zero T
	v, ok := s.fields[name]
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
