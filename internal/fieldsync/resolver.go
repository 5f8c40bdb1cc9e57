package fieldsync

import "reflect"

// FindTargets returns every target of b that satisfies has, in probe order:
// the bound source, then views in registry order, then the source's
// representation in each of those views. Each target appears at most once.
// The backend is queried on every call.
func FindTargets(b Binding, has func(Target) bool) []Target {
	backend := b.backend()
	targets := make([]Target, 0)

	add := func(t Target) {
		if t == nil || !has(t) || containsTarget(targets, t) {
			return
		}
		targets = append(targets, t)
	}

	add(b.Source)

	views := backend.Views()
	for _, view := range views {
		add(view)
	}
	for _, view := range views {
		add(backend.Representation(b.Source, view))
	}

	return targets
}

// ResolveGetters returns typed readers for field in resolution order.
func ResolveGetters[T comparable](b Binding, f Field[T]) []func() T {
	readers := make([]func() T, 0)
	if f.Get == nil {
		return readers
	}
	for _, t := range FindTargets(b, f.canGet) {
		get, _ := f.Get(t)
		readers = append(readers, get)
	}
	return readers
}

// ResolveSetters returns typed writers for field in resolution order.
func ResolveSetters[T comparable](b Binding, f Field[T]) []func(T) {
	writers := make([]func(T), 0)
	if f.Set == nil {
		return writers
	}
	for _, t := range FindTargets(b, f.canSet) {
		set, _ := f.Set(t)
		writers = append(writers, set)
	}
	return writers
}

// descriptorTargets returns [source] ++ representations ++ views, skipping
// absent representations. This is the order domain refresh consumes from the end.
func descriptorTargets(b Binding) []Target {
	backend := b.backend()
	views := backend.Views()

	out := make([]Target, 0, 1+2*len(views))
	if b.Source != nil {
		out = append(out, b.Source)
	}
	for _, view := range views {
		if rep := backend.Representation(b.Source, view); rep != nil {
			out = append(out, rep)
		}
	}
	out = append(out, views...)
	return out
}

func containsTarget(targets []Target, t Target) bool {
	for _, existing := range targets {
		if sameTarget(existing, t) {
			return true
		}
	}
	return false
}

// sameTarget compares by identity, treating non-comparable values as distinct.
func sameTarget(a, b Target) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}
