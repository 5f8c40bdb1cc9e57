// Package flags provides feature flags read from configuration.
// Flags are read-only after initialization and default to off when unknown.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/vizsync/internal/log"
)

const (
	// FlagTargetCache memoizes resolved sync targets until the next registration change.
	FlagTargetCache = "target-cache"

	// FlagStrictDomains rejects conflicting domains for the same field instead of
	// keeping the last one.
	FlagStrictDomains = "strict-domains"

	// FlagStatePersistence stores saved states in SQLite. When disabled, saved
	// states live in memory for the lifetime of the process.
	FlagStatePersistence = "state-persistence"
)

// Defaults returns the value of every known flag when configuration omits it.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagTargetCache:      false,
		FlagStrictDomains:    false,
		FlagStatePersistence: true,
	}
}

// Known returns the names of the known flags, sorted.
func Known() []string {
	return slices.Sorted(maps.Keys(Defaults()))
}

// Registry holds feature flag state.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from configured values layered over Defaults.
// Unknown names are kept so they show up in All.
func New(configured map[string]bool) *Registry {
	flags := Defaults()
	maps.Copy(flags, configured)
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.All())
	return r
}

// Enabled reports whether the named flag is on. Unknown flags and a nil
// registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name, "result", false)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}
