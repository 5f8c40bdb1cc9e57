package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vizsync/internal/scene"
)

// Builder accumulates views and sources and adds them to a registry in order:
// views first, so every source gets a representation per view.
type Builder struct {
	t       *testing.T
	defs    *scene.Definitions
	views   []string
	sources []sourceData
}

// NewBuilder creates a builder using the built-in proxy definitions.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	defs, err := scene.DefaultDefinitions()
	require.NoError(t, err)
	return &Builder{t: t, defs: defs}
}

// WithDefinitions replaces the proxy definitions.
func (b *Builder) WithDefinitions(defs *scene.Definitions) *Builder {
	b.defs = defs
	return b
}

// WithView adds a view of the given type.
func (b *Builder) WithView(viewType string) *Builder {
	b.views = append(b.views, viewType)
	return b
}

// WithSource adds a source with optional configuration.
func (b *Builder) WithSource(name string, opts ...SourceOption) *Builder {
	src := defaultSource(name)
	for _, opt := range opts {
		opt(&src)
	}
	b.sources = append(b.sources, src)
	return b
}

// Build creates the registry. It is closed when the test finishes.
func (b *Builder) Build() *scene.Registry {
	b.t.Helper()
	registry := scene.NewRegistry(b.defs)
	b.t.Cleanup(registry.Close)

	for _, viewType := range b.views {
		_, err := registry.View(viewType)
		require.NoError(b.t, err, "view %s", viewType)
	}
	for _, data := range b.sources {
		src, err := registry.AddSource(data.name, data.kind, data.dataset)
		require.NoError(b.t, err, "source %s", data.name)
		if !data.hidden {
			continue
		}
		for _, rep := range registry.RepresentationsOf(src) {
			rep.SetVisibility(false)
		}
	}
	return registry
}
