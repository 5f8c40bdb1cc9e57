package fieldsync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/vizsync/internal/domain/descriptor"
)

func TestComponent_EndToEndOpacity(t *testing.T) {
	source := &opacityProxy{label: "source", opacity: 0.5}
	def := Build(opacityField)

	c := def.New(Binding{Source: source, Backend: newFakeBackend()})
	c.Mount()

	v, ok := Value[float64](c.State(), "opacity")
	require.True(t, ok)
	require.Equal(t, 0.5, v)

	c.OnFieldChanged("opacity", 0.2)
	require.Equal(t, 0.2, source.opacity)
}

func TestComponent_SetPushesThroughWatcher(t *testing.T) {
	source := &opacityProxy{label: "source", opacity: 0.5}
	c := Build(opacityField).New(Binding{Source: source, Backend: newFakeBackend()})
	c.Mount()

	require.NoError(t, c.Set("opacity", 0.3))
	require.Equal(t, 0.3, source.opacity)
}

func TestComponent_SetRejectsUnknownAndMistyped(t *testing.T) {
	c := Build(opacityField).New(Binding{Backend: newFakeBackend()})

	err := c.Set("color", "red")
	require.ErrorIs(t, err, ErrUnknownField)

	err = c.Set("opacity", "opaque")
	require.ErrorIs(t, err, ErrFieldType)

	v, _ := Value[float64](c.State(), "opacity")
	require.Equal(t, 1.0, v)
}

func TestComponent_InitialValueKeptWithoutGetter(t *testing.T) {
	source := &plainProxy{label: "source"}
	c := Build(opacityField, nameField).New(Binding{Source: source, Backend: newFakeBackend()})
	c.Mount()

	op, _ := Value[float64](c.State(), "opacity")
	name, _ := Value[string](c.State(), "name")
	require.Equal(t, 1.0, op)
	require.Equal(t, "unnamed", name)
}

func TestComponent_PullReadsFirstGetter(t *testing.T) {
	backend := newFakeBackend()
	source := &plainProxy{label: "source"}
	view := &opacityProxy{label: "view", opacity: 0.7}
	rep := &opacityProxy{label: "rep", opacity: 0.1}
	backend.addView(view)
	backend.setRep(source, view, rep)

	c := Build(opacityField).New(Binding{Source: source, Backend: backend})
	c.Mount()

	v, _ := Value[float64](c.State(), "opacity")
	require.Equal(t, 0.7, v)
}

func TestComponent_PushReverseOrder(t *testing.T) {
	var calls []string
	backend := newFakeBackend()
	source := &opacityProxy{label: "source", opacity: 1, calls: &calls}
	v1 := &opacityProxy{label: "v1", opacity: 1, calls: &calls}
	v2 := &opacityProxy{label: "v2", opacity: 1, calls: &calls}
	r1 := &opacityProxy{label: "r1", opacity: 1, calls: &calls}
	r2 := &opacityProxy{label: "r2", opacity: 1, calls: &calls}
	backend.addView(v1)
	backend.addView(v2)
	backend.setRep(source, v1, r1)
	backend.setRep(source, v2, r2)

	c := Build(opacityField).New(Binding{Source: source, Backend: backend})
	c.OnFieldChanged("opacity", 0.4)

	require.Equal(t, []string{"r2", "r1", "v2", "v1", "source"}, calls)
	for _, p := range []*opacityProxy{source, v1, v2, r1, r2} {
		require.Equal(t, 0.4, p.opacity, p.label)
	}
}

func TestComponent_PushWithoutTargetsIsNoop(t *testing.T) {
	c := Build(opacityField).New(Binding{Source: &plainProxy{}, Backend: newFakeBackend()})
	require.NotPanics(t, func() {
		c.OnFieldChanged("opacity", 0.4)
		c.OnFieldChanged("undeclared", 3)
	})
}

func TestComponent_RefreshDataIdempotent(t *testing.T) {
	source := &opacityProxy{label: "source", opacity: 0.25}
	c := Build(opacityField).New(Binding{Source: source, Backend: newFakeBackend()})

	changes := 0
	release := c.State().Watch("opacity", func(_, _ any) { changes++ })
	defer release()

	c.RefreshData()
	first, _ := c.State().Get("opacity")
	c.RefreshData()
	second, _ := c.State().Get("opacity")

	require.Equal(t, first, second)
	require.Equal(t, 1, changes)
}

func TestComponent_ReentrantPullDropped(t *testing.T) {
	source := &opacityProxy{label: "source", opacity: 0.5}
	c := Build(opacityField).New(Binding{Source: source, Backend: newFakeBackend()})

	pushes := 0
	source.onSet = func(float64) {
		pushes++
		// A setter that synchronously asks for a pull while the pull that
		// caused this push is still running.
		c.RefreshData()
	}

	c.RefreshData()

	require.Equal(t, 1, pushes)
	require.Equal(t, 1, source.gets)
	require.Equal(t, Idle, c.dataGuard.State())
}

func TestComponent_ReentrantDomainRefreshDropped(t *testing.T) {
	var c *Component
	calls := 0
	source := &plainProxy{
		ui: []descriptor.Node{leaf("opacity", 0, 1, descriptor.Any())},
		onUI: func() {
			calls++
			c.RefreshDomains()
		},
	}
	c = Build(opacityField).New(Binding{Source: source, Backend: newFakeBackend()})

	c.RefreshDomains()

	require.Equal(t, 1, calls)
	d, ok := c.State().Domain("opacity")
	require.True(t, ok)
	require.InDelta(t, 0.002, d.Step.Value(), 1e-12)
	require.Equal(t, Idle, c.domainGuard.State())
}

func TestComponent_GuardReleasedAfterGetterPanic(t *testing.T) {
	source := &opacityProxy{label: "source", opacity: 0.5}
	source.onGet = func() { panic("boom") }
	c := Build(opacityField).New(Binding{Source: source, Backend: newFakeBackend()})

	require.PanicsWithValue(t, "boom", c.RefreshData)
	require.Equal(t, Idle, c.dataGuard.State())

	source.onGet = nil
	c.RefreshData()
	v, _ := Value[float64](c.State(), "opacity")
	require.Equal(t, 0.5, v)
}

func TestComponent_DomainsSourceWinsOverViews(t *testing.T) {
	backend := newFakeBackend()
	source := &plainProxy{ui: []descriptor.Node{leaf("opacity", 0, 1, descriptor.Fixed(0.1))}}
	view := &plainProxy{ui: []descriptor.Node{
		leaf("opacity", 0, 10, descriptor.Any()),
		intLeaf("background", 0, 255, descriptor.Any()),
	}}
	rep := &plainProxy{ui: []descriptor.Node{descriptor.NewBranch(
		intLeaf("pointSize", 1, 10, descriptor.Any()),
	)}}
	backend.addView(view)
	backend.setRep(source, view, rep)

	c := Build(opacityField).New(Binding{Source: source, Backend: backend})
	c.Mount()

	domains := c.State().Domains()
	require.Len(t, domains, 3)
	require.Equal(t, 0.1, domains["opacity"].Step.Value())
	require.Equal(t, 1.0, domains["background"].Step.Value())
	require.Equal(t, 1.0, domains["pointSize"].Step.Value())
	require.Equal(t, []string{"background", "opacity", "pointSize"}, c.State().DomainNames())
}

func TestComponent_DomainsReplacedNotMerged(t *testing.T) {
	backend := newFakeBackend()
	source := &plainProxy{ui: []descriptor.Node{leaf("opacity", 0, 1, descriptor.Any())}}
	view := &plainProxy{ui: []descriptor.Node{leaf("background", 0, 255, descriptor.Any())}}
	backend.addView(view)

	c := Build(opacityField).New(Binding{Source: source, Backend: backend})
	c.Mount()
	require.Len(t, c.State().Domains(), 2)

	backend.views = nil
	backend.emit()

	_, ok := c.State().Domain("background")
	require.False(t, ok)
	require.Len(t, c.State().Domains(), 1)
}

func TestComponent_StrictPolicyKeepsDomainsOnConflict(t *testing.T) {
	backend := newFakeBackend()
	source := &plainProxy{ui: []descriptor.Node{leaf("opacity", 0, 1, descriptor.Any())}}
	c := Build(opacityField).New(
		Binding{Source: source, Backend: backend},
		WithMergePolicy(descriptor.MergeStrict),
	)
	c.Mount()
	require.Len(t, c.State().Domains(), 1)

	backend.addView(&plainProxy{ui: []descriptor.Node{leaf("opacity", 0, 5, descriptor.Any())}})
	backend.emit()

	d, _ := c.State().Domain("opacity")
	hi := 1.0
	require.Equal(t, &hi, d.Max)
}

func TestComponent_RegistrationChangeRefreshes(t *testing.T) {
	backend := newFakeBackend()
	source := &plainProxy{label: "source"}
	c := Build(opacityField).New(Binding{Source: source, Backend: backend})
	c.Mount()

	v, _ := Value[float64](c.State(), "opacity")
	require.Equal(t, 1.0, v)

	view := &plainProxy{label: "view"}
	rep := &opacityProxy{
		label:   "rep",
		opacity: 0.3,
		ui:      []descriptor.Node{leaf("opacity", 0, 1, descriptor.Any())},
	}
	backend.addView(view)
	backend.setRep(source, view, rep)
	backend.emit()

	v, _ = Value[float64](c.State(), "opacity")
	require.Equal(t, 0.3, v)
	_, ok := c.State().Domain("opacity")
	require.True(t, ok)
}

func TestComponent_TeardownSymmetry(t *testing.T) {
	backend := newFakeBackend()
	def := Build(opacityField, nameField)
	k := len(def.Fields())

	c := def.New(Binding{Source: &plainProxy{}, Backend: backend})
	require.Equal(t, k+1, c.Subscriptions())
	require.Equal(t, k, c.State().WatcherCount())
	require.Equal(t, 1, backend.subscribed)

	// The registry listener was registered last, so it goes first while
	// every field watcher is still in place.
	watchersAtRelease := -1
	backend.onRelease = func() { watchersAtRelease = c.State().WatcherCount() }

	c.Destroy()

	require.Equal(t, k, watchersAtRelease)
	require.Equal(t, 0, c.Subscriptions())
	require.Equal(t, 0, c.State().WatcherCount())
	require.Equal(t, 1, backend.released)
	require.Equal(t, 0, backend.active())

	require.NotPanics(t, c.Destroy)
	require.Equal(t, 1, backend.released)
}

func TestComponent_DestroyedIgnoresEvents(t *testing.T) {
	backend := newFakeBackend()
	source := &plainProxy{}
	c := Build(opacityField).New(Binding{Source: source, Backend: backend})
	c.Destroy()

	view := &opacityProxy{opacity: 0.1}
	backend.addView(view)
	backend.emit()

	v, _ := Value[float64](c.State(), "opacity")
	require.Equal(t, 1.0, v)
}

func TestComponent_InstancesAreIndependent(t *testing.T) {
	def := Build(opacityField)
	a := &opacityProxy{label: "a", opacity: 0.2}
	b := &opacityProxy{label: "b", opacity: 0.9}

	ca := def.New(Binding{Source: a, Backend: newFakeBackend()})
	cb := def.New(Binding{Source: b, Backend: newFakeBackend()})
	ca.Mount()
	cb.Mount()

	require.NoError(t, ca.Set("opacity", 0.6))
	require.Equal(t, 0.6, a.opacity)
	require.Equal(t, 0.9, b.opacity)

	vb, _ := Value[float64](cb.State(), "opacity")
	require.Equal(t, 0.9, vb)
}

func TestComponent_NilBackend(t *testing.T) {
	source := &opacityProxy{opacity: 0.4}
	c := Build(opacityField).New(Binding{Source: source})
	c.Mount()

	v, _ := Value[float64](c.State(), "opacity")
	require.Equal(t, 0.4, v)
	require.Equal(t, 2, c.Subscriptions())
	c.Destroy()
}

func TestComponent_TargetCacheInvalidatedOnEveryEvent(t *testing.T) {
	backend := newFakeBackend()
	source := &plainProxy{}
	c := Build(opacityField).New(
		Binding{Source: source, Backend: backend},
		WithTargetCache(NewInMemoryTargetCache()),
	)
	c.Mount()
	c.OnFieldChanged("opacity", 0.4)

	calls := backend.viewCalls
	c.OnFieldChanged("opacity", 0.5)
	c.OnFieldChanged("opacity", 0.6)
	require.Equal(t, calls, backend.viewCalls, "cached targets should not hit the backend")

	view := &opacityProxy{label: "view", opacity: 0.8}
	backend.addView(view)
	backend.emit()

	v, _ := Value[float64](c.State(), "opacity")
	require.Equal(t, 0.8, v)

	c.OnFieldChanged("opacity", 0.1)
	require.Equal(t, 0.1, view.opacity)
}

func TestComponent_TracerRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	source := &opacityProxy{opacity: 0.5}
	c := Build(opacityField).New(
		Binding{Source: source, Backend: newFakeBackend()},
		WithTracer(provider.Tracer("test")),
	)
	c.Mount()
	c.OnFieldChanged("opacity", 0.2)

	names := make([]string, 0)
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	require.Contains(t, names, "fieldsync.domains")
	require.Contains(t, names, "fieldsync.pull")
	require.Contains(t, names, "fieldsync.push")
}

func TestBuild_PanicsOnDuplicateName(t *testing.T) {
	require.Panics(t, func() { Build(opacityField, opacityField) })
	require.Panics(t, func() { Build(Field[int]{}) })
}

func TestDefinition_Fields(t *testing.T) {
	def := Build(nameField, opacityField)
	require.Equal(t, []string{"name", "opacity"}, def.Fields())

	f, ok := def.Field("opacity")
	require.True(t, ok)
	require.Equal(t, 1.0, f.InitialValue())

	_, ok = def.Field("missing")
	require.False(t, ok)
}

func TestState_WatchUnknownField(t *testing.T) {
	s := newState([]FieldDescriptor{opacityField})
	release := s.Watch("missing", func(_, _ any) {})
	release()
	require.Equal(t, 0, s.WatcherCount())
	require.True(t, errors.Is(s.Set("missing", 1.0), ErrUnknownField))
}

func TestState_WatcherReleasedDuringNotify(t *testing.T) {
	s := newState([]FieldDescriptor{opacityField})
	var second func()
	fired := 0
	first := s.Watch("opacity", func(_, _ any) {
		fired++
		second()
	})
	defer first()
	second = s.Watch("opacity", func(_, _ any) { fired++ })

	require.NoError(t, s.Set("opacity", 0.5))
	require.Equal(t, 1, fired)
}
