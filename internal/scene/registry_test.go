package scene

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vizsync/internal/pubsub"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	defs, err := DefaultDefinitions()
	require.NoError(t, err)
	r := NewRegistry(defs)
	t.Cleanup(r.Close)
	return r
}

var cube = Dataset{Dimensions: [3]int{10, 20, 30}, Arrays: []string{"density", "temperature"}}

func TestRegistry_AddSourceCreatesRepresentations(t *testing.T) {
	r := newTestRegistry(t)
	v3d, err := r.AddView("View3D")
	require.NoError(t, err)
	vz, err := r.AddView("View2D_Z")
	require.NoError(t, err)

	src, err := r.AddSource("cube", "", cube)
	require.NoError(t, err)
	require.Equal(t, DefaultSourceKind, src.Kind())

	geo := r.Representation(src, v3d)
	require.IsType(t, &Geometry{}, geo)
	slice := r.Representation(src, vz)
	require.IsType(t, &Slice{}, slice)
	require.Equal(t, 15, slice.(*Slice).SliceIndex())

	require.Len(t, r.RepresentationsOf(src), 2)
}

func TestRegistry_AddViewCreatesRepresentations(t *testing.T) {
	r := newTestRegistry(t)
	a, _ := r.AddSource("a", "", cube)
	b, _ := r.AddSource("b", "", cube)

	view, err := r.AddView("View3D")
	require.NoError(t, err)

	require.NotNil(t, r.Representation(a, view))
	require.NotNil(t, r.Representation(b, view))
	require.Len(t, r.Representations(), 2)
}

func TestRegistry_UnknownKinds(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.AddView("View4D")
	require.ErrorIs(t, err, ErrUnknownViewType)

	_, err = r.AddSource("x", "Nope", cube)
	require.ErrorIs(t, err, ErrUnknownSourceKind)
}

func TestRegistry_ViewReusesExisting(t *testing.T) {
	r := newTestRegistry(t)
	first, err := r.View("View3D")
	require.NoError(t, err)
	second, err := r.View("View3D")
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Len(t, r.Views(), 1)
}

func TestRegistry_ViewConcurrentCallersShareOneView(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.AddSource("cube", "TrivialProducer", cube)
	require.NoError(t, err)

	const callers = 16
	views := make([]*View, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := r.View("View2D_Z")
			assert.NoError(t, err)
			views[i] = v
		}()
	}
	wg.Wait()

	require.Len(t, r.Views(), 1)
	require.Len(t, r.Representations(), 1)
	for _, v := range views {
		require.Same(t, views[0], v)
	}
}

func TestRegistry_DeleteSourceRemovesRepresentationsFirst(t *testing.T) {
	r := newTestRegistry(t)
	view, _ := r.AddView("View3D")
	src, _ := r.AddSource("cube", "", cube)
	rep := r.Representation(src, view)

	var events []RegistrationEvent
	sub := r.OnRegistrationChange(func(e RegistrationEvent) { events = append(events, e) })
	defer sub.Unsubscribe()

	require.NoError(t, r.DeleteProxy(src))

	require.Equal(t, []RegistrationEvent{
		{Action: pubsub.UnregisteredEvent, Group: GroupRepresentations, ProxyID: rep.ID()},
		{Action: pubsub.UnregisteredEvent, Group: GroupSources, ProxyID: src.ID()},
	}, events)
	require.Empty(t, r.Sources())
	require.Empty(t, r.Representations())
	require.Nil(t, r.Representation(src, view))

	require.ErrorIs(t, r.DeleteProxy(src), ErrUnknownProxy)
}

func TestRegistry_DeleteViewAndRepresentation(t *testing.T) {
	r := newTestRegistry(t)
	v3d, _ := r.AddView("View3D")
	vx, _ := r.AddView("View2D_X")
	src, _ := r.AddSource("cube", "", cube)

	require.NoError(t, r.DeleteProxy(vx))
	require.Len(t, r.Views(), 1)
	require.Len(t, r.Representations(), 1)

	rep := r.Representation(src, v3d)
	require.NoError(t, r.DeleteProxy(rep))
	require.Empty(t, r.Representations())
	require.ErrorIs(t, r.DeleteProxy(rep), ErrUnknownProxy)
}

func TestRegistry_ProxyLookup(t *testing.T) {
	r := newTestRegistry(t)
	view, _ := r.AddView("View3D")
	src, _ := r.AddSource("cube", "", cube)
	rep := r.Representation(src, view)

	for _, p := range []Proxy{view, src, rep} {
		got, ok := r.Proxy(p.ID())
		require.True(t, ok)
		require.Equal(t, p, got)
	}
	_, ok := r.Proxy("missing")
	require.False(t, ok)
}

func TestRegistry_CallbacksMayQueryRegistry(t *testing.T) {
	r := newTestRegistry(t)
	var seen []int
	sub := r.OnRegistrationChange(func(RegistrationEvent) {
		seen = append(seen, len(r.Views()))
	})

	_, err := r.AddView("View3D")
	require.NoError(t, err)
	sub.Unsubscribe()
	sub.Unsubscribe()
	_, err = r.AddView("View2D_X")
	require.NoError(t, err)

	require.Equal(t, []int{1}, seen)
}

func TestRegistry_BrokerPublishes(t *testing.T) {
	r := newTestRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := r.Broker().Subscribe(ctx)

	view, _ := r.AddView("View3D")

	select {
	case e := <-ch:
		require.Equal(t, pubsub.RegisteredEvent, e.Type)
		require.Equal(t, view.ID(), e.Payload.ProxyID)
		require.Equal(t, GroupViews, e.Payload.Group)
	case <-time.After(time.Second):
		t.Fatal("no registration event")
	}
}

func TestRegistry_ViewActions(t *testing.T) {
	r := newTestRegistry(t)
	a, _ := r.AddView("View3D")
	b, _ := r.AddView("View2D_Y")

	r.RenderAllViews()
	r.RenderAllViews()
	r.ResetCameraInAllViews()
	r.ResizeAllViews(80, 24)

	for _, v := range []*View{a, b} {
		require.Equal(t, 2, v.Renders())
		require.Equal(t, 1, v.CameraResets())
		w, h := v.Size()
		require.Equal(t, 80, w)
		require.Equal(t, 24, h)
	}
}

func TestSlice_UIBoundsSliceIndexByExtent(t *testing.T) {
	r := newTestRegistry(t)
	vy, _ := r.AddView("View2D_Y")
	src, _ := r.AddSource("cube", "", cube)

	rep := r.Representation(src, vy)
	d, found := extractAll(rep.UI())["sliceIndex"]
	require.True(t, found)
	require.Equal(t, 19.0, *d.Max)
	require.True(t, d.Integer)
}
