package scene

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestState_SaveLoadRoundTrip(t *testing.T) {
	r := newTestRegistry(t)
	v3d, _ := r.AddView("View3D")
	vz, _ := r.AddView("View2D_Z")
	v3d.SetBackground("#202020")
	v3d.SetParallelProjection(true)
	src, _ := r.AddSource("cube", "", cube)
	geo := r.Representation(src, v3d).(*Geometry)
	geo.SetOpacity(0.3)
	geo.SetPointSize(4)
	geo.SetMode("Wireframe")
	geo.SetColorBy("density")
	r.Representation(src, vz).(*Slice).SetSliceIndex(7)

	doc := r.SaveState(map[string]any{"route": "app"})
	data, err := doc.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalState(data)
	require.NoError(t, err)

	restored := newTestRegistry(t)
	existing, _ := restored.AddView("View3D")
	userData, err := restored.LoadState(decoded)
	require.NoError(t, err)
	require.Equal(t, "app", userData["route"])

	require.Len(t, restored.Views(), 2, "views are recycled by type")
	require.Same(t, existing, restored.Views()[0])
	require.Equal(t, "#202020", existing.Background())
	require.True(t, existing.ParallelProjection())

	sources := restored.Sources()
	require.Len(t, sources, 1)
	require.Equal(t, "cube", sources[0].Name())
	require.NotEqual(t, src.ID(), sources[0].ID())
	require.Equal(t, cube, sources[0].Dataset())

	rgeo := restored.Representation(sources[0], existing).(*Geometry)
	require.Equal(t, 0.3, rgeo.Opacity())
	require.Equal(t, 4, rgeo.PointSize())
	require.Equal(t, "Wireframe", rgeo.Mode())
	require.Equal(t, "density", rgeo.ColorBy())

	rz, _ := restored.View("View2D_Z")
	require.Equal(t, 7, restored.Representation(sources[0], rz).(*Slice).SliceIndex())
}

func TestState_UnsupportedVersion(t *testing.T) {
	_, err := UnmarshalState([]byte(`{"version": 99}`))
	require.ErrorIs(t, err, ErrUnsupportedState)

	r := newTestRegistry(t)
	_, err = r.LoadState(StateDocument{Version: 0})
	require.ErrorIs(t, err, ErrUnsupportedState)

	_, err = UnmarshalState([]byte(`not json`))
	require.Error(t, err)
}

func TestState_LoadSkipsDanglingRepresentations(t *testing.T) {
	r := newTestRegistry(t)
	doc := StateDocument{
		Version: StateVersion,
		Representations: []RepresentationState{
			{Source: "gone", View: "gone", Opacity: 0.1},
		},
	}

	_, err := r.LoadState(doc)
	require.NoError(t, err)
	require.Empty(t, r.Representations())
}
