package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vizsync/internal/fieldsync"
	"github.com/zjrosen/vizsync/internal/scene"
)

func TestDefaultPanels_SyncWithScene(t *testing.T) {
	_, registry := newTestStore(t)
	v3d, _ := registry.AddView("View3D")
	vz, _ := registry.AddView("View2D_Z")
	src, _ := registry.AddSource("cube", "", scene.Dataset{Dimensions: [3]int{8, 8, 8}})

	components := make(map[string]*fieldsync.Component)
	for _, p := range DefaultPanels() {
		c := p.Definition.New(registry.Binding(src))
		c.Mount()
		defer c.Destroy()
		components[p.Name] = c
	}

	name, _ := fieldsync.Value[string](components["Information"].State(), "name")
	require.Equal(t, "cube", name)

	slice, _ := fieldsync.Value[int](components["Slice"].State(), "sliceIndex")
	require.Equal(t, 4, slice)

	require.NoError(t, components["Representation"].Set("pointSize", 3))
	require.Equal(t, 3, registry.Representation(src, v3d).(*scene.Geometry).PointSize())

	require.NoError(t, components["View"].Set("background", "#ffffff"))
	require.Equal(t, "#ffffff", v3d.Background())
	require.Equal(t, "#ffffff", vz.Background())

	require.NoError(t, components["Information"].Set("name", "renamed"))
	require.Equal(t, "renamed", src.Name())
}

func TestDefaultPanels_UniquePriorities(t *testing.T) {
	seen := make(map[int]bool)
	for _, p := range DefaultPanels() {
		require.False(t, seen[p.Priority], p.Name)
		seen[p.Priority] = true
		require.NotEmpty(t, p.Definition.Fields())
	}
}
