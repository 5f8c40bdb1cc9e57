package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/vizsync/internal/scene"
)

func newTestManager(t *testing.T) (*Manager, *scene.Registry) {
	t.Helper()
	defs, err := scene.DefaultDefinitions()
	require.NoError(t, err)
	registry := scene.NewRegistry(defs)
	t.Cleanup(registry.Close)

	m, err := NewManager(registry, nil)
	require.NoError(t, err)
	return m, registry
}

func types(views []*scene.View) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Type()
	}
	return out
}

func TestManager_MountShowsOneView(t *testing.T) {
	m, registry := newTestManager(t)

	require.NoError(t, m.Mount())
	require.Equal(t, []string{"View3D"}, types(m.Views()))
	require.Len(t, registry.Views(), 1)

	require.NoError(t, m.Mount())
	require.Equal(t, 1, m.Count())
}

func TestManager_SwapOnNewType(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.Update(Change{Index: 0, Count: 2, NewType: "View2D_X"}))

	require.Equal(t, []string{"View2D_X", "View2D_Z", "View3D", "View2D_Y"}, m.Order())
	require.Equal(t, []string{"View2D_X", "View2D_Z"}, types(m.Views()))
}

func TestManager_ShrinkPromotesPane(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.UpdateViews(4))

	require.NoError(t, m.Update(Change{Index: 2, Count: 1}))

	require.Equal(t, []string{"View2D_X", "View2D_Z", "View3D", "View2D_Y"}, m.Order())
	require.Equal(t, []string{"View2D_X"}, types(m.Views()))
}

func TestManager_SplitFromFirstPaneMovesItSecond(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Mount())

	require.NoError(t, m.Update(Change{Index: 0, Count: 2}))

	require.Equal(t, []string{"View2D_Z", "View3D", "View2D_X", "View2D_Y"}, m.Order())
}

func TestManager_Grid(t *testing.T) {
	m, _ := newTestManager(t)
	tests := []struct {
		count      int
		rows, cols string
	}{
		{1, "1fr", "1fr"},
		{2, "1fr", "1fr 1fr"},
		{3, "1fr", "1fr 1fr"},
		{4, "1fr 1fr", "1fr 1fr"},
	}
	for _, tt := range tests {
		require.NoError(t, m.UpdateViews(tt.count))
		require.Equal(t, tt.rows, m.GridRows(), "count %d", tt.count)
		require.Equal(t, tt.cols, m.GridColumns(), "count %d", tt.count)
	}
	rows, cols := m.Grid()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)
}

func TestManager_InvalidChanges(t *testing.T) {
	m, _ := newTestManager(t)

	require.ErrorIs(t, m.Update(Change{Index: 9, Count: 1}), ErrInvalidLayout)
	require.ErrorIs(t, m.Update(Change{Index: 0, Count: 1, NewType: "View4D"}), ErrInvalidLayout)
	require.ErrorIs(t, m.UpdateViews(0), ErrInvalidLayout)
	require.ErrorIs(t, m.UpdateViews(5), ErrInvalidLayout)

	_, err := NewManager(nil, []string{"View3D", "View3D"})
	require.ErrorIs(t, err, ErrInvalidLayout)
}

func TestManager_Restore(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Mount())

	require.NoError(t, m.Restore([]string{"View2D_X", "View3D", "View2D_Y", "View2D_Z"}, 2))
	require.Equal(t, []string{"View2D_X", "View3D"}, types(m.Views()))
	require.Equal(t, []string{"View2D_X", "View3D", "View2D_Y", "View2D_Z"}, m.Order())
}

func TestManager_RestoreRejectsForeignOrder(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Mount())

	err := m.Restore([]string{"View3D", "View2D_Z"}, 1)
	require.ErrorIs(t, err, ErrInvalidLayout)

	err = m.Restore([]string{"View3D", "View2D_Z", "View2D_X", "Volume"}, 1)
	require.ErrorIs(t, err, ErrInvalidLayout)

	err = m.Restore([]string{"View2D_Z", "View3D", "View2D_X", "View2D_Y"}, 9)
	require.ErrorIs(t, err, ErrInvalidLayout)
	require.Equal(t, DefaultOrder, m.Order(), "failed restore keeps the previous order")
	require.Equal(t, []string{"View3D"}, types(m.Views()))
}

func TestManager_UnknownViewTypeInOrder(t *testing.T) {
	_, registry := newTestManager(t)
	m, err := NewManager(registry, []string{"Custom"})
	require.NoError(t, err)

	require.ErrorIs(t, m.UpdateViews(1), scene.ErrUnknownViewType)
}

func TestSwapOrder_Property_Permutation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		order := DefaultOrder
		index := rapid.IntRange(0, len(order)-1).Draw(t, "index")
		newType := rapid.SampledFrom(order).Draw(t, "newType")

		got, err := swapOrder(order, index, newType)
		if err != nil {
			t.Fatal(err)
		}
		if got[index] != newType {
			t.Fatalf("pane %d is %s, want %s", index, got[index], newType)
		}
		seen := map[string]bool{}
		for _, v := range got {
			seen[v] = true
		}
		if len(seen) != len(order) {
			t.Fatalf("swap lost a view type: %v", got)
		}
	})
}
