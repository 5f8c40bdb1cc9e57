package layoutview_test

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vizsync/internal/layout"
	"github.com/zjrosen/vizsync/internal/testutil"
	"github.com/zjrosen/vizsync/internal/ui/layoutview"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newModel(t *testing.T) (layoutview.Model, *layout.Manager) {
	t.Helper()
	registry := testutil.NewBuilder(t).WithStandardScene().Build()
	manager, err := layout.NewManager(registry, nil)
	require.NoError(t, err)
	require.NoError(t, manager.Mount())
	return layoutview.New(manager, registry), manager
}

func TestModel_SinglePane(t *testing.T) {
	m, _ := newModel(t)

	out := ansi.Strip(m.View(60, 10))
	require.Contains(t, out, "3D")
	require.Contains(t, out, "cube")
	require.Contains(t, out, "Surface 1.00")
	require.Contains(t, out, "sphere")
}

func TestModel_FourPanes(t *testing.T) {
	m, manager := newModel(t)

	m, err := m.SetCount(4)
	require.NoError(t, err)
	require.Equal(t, 4, manager.Count())

	out := ansi.Strip(m.View(80, 20))
	for _, label := range []string{"3D", "Z:XY", "X:ZY", "Y:XZ"} {
		require.Contains(t, out, label)
	}
	require.Contains(t, out, "slice 2")
}

func TestModel_SetCountRejectsOutOfRange(t *testing.T) {
	m, manager := newModel(t)

	_, err := m.SetCount(5)
	require.ErrorIs(t, err, layout.ErrInvalidLayout)
	require.Equal(t, 1, manager.Count())
}

func TestModel_FocusWraps(t *testing.T) {
	m, _ := newModel(t)
	m, err := m.SetCount(2)
	require.NoError(t, err)

	m = m.FocusNext()
	require.Equal(t, 1, m.Focused())
	m = m.FocusNext()
	require.Equal(t, 0, m.Focused())
}

func TestModel_SwapFocused(t *testing.T) {
	m, manager := newModel(t)

	_, err := m.SwapFocused()
	require.NoError(t, err)
	require.Equal(t, []string{"View2D_Z", "View3D", "View2D_X", "View2D_Y"}, manager.Order())

	v, ok := m.FocusedView()
	require.True(t, ok)
	require.Equal(t, "View2D_Z", v.Type())
}

func TestModel_Resize(t *testing.T) {
	m, _ := newModel(t)
	m, err := m.SetCount(2)
	require.NoError(t, err)

	m.Resize(80, 20)
	v, _ := m.FocusedView()
	w, h := v.Size()
	require.Equal(t, 38, w)
	require.Equal(t, 18, h)
}

func TestModel_View_Golden(t *testing.T) {
	m, _ := newModel(t)

	teatest.RequireEqualOutput(t, []byte(m.View(40, 6)))
}
