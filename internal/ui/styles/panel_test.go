package styles

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

// TestMain pins the color profile so golden files hold plain text.
func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestRenderPanel_Dimensions(t *testing.T) {
	out := RenderPanel("hello\nworld", "View3D", 20, 5, false, TextPrimaryColor)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5)
	for i, line := range lines {
		require.Equal(t, 20, lipgloss.Width(line), "line %d", i)
	}
	require.Contains(t, lines[0], "View3D")
	require.Contains(t, lines[1], "hello")
	require.Contains(t, lines[2], "world")
}

func TestRenderPanel_ClipsContent(t *testing.T) {
	out := RenderPanel("a\nb\nc\nd", "", 10, 4, true, TextPrimaryColor)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	require.NotContains(t, out, "c", "rows beyond the panel height are clipped")
}

func TestRenderPanel_TruncatesLongTitle(t *testing.T) {
	out := RenderPanel("", "a very long panel title", 12, 3, false, TextPrimaryColor)
	first := strings.Split(out, "\n")[0]

	require.Equal(t, 12, lipgloss.Width(first))
	require.Contains(t, first, "…")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "ab…", truncate("abcdef", 3))
	require.Equal(t, "…", truncate("abc", 1))
}

func TestViewTypeColor(t *testing.T) {
	require.Equal(t, View3DColor, ViewTypeColor("View3D"))
	require.Equal(t, View2DColor, ViewTypeColor("View2D_Z"))
}

// Run with -update to regenerate golden files:
// go test ./internal/ui/styles -update

func TestRenderPanel_Golden(t *testing.T) {
	out := RenderPanel("hello\nworld", "View3D", 20, 5, false, TextPrimaryColor)
	teatest.RequireEqualOutput(t, []byte(out))
}

func TestRenderPanel_Golden_Untitled(t *testing.T) {
	out := RenderPanel("a\nb", "", 10, 4, true, TextPrimaryColor)
	teatest.RequireEqualOutput(t, []byte(out))
}
