package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadLayout(t *testing.T, configPath string) LayoutConfig {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var layout LayoutConfig
	require.NoError(t, v.UnmarshalKey("layout", &layout))
	return layout
}

func TestSaveLayout_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".vizsync.yaml")

	err := SaveLayout(configPath, LayoutConfig{Order: []string{"View3D", "View2D_X"}, Count: 2})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "order: [View3D, View2D_X]")
	assert.Contains(t, string(data), "count: 2")
}

func TestSaveLayout_Roundtrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".vizsync.yaml")
	want := LayoutConfig{Order: []string{"View2D_Z", "View3D", "View2D_X", "View2D_Y"}, Count: 4}

	require.NoError(t, SaveLayout(configPath, want))
	require.Equal(t, want, loadLayout(t, configPath))
}

func TestSaveLayout_PreservesOtherConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".vizsync.yaml")

	initial := `# top comment
auto_refresh: false
ui:
  show_domains: false # keep me
layout:
  order: [View3D]
  count: 1
flags:
  target-cache: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o644))

	require.NoError(t, SaveLayout(configPath, LayoutConfig{Order: []string{"View3D", "View2D_Y"}, Count: 2}))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# top comment")
	assert.Contains(t, content, "# keep me")
	assert.Contains(t, content, "auto_refresh: false")
	assert.Contains(t, content, "target-cache: true")

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	require.False(t, v.GetBool("auto_refresh"))
	require.False(t, v.GetBool("ui.show_domains"))
	require.Equal(t, []string{"View3D", "View2D_Y"}, v.GetStringSlice("layout.order"))
	require.Equal(t, 2, v.GetInt("layout.count"))
}

func TestSaveLayout_AppendsMissingSection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".vizsync.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("auto_refresh: true\n"), 0o644))

	require.NoError(t, SaveLayout(configPath, LayoutConfig{Order: []string{"View2D_Z"}, Count: 1}))

	layout := loadLayout(t, configPath)
	require.Equal(t, []string{"View2D_Z"}, layout.Order)
	require.Equal(t, 1, layout.Count)
}

func TestSaveLayout_RejectsInvalidLayout(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".vizsync.yaml")

	err := SaveLayout(configPath, LayoutConfig{Order: []string{"View3D"}, Count: 3})
	require.Error(t, err)

	_, statErr := os.Stat(configPath)
	require.True(t, os.IsNotExist(statErr), "invalid layout must not create the file")
}

func TestSaveLayout_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".vizsync.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("layout: [unclosed\n"), 0o644))

	err := SaveLayout(configPath, DefaultLayout())
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing config")
}

func TestSaveLayout_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".vizsync.yaml")

	require.NoError(t, SaveLayout(configPath, DefaultLayout()))
	require.NoError(t, SaveLayout(configPath, LayoutConfig{Order: []string{"View3D", "View2D_Z"}, Count: 2}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, ".vizsync.yaml", entries[0].Name())
}
