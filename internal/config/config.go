// Package config provides configuration types and defaults for vizsync.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/vizsync/internal/log"
)

// DefaultLayoutOrder is the view type order used when none is configured.
var DefaultLayoutOrder = []string{"View3D", "View2D_Z", "View2D_X", "View2D_Y"}

// Config holds all configuration options for vizsync.
type Config struct {
	// StateDB is the SQLite database holding saved workspace states.
	// Default: ~/.config/vizsync/states.db
	StateDB string `mapstructure:"state_db"`

	// AutoRefresh reloads the saved state list when the database changes on disk.
	AutoRefresh bool `mapstructure:"auto_refresh"`

	UI      UIConfig        `mapstructure:"ui"`
	Layout  LayoutConfig    `mapstructure:"layout"`
	Scene   SceneConfig     `mapstructure:"scene"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowDomains   bool `mapstructure:"show_domains"`
	ShowStatusBar bool `mapstructure:"show_status_bar"`
}

// LayoutConfig controls which views are shown and in what order.
type LayoutConfig struct {
	// Order lists view types. The first Count entries are visible.
	Order []string `mapstructure:"order"`

	// Count is the number of visible views (1 to len(Order)).
	Count int `mapstructure:"count"`
}

// SceneConfig holds proxy definition settings.
type SceneConfig struct {
	// Definitions is an optional YAML file replacing the built-in proxy definitions.
	Definitions string `mapstructure:"definitions"`

	// Views lists view types created at startup in addition to the layout.
	Views []string `mapstructure:"views"`
}

// TracingConfig holds distributed tracing configuration for field synchronization.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/vizsync/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/vizsync/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vizsync", "traces", "traces.jsonl")
}

// DefaultStateDBPath returns the default saved state database path.
// Returns ~/.config/vizsync/states.db or empty string if home dir unavailable.
func DefaultStateDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vizsync", "states.db")
}

// DefaultLayout returns the default layout: all four views with only the 3D view visible.
func DefaultLayout() LayoutConfig {
	order := make([]string, len(DefaultLayoutOrder))
	copy(order, DefaultLayoutOrder)
	return LayoutConfig{Order: order, Count: 1}
}

// ValidateLayout checks layout configuration for errors.
// Returns nil if the layout is valid or empty (will use defaults).
func ValidateLayout(layout LayoutConfig) error {
	if len(layout.Order) == 0 {
		if layout.Count != 0 {
			return fmt.Errorf("layout.count requires layout.order")
		}
		return nil
	}

	seen := make(map[string]bool, len(layout.Order))
	for i, t := range layout.Order {
		if t == "" {
			return fmt.Errorf("layout.order[%d]: view type is required", i)
		}
		if seen[t] {
			return fmt.Errorf("layout.order[%d]: duplicate view type %q", i, t)
		}
		seen[t] = true
	}

	if layout.Count < 1 || layout.Count > len(layout.Order) {
		return fmt.Errorf("layout.count must be between 1 and %d, got %d", len(layout.Order), layout.Count)
	}
	return nil
}

// ValidateScene checks scene configuration for errors.
func ValidateScene(scene SceneConfig) error {
	for i, t := range scene.Views {
		if t == "" {
			return fmt.Errorf("scene.views[%d]: view type is required", i)
		}
	}
	if scene.Definitions != "" {
		info, err := os.Stat(scene.Definitions)
		if err != nil {
			return fmt.Errorf("scene.definitions: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("scene.definitions must be a file, got directory %q", scene.Definitions)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate runs every section validator.
func (c Config) Validate() error {
	if err := ValidateLayout(c.Layout); err != nil {
		return err
	}
	if err := ValidateScene(c.Scene); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// GetLayout returns the configured layout, or DefaultLayout() if none configured.
func (c Config) GetLayout() LayoutConfig {
	if len(c.Layout.Order) == 0 {
		return DefaultLayout()
	}
	return c.Layout
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		StateDB:     DefaultStateDBPath(),
		AutoRefresh: true,
		UI: UIConfig{
			ShowDomains:   true,
			ShowStatusBar: true,
		},
		Layout: DefaultLayout(),
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# vizsync Configuration

# Saved workspace states (default: ~/.config/vizsync/states.db)
# state_db: /path/to/states.db

# Reload the saved state list when the database changes
auto_refresh: true

# UI settings
ui:
  show_domains: true      # Show slider domains next to numeric fields
  show_status_bar: true   # Show status bar at bottom

# View layout
# The first 'count' view types of 'order' are visible. Press 1, 2 or 4 to change the count.
layout:
  order: [View3D, View2D_Z, View2D_X, View2D_Y]
  count: 1

# Scene settings
# scene:
#   # Replace the built-in proxy definitions (see 'vizsync proxies')
#   definitions: /path/to/proxies.yaml
#   # Extra view types created at startup
#   views: [View2D_Z]

# Feature flags
# flags:
#   target-cache: true        # Memoize sync targets until the scene changes
#   strict-domains: true      # Reject conflicting slider domains instead of last-wins
#   state-persistence: true   # Store saved states in SQLite (default: true)

# Distributed tracing of field pushes, pulls and domain refreshes
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/vizsync/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
