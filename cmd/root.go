package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/zjrosen/vizsync/internal/app"
	"github.com/zjrosen/vizsync/internal/config"
	"github.com/zjrosen/vizsync/internal/log"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin so the
	// OSC 11 response does not leak into the input loop.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vizsync [dataset.json...]",
	Short: "A terminal workspace for synchronized visualization settings",
	Long: `vizsync keeps the display settings of datasets in sync across every view
that shows them. Each argument is a JSON dataset descriptor added to the scene:

  {"dimensions": [64, 64, 32], "arrays": ["density", "temperature"]}

Without arguments vizsync opens the list of saved workspace states.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/vizsync/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs to debug.log and enable the log pane (ctrl+x)")
	rootCmd.Flags().String("state-db", "", "saved state database (default: ~/.config/vizsync/states.db)")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"do not reload saved states when the database changes")

	_ = viper.BindPFlag("state_db", rootCmd.Flags().Lookup("state-db"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("state_db", defaults.StateDB)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("ui.show_domains", defaults.UI.ShowDomains)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "vizsync"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path := defaultConfigPath(); path != "" {
				if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
					viper.SetConfigFile(path)
					_ = viper.ReadInConfig()
				}
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vizsync", "config.yaml")
}

// initLogging opens debug.log when --debug or VIZSYNC_DEBUG is set.
func initLogging() (func(), error) {
	if !debugFlag && !log.DebugFromEnv() {
		return func() {}, nil
	}
	cleanup, err := log.InitWithTeaLog("debug.log", "vizsync")
	if err != nil {
		return nil, fmt.Errorf("initializing debug log: %w", err)
	}
	log.Info(log.CatConfig, "vizsync starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	cleanupLog, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanupLog()

	env, err := newEnvironment(cfg)
	if err != nil {
		return err
	}

	for _, path := range args {
		if _, err := addDatasetFile(env.registry, path); err != nil {
			return multierr.Append(err, env.Close())
		}
	}
	if len(args) > 0 {
		env.store.ShowApp()
	}

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	watchPath := ""
	if cfg.AutoRefresh && env.db != nil {
		watchPath = env.db.Path()
	}

	model := app.New(app.Config{
		Store:      env.store,
		Layout:     env.layout,
		Flags:      env.flags,
		UI:         cfg.UI,
		ConfigPath: configPath,
		WatchPath:  watchPath,
		Tracer:     env.tracing.Tracer(),
		Debug:      debugFlag || log.DebugFromEnv(),
	})

	final, err := tea.NewProgram(&model, tea.WithAltScreen()).Run()
	if m, ok := final.(app.Model); ok {
		model = m
	}
	err = multierr.Combine(err, model.Close(), env.Close())
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
