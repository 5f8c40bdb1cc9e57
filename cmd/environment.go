package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/zjrosen/vizsync/internal/config"
	"github.com/zjrosen/vizsync/internal/flags"
	"github.com/zjrosen/vizsync/internal/infrastructure/sqlite"
	"github.com/zjrosen/vizsync/internal/layout"
	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/scene"
	"github.com/zjrosen/vizsync/internal/tracing"
	"github.com/zjrosen/vizsync/internal/workspace"
)

// ErrPersistenceDisabled is returned by state commands when saved states are
// kept in memory only.
var ErrPersistenceDisabled = errors.New("state persistence is disabled")

// environment is everything built from the configuration before the UI starts.
type environment struct {
	registry *scene.Registry
	store    *workspace.Store
	layout   *layout.Manager
	flags    *flags.Registry
	db       *sqlite.DB // nil when state persistence is off
	tracing  *tracing.Provider
}

func newEnvironment(cfg config.Config) (env *environment, err error) {
	env = &environment{flags: flags.New(cfg.Flags)}
	defer func() {
		if err != nil {
			err = multierr.Append(err, env.Close())
			env = nil
		}
	}()

	defs, err := loadDefinitions(cfg.Scene)
	if err != nil {
		return env, err
	}
	env.registry = scene.NewRegistry(defs)
	for _, viewType := range cfg.Scene.Views {
		if _, err := env.registry.View(viewType); err != nil {
			return env, fmt.Errorf("scene.views: %w", err)
		}
	}

	lc := cfg.GetLayout()
	env.layout, err = layout.NewManager(env.registry, lc.Order)
	if err != nil {
		return env, fmt.Errorf("layout: %w", err)
	}
	if err := env.layout.UpdateViews(max(lc.Count, 1)); err != nil {
		return env, fmt.Errorf("layout: %w", err)
	}

	env.tracing, err = tracing.NewProvider(tracingConfig(cfg.Tracing))
	if err != nil {
		return env, fmt.Errorf("tracing: %w", err)
	}

	repo, err := env.openRepository(cfg)
	if err != nil {
		return env, err
	}
	env.store = workspace.NewStore(env.registry, repo, workspace.WithTracer(env.tracing.Tracer()))
	return env, nil
}

// openRepository uses SQLite unless the state-persistence flag is off.
func (e *environment) openRepository(cfg config.Config) (workspace.StateRepository, error) {
	if !e.flags.Enabled(flags.FlagStatePersistence) || cfg.StateDB == "" {
		log.Info(log.CatState, "Saved states kept in memory")
		return workspace.NewMemoryRepository(), nil
	}
	db, err := sqlite.NewDB(cfg.StateDB)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	e.db = db
	return db.StateRepository(), nil
}

// Close shuts down tracing, the database and the registry.
func (e *environment) Close() error {
	var err error
	if e.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = multierr.Append(err, e.tracing.Shutdown(ctx))
		cancel()
	}
	if e.db != nil {
		err = multierr.Append(err, e.db.Close())
	}
	if e.registry != nil {
		e.registry.Close()
	}
	return err
}

func loadDefinitions(sc config.SceneConfig) (*scene.Definitions, error) {
	if sc.Definitions == "" {
		return scene.DefaultDefinitions()
	}
	path := filepath.Clean(sc.Definitions)
	defs, err := scene.LoadDefinitions(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("scene.definitions: %w", err)
	}
	return defs, nil
}

func tracingConfig(tc config.TracingConfig) tracing.Config {
	out := tracing.Config{
		Enabled:      tc.Enabled,
		Exporter:     tc.Exporter,
		FilePath:     tc.FilePath,
		OTLPEndpoint: tc.OTLPEndpoint,
		SampleRate:   tc.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	}
	if out.FilePath == "" {
		out.FilePath = config.DefaultTracesFilePath()
	}
	return out
}

// addDatasetFile reads a JSON dataset descriptor and adds it as a source named
// after the file.
func addDatasetFile(registry *scene.Registry, path string) (*scene.Source, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	var dataset scene.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	for i, d := range dataset.Dimensions {
		if d <= 0 {
			return nil, fmt.Errorf("dataset %s: dimension %d must be positive, got %d", path, i, d)
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	src, err := registry.AddSource(name, "", dataset)
	if err != nil {
		return nil, fmt.Errorf("adding dataset %s: %w", name, err)
	}
	log.Info(log.CatScene, "Dataset added", "name", name, "path", path)
	return src, nil
}
