package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/simmering/ladle/internal/ctxlog"
	"github.com/simmering/ladle/internal/hcl"
	"github.com/simmering/ladle/internal/idea"
	"github.com/simmering/ladle/internal/registry"
	"github.com/simmering/ladle/internal/toml"
	"github.com/simmering/ladle/internal/yaml"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *idea.Model
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry.
// Settings or manifest problems are fatal startup errors and panic.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loadModel(ctx, cfg)
	if err != nil {
		panic(fmt.Errorf("failed to load settings: %w", err))
	}
	logger.Debug("Settings loaded and translated into unified model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All technique modules registered.", "count", len(modules))

	reg.PopulateDefinitionsFromModel(model)
	if err := reg.Validate(ctx); err != nil {
		// A mismatch between manifests and Go handlers is a packaging bug.
		panic(err)
	}
	logger.Debug("Registry validation passed.", "techniques", model.TechniqueKeys())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded settings model. This is primarily for testing.
func (a *App) Model() *idea.Model {
	return a.model
}

// loadModel reads the project settings through the loader matching the file
// extension, merges in the HCL technique manifests, and finalizes the model.
func loadModel(ctx context.Context, cfg *Config) (*idea.Model, error) {
	loader := loaderFor(cfg.ProjectPath)
	model, err := loader.Load(ctx, cfg.ProjectPath)
	if err != nil {
		return nil, err
	}

	manifests, err := hcl.NewLoader().Load(ctx, cfg.TechniquesPath)
	if err != nil {
		return nil, err
	}
	if err := model.Merge(manifests); err != nil {
		return nil, err
	}

	if err := model.Finalize(); err != nil {
		return nil, err
	}
	return model, nil
}

// loaderFor picks the settings front end by extension. Directories and
// unknown extensions fall back to HCL, the primary format.
func loaderFor(path string) idea.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.NewLoader()
	case ".yaml", ".yml":
		return yaml.NewLoader()
	default:
		return hcl.NewLoader()
	}
}
