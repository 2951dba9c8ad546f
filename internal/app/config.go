package app

import "github.com/cockroachdb/errors"

// Config holds everything an App instance needs to run.
type Config struct {
	ProjectPath    string // settings file or directory (.hcl, .toml, .yaml)
	TechniquesPath string // directory of technique manifests (.hcl)
	RootDir        string // project root for data sources and results

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates a Config and fills derived defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	if cfg.TechniquesPath == "" {
		cfg.TechniquesPath = "techniques"
	}
	if cfg.RootDir == "" {
		cfg.RootDir = "."
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	return &cfg, nil
}
