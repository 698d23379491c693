// Package config loads and validates the two-tier (global + project) KDL
// configuration for the log-template mining core and the package
// dependency core.
package config

import (
	"os"
	"runtime"

	"github.com/standardbeagle/logram/internal/debug"
)

type Config struct {
	Version           int
	Project           Project
	LogFormat         string
	Parallelism       Parallelism
	Aggregation       Aggregation
	Verifier          Verifier
	CustomFormatsPath string
}

type Project struct {
	Root string
	Name string
}

// Parallelism controls the N-gram Extractor's worker pool.
type Parallelism struct {
	NumThreads int // 0 = serial single-threaded extraction
}

// Aggregation controls which counter-store strategy the Aggregator uses.
type Aggregation struct {
	SingleMap bool // true = partitioned map-reduce, false = shared sharded-map aggregator
}

// Verifier controls the async checksum-verification HTTP client.
type Verifier struct {
	Server         string
	PollTimeoutSec int
}

// Load returns the configuration for the current directory. path is not
// read: the project .logram.kdl in the current directory is used, else
// ~/.logram.kdl, else built-in defaults.
func Load(path string) (*Config, error) {
	return LoadWithRoot(path, "")
}

func LoadWithRoot(path string, rootDir string) (*Config, error) {
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	// Step 1: load the global base config from ~/.logram.kdl (if present).
	homeDir, err := os.UserHomeDir()
	var baseConfig *Config
	if err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			baseConfig = globalCfg
		}
	}

	// Step 2: load the project config from the project directory.
	var projectConfig *Config
	if kdlCfg, err := LoadKDL(searchDir); err == nil && kdlCfg != nil {
		projectConfig = kdlCfg
	} else if err != nil {
		return nil, err
	}

	// Step 3: project overrides global wholesale; there is nothing to merge
	// field-by-field since every field here is a scalar.
	if projectConfig != nil {
		debug.LogConfig("loaded project config from %s", searchDir)
		return projectConfig, nil
	}
	if baseConfig != nil {
		debug.LogConfig("loaded global config, project root set to %s", searchDir)
		baseConfig.Project.Root = searchDir
		return baseConfig, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	cfg := &Config{
		Version: 1,
		Project: Project{
			Root: cwd,
		},
		LogFormat: "",
		Parallelism: Parallelism{
			NumThreads: runtime.NumCPU(),
		},
		Aggregation: Aggregation{
			SingleMap: false,
		},
		Verifier: Verifier{
			Server:         "",
			PollTimeoutSec: 10,
		},
	}

	return cfg, nil
}
