// Package configloader resolves refract's configuration from defaults,
// configuration files, environment variables and command-line flags.
package configloader

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/refract/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to the
	// current directory.
	WorkingDir string

	// ExplicitPath is a file given with --config. It is loaded after the
	// project and user files.
	ExplicitPath string

	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Env looks up environment variables. Defaults to os.LookupEnv.
	Env func(string) (string, bool)

	// CLIConfig holds flag values, which take precedence over everything.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
	Warnings   []string
}

// Load resolves the configuration. Precedence, highest first:
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (REFRACT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.refract.yml, searched upward)
//  5. User config ($XDG_CONFIG_HOME/refract/config.yaml)
//  6. Defaults
//
// Each file is decoded on top of the configuration so far, so a key that is
// present always wins, including false and empty values.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		path string
		skip bool
	}{
		{paths.User, opts.IgnoreUserConfig},
		{paths.Project, opts.IgnoreProjectConfig},
		{paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.path == "" || layer.skip {
			continue
		}
		if cfg, err = overlayFile(cfg, layer.path); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		lookup := opts.Env
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if err := applyEnv(cfg, lookup); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// overlayFile decodes the YAML file at path over a copy of base.
func overlayFile(base *config.Config, path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := base.Clone()
	if len(bytes.TrimSpace(content)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}
	return cfg, nil
}
