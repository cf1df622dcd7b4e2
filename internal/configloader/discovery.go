package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ProjectConfigName is the file "refract init" writes.
const ProjectConfigName = ".refract.yml"

// ConfigPaths are the configuration files found. Missing files are "".
type ConfigPaths struct {
	User     string
	Project  string
	Explicit string
}

//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	ProjectConfigName,
	".refract.yaml",
	"refract.yml",
	"refract.yaml",
}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the user config under $XDG_CONFIG_HOME/refract and
// the nearest project config at or above workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{User: userConfig(), Project: project}, nil
}

// UserConfigDir returns $XDG_CONFIG_HOME/refract, falling back to
// ~/.config/refract.
func UserConfigDir() string {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = filepath.Join(dir, ".config")
	}
	return filepath.Join(home, "refract")
}

func userConfig() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		if path := filepath.Join(dir, name); isFile(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches startDir and its parents for a project
// config. The search stops at a VCS root, the home directory or the
// filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		for _, name := range projectConfigFiles {
			if path := filepath.Join(dir, name); isFile(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
