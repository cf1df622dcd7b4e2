// Package runner applies one refactoring across many files.
package runner

import "github.com/yaklabco/refract/pkg/pipeline"

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories. Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and globs. Empty means the
	// process working directory.
	WorkingDir string

	// Extensions selects files found by walking directories. Files named
	// explicitly in Paths are always processed.
	Extensions []string

	// ExcludeGlobs skip files and directories. Patterns are matched
	// against slash-separated paths relative to WorkingDir; "**" crosses
	// directories.
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs bounds concurrency. Zero or less means runtime.NumCPU().
	Jobs int

	// Request is the per-file template; Path and Content are set per file.
	Request pipeline.Request
}

// DefaultExtensions returns the extensions walked by default.
func DefaultExtensions() []string {
	return []string{".cs", ".csx", ".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
