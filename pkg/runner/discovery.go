package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Discover returns the sorted, deduplicated absolute paths of the files
// opts selects. Hidden files and directories are skipped while walking.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:      ctx,
		workDir:  workDir,
		exts:     opts.extensions(),
		excludes: excludes,
		follow:   opts.FollowSymlinks,
		seen:     make(map[string]struct{}),
	}

	for _, p := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			if err := w.walk(abs); err != nil {
				return nil, err
			}
			continue
		}
		if !w.excluded(abs) {
			w.add(abs)
		}
	}

	sort.Strings(w.files)
	return w.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

type walker struct {
	ctx      context.Context //nolint:containedctx // scoped to one Discover call
	workDir  string
	exts     []string
	excludes []glob.Glob
	follow   bool
	seen     map[string]struct{}
	files    []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// excluded matches path, relative to the working directory, and its base
// name against the exclude globs.
func (w *walker) excluded(path string) bool {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, g := range w.excludes {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

func (w *walker) wanted(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(w.exts, func(e string) bool { return strings.ToLower(e) == ext })
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || (path != root && w.excluded(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || w.excluded(path) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken links are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !w.follow {
					return nil
				}
				return w.walk(target)
			}
		}

		if w.wanted(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}
