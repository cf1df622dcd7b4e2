package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/refract/internal/logging"
	"github.com/yaklabco/refract/pkg/config"
	"github.com/yaklabco/refract/pkg/fsutil"
	"github.com/yaklabco/refract/pkg/pipeline"
	"github.com/yaklabco/refract/pkg/reporter"
	"github.com/yaklabco/refract/pkg/runner"
)

// stdinPath names standard input in paths and output.
const stdinPath = "-"

// refactorFlags are shared by rename and extract.
type refactorFlags struct {
	write          bool
	dryRun         bool
	noBackups      bool
	format         string
	flavor         string
	decl           string
	exclude        []string
	jobs           int
	showEdits      bool
	noContext      bool
	compact        bool
	requireChanges bool
}

func addRefactorFlags(cmd *cobra.Command, f *refactorFlags) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.write, "write", "w", false, "write the result back to the files")
	fl.BoolVar(&f.dryRun, "dry-run", false, "report the edits without writing, even with --write")
	fl.BoolVar(&f.noBackups, "no-backups", false, "do not keep a backup when writing")
	fl.StringVarP(&f.format, "format", "f", "text", "output format: text, json, diff, yaml")
	fl.StringVar(&f.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	fl.StringVar(&f.decl, "decl", "", "only refactor declarations with this name")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "glob patterns of files to skip")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	fl.BoolVar(&f.showEdits, "show-edits", false, "list every edit in text output")
	fl.BoolVar(&f.noContext, "no-context", false, "hide source lines under diagnostics")
	fl.BoolVar(&f.compact, "compact", false, "compact JSON output")
	fl.BoolVar(&f.requireChanges, "require-changes", false, "exit with status 2 when nothing changes")
}

// overrides returns the configuration set by flags.
func (f *refactorFlags) overrides(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{Write: f.write, DryRun: f.dryRun, NoBackups: f.noBackups}
	if cmd.Flags().Changed("format") {
		format, err := config.ParseOutputFormat(f.format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		cfg.Format = format
	}
	if f.flavor != "" {
		cfg.Markdown.Flavor = config.Flavor(f.flavor)
	}
	return cfg, nil
}

// runRefactoring runs req over paths, or over standard input, and reports
// the result.
func runRefactoring(cmd *cobra.Command, g *globalFlags, f *refactorFlags, req pipeline.Request, paths []string) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	overrides, err := f.overrides(cmd)
	if err != nil {
		return err
	}
	cfg, err := g.loadConfig(ctx, overrides)
	if err != nil {
		return err
	}

	req.Language = g.language
	req.Flavor = string(cfg.Markdown.Flavor)
	req.Languages = cfg.Markdown.Languages
	req.Decl = f.decl
	req.Write = cfg.Write && !cfg.DryRun
	req.Diff = cfg.Format == config.FormatDiff
	req.RequireChanges = f.requireChanges
	req.Backup = fsutil.BackupModeNone
	if cfg.BackupsEnabled() {
		req.Backup = fsutil.BackupMode(cfg.Backups.Mode)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	var result *runner.Result
	if useStdin(cmd.InOrStdin(), paths) {
		if req.Language == "" {
			req.Language = cfg.Language
		}
		result, err = runStdin(ctx, cmd.InOrStdin(), req)
		if err != nil {
			return err
		}
		if cfg.Format == config.FormatText {
			return writeStdinResult(cmd, result)
		}
	} else {
		result, err = runner.New(pipeline.New()).Run(ctx, runner.Options{
			Paths:        paths,
			WorkingDir:   workDir,
			ExcludeGlobs: f.exclude,
			Jobs:         f.jobs,
			Request:      req,
		})
		if err != nil {
			return err
		}
	}

	logger.Debug("run finished",
		logging.FieldRefactoring, req.Refactoring,
		"files", result.Stats.FilesProcessed,
		logging.FieldChanged, result.Stats.FilesChanged,
		logging.FieldEdits, result.Stats.Edits)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      cfg.Format,
		Color:       g.color,
		ShowContext: !f.noContext,
		ShowSummary: true,
		ShowEdits:   f.showEdits,
		DryRun:      cfg.DryRun,
		Compact:     f.compact,
		WorkingDir:  workDir,
		TermWidth:   terminalWidth(cmd.OutOrStdout()),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(result, f.requireChanges)
}

func resultError(result *runner.Result, requireChanges bool) error {
	if result.HasErrors() {
		return fmt.Errorf("%w: %d of %d files", ErrRefactoringFailed, result.Stats.FilesErrored, len(result.Files))
	}
	if requireChanges && !result.HasChanges() {
		return pipeline.ErrNoChanges
	}
	return nil
}

// useStdin reports whether input comes from in: either the only path is
// "-", or no paths were given and in is a pipe or a redirected file.
func useStdin(in io.Reader, paths []string) bool {
	if len(paths) == 1 && paths[0] == stdinPath {
		return true
	}
	if len(paths) > 0 {
		return false
	}
	f, ok := in.(*os.File)
	if !ok || term.IsTerminal(int(f.Fd())) {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeNamedPipe != 0 || info.Mode().IsRegular()
}

// terminalWidth returns the width of w when it is a terminal, or zero.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func readStdin(in io.Reader) ([]byte, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read standard input: %w", err)
	}
	return content, nil
}

func runStdin(ctx context.Context, in io.Reader, req pipeline.Request) (*runner.Result, error) {
	content, err := readStdin(in)
	if err != nil {
		return nil, err
	}
	req.Path = stdinPath
	req.Content = content
	// Standard input is never written back.
	req.Write = false

	res, err := pipeline.New().Run(ctx, req)
	if res == nil && err != nil {
		return nil, err
	}
	return runner.Collect(runner.FileOutcome{Path: stdinPath, Result: res, Error: err}), nil
}

// writeStdinResult prints the refactored buffer, like a filter.
func writeStdinResult(cmd *cobra.Command, result *runner.Result) error {
	logger := logging.FromContext(commandContext(cmd))
	outcome := result.Files[0]
	if res := outcome.Result; res != nil {
		for _, w := range res.Warnings {
			logger.Warn(w, logging.FieldInput, stdinPath)
		}
		if _, err := cmd.OutOrStdout().Write(res.Modified); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if outcome.Error != nil {
		return outcome.Error
	}
	return nil
}
