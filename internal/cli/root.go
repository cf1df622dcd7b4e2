// Package cli implements the refract command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/refract/internal/configloader"
	"github.com/yaklabco/refract/internal/logging"
	"github.com/yaklabco/refract/pkg/config"

	// Register the built-in front ends.
	_ "github.com/yaklabco/refract/pkg/frontend/csharp"
)

// BuildInfo is set from ldflags by the release build.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags every command sees.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	language   string
}

// NewRootCommand returns the refract command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "refract",
		Short: "Structural refactoring for C# source and Markdown code samples",
		Long: `refract applies structural refactorings to source code.

Files are lowered into a language-neutral syntax tree, a refactoring
computes byte-range edits against the tree, and the edits are spliced into
the original text. Formatting and comments outside the edited ranges are
kept exactly. Markdown files are refactored inside their fenced code
blocks.

Without --write the result is only reported. With --write each file is
checked for concurrent modification, backed up and replaced atomically.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if g.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&g.debug, "debug", false, "enable debug logging")
	pf.StringVar(&g.configPath, "config", "", "path to config file")
	pf.StringVar(&g.color, "color", "auto", "colorize output: auto, always, never")
	pf.StringVarP(&g.language, "language", "l", "", "language of the input, overriding detection")

	rootCmd.AddCommand(
		newRenameCommand(g),
		newExtractCommand(g),
		newPrintCommand(g),
		newParseCommand(g),
		newListCommand(),
		newRestoreCommand(),
		newInitCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(g.color, os.Stdout).ApplyToCommand(rootCmd)
	return rootCmd
}

// loadConfig resolves configuration with overrides from flags applied last.
func (g *globalFlags) loadConfig(ctx context.Context, overrides *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	if overrides == nil {
		overrides = &config.Config{}
	}
	if g.language != "" {
		overrides.Language = g.language
	}

	res, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: g.configPath,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	logger.Debug("configuration loaded",
		logging.FieldConfig, res.LoadedFrom,
		logging.FieldLanguage, res.Config.Language,
		logging.FieldFlavor, res.Config.Markdown.Flavor,
		logging.FieldWrite, res.Config.Write,
		logging.FieldDryRun, res.Config.DryRun)
	return res.Config, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}
