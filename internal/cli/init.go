package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/refract/internal/configloader"
	"github.com/yaklabco/refract/internal/logging"
	"github.com/yaklabco/refract/pkg/config"
	"github.com/yaklabco/refract/pkg/frontend"
)

const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a refract configuration file",
		Long: `Write a configuration file holding the defaults to the current
directory.

Examples:
  refract init                  Create .refract.yml
  refract init --format json    Create .refract.json
  refract init -o ci/refract.yml`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .refract.yml or .refract.json)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: format %q, want yaml or json", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigName
		if flags.format == "json" {
			outputPath = ".refract.json"
		}
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.DefaultTemplate(config.TemplateOptions{
		Format:    flags.format,
		Languages: frontend.DefaultRegistry.Languages(),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.format == "json" {
		logger.Info("JSON files are read with --config; discovery only looks for YAML")
	}
	return nil
}
