package configloader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/refract/pkg/config"
)

// EnvPrefix starts every environment variable refract reads.
const EnvPrefix = "REFRACT_"

type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func setString(dst *string) func(*config.Config, string) error {
	return func(_ *config.Config, v string) error {
		*dst = v
		return nil
	}
}

// envVars returns the variables bound to fields of cfg, keyed by suffix.
func envVars(cfg *config.Config) map[string]envVar {
	boolVar := func(dst *bool) func(*config.Config, string) error {
		return func(_ *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected true/false/1/0, got %q", v)
			}
			*dst = b
			return nil
		}
	}

	return map[string]envVar{
		"LANGUAGE":        {"Language for undetected files", setString(&cfg.Language)},
		"MARKDOWN_FLAVOR": {"Markdown flavor: commonmark or gfm", func(c *config.Config, v string) error { c.Markdown.Flavor = config.Flavor(v); return nil }},
		"MARKDOWN_LANGUAGES": {"Comma-separated fence languages to refactor", func(c *config.Config, v string) error {
			c.Markdown.Languages = splitList(v)
			return nil
		}},
		"CODEGEN_INDENT":  {"Indentation for the pretty-printer", setString(&cfg.Codegen.Indent)},
		"BACKUPS_ENABLED": {"Keep a backup when writing: true or false", boolVar(&cfg.Backups.Enabled)},
		"BACKUPS_MODE":    {"Backup mode: sidecar or none", setString(&cfg.Backups.Mode)},
		"NO_BACKUPS":      {"Disable backups: true or false", boolVar(&cfg.NoBackups)},
		"FORMAT": {"Output format: text, json, diff or yaml", func(c *config.Config, v string) error {
			f, err := config.ParseOutputFormat(v)
			c.Format = f
			return err
		}},
	}
}

// applyEnv sets fields of cfg from REFRACT_* variables. Empty values are
// ignored.
func applyEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	vars := envVars(cfg)
	names := make([]string, 0, len(vars))
	for suffix := range vars {
		names = append(names, suffix)
	}
	sort.Strings(names)

	for _, suffix := range names {
		value, ok := lookup(EnvPrefix + suffix)
		if !ok || value == "" {
			continue
		}
		if err := vars[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, suffix, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string)
	for suffix, v := range envVars(config.NewConfig()) {
		out[EnvPrefix+suffix] = v.description
	}
	return out
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
