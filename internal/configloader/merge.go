package configloader

import "github.com/yaklabco/refract/pkg/config"

// merge applies the set fields of override to a copy of base. Flags carry
// no "unset" state, so zero values in override are ignored and a flag can
// only switch a boolean on.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	out := base.Clone()
	if override == nil {
		return out
	}

	if override.Language != "" {
		out.Language = override.Language
	}
	if override.Markdown.Flavor != "" {
		out.Markdown.Flavor = override.Markdown.Flavor
	}
	if override.Markdown.Languages != nil {
		out.Markdown.Languages = append([]string(nil), override.Markdown.Languages...)
	}
	if override.Codegen.Indent != "" {
		out.Codegen.Indent = override.Codegen.Indent
	}
	if override.Backups.Mode != "" {
		out.Backups.Mode = override.Backups.Mode
	}
	if override.Format != "" {
		out.Format = override.Format
	}

	out.DryRun = out.DryRun || override.DryRun
	out.Write = out.Write || override.Write
	out.NoBackups = out.NoBackups || override.NoBackups
	return out
}
