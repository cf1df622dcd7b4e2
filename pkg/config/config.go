// Package config defines refract's configuration. The types are plain data;
// loading and merging live in internal/configloader.
package config

// Flavor is the Markdown dialect used to find code regions.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// MarkdownConfig controls how Markdown files are split into code regions.
type MarkdownConfig struct {
	Flavor Flavor `json:"flavor" yaml:"flavor"`
	// Languages limits which fence languages are refactored. Empty means
	// every language with a front end.
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty"`
}

// CodegenConfig controls the pretty-printer.
type CodegenConfig struct {
	Indent string `json:"indent" yaml:"indent"`
}

// BackupsConfig controls backups taken before a file is rewritten.
type BackupsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Mode    string `json:"mode"    yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration.
type Config struct {
	// Language is used for files whose language cannot be detected.
	Language string         `json:"language" yaml:"language"`
	Markdown MarkdownConfig `json:"markdown" yaml:"markdown"`
	Codegen  CodegenConfig  `json:"codegen"  yaml:"codegen"`
	Backups  BackupsConfig  `json:"backups"  yaml:"backups"`

	// CLI-level options, never read from or written to files.
	DryRun    bool         `json:"-" yaml:"-"`
	Write     bool         `json:"-" yaml:"-"`
	Format    OutputFormat `json:"-" yaml:"-"`
	NoBackups bool         `json:"-" yaml:"-"`
}

// Defaults.
const (
	DefaultLanguage   = "csharp"
	DefaultIndent     = "    "
	DefaultBackupMode = "sidecar"
)

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Language: DefaultLanguage,
		Markdown: MarkdownConfig{Flavor: FlavorCommonMark},
		Codegen:  CodegenConfig{Indent: DefaultIndent},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    DefaultBackupMode,
		},
		Format: FormatText,
	}
}

// BackupsEnabled reports whether a write should keep a backup.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != "none"
}
