package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateOptions controls DefaultTemplate.
type TemplateOptions struct {
	// Format is "yaml" (default) or "json".
	Format string
	// Languages are listed in the comments of the YAML template.
	Languages []string
}

// TemplateHeader starts every generated YAML file.
const TemplateHeader = `# refract configuration
# See: https://github.com/yaklabco/refract`

// DefaultTemplate returns a commented configuration file holding the
// defaults.
func DefaultTemplate(opts TemplateOptions) ([]byte, error) {
	if strings.EqualFold(opts.Format, "json") {
		out, err := json.MarshalIndent(NewConfig(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal JSON: %w", err)
		}
		return append(out, '\n'), nil
	}

	langs := "csharp"
	if len(opts.Languages) > 0 {
		langs = strings.Join(opts.Languages, ", ")
	}

	var b strings.Builder
	b.WriteString(TemplateHeader)
	fmt.Fprintf(&b, `

# Language for files whose type cannot be detected.
# Available: %s
language: %s

# Markdown files are refactored inside fenced code blocks.
markdown:
  # commonmark or gfm
  flavor: %s
  # Only refactor fences in these languages (default: all available).
  # languages:
  #   - csharp

# Indentation used by "refract print".
codegen:
  indent: %q

# Keep the original next to a rewritten file (file.cs.refract.bak).
backups:
  enabled: true
  # sidecar or none
  mode: %s
`, langs, DefaultLanguage, FlavorCommonMark, DefaultIndent, DefaultBackupMode)

	return []byte(b.String()), nil
}
