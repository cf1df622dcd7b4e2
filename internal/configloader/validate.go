package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/refract/pkg/config"
	"github.com/yaklabco/refract/pkg/frontend"
)

// ValidationError is a problem with one configuration field.
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult collects errors, which stop loading, and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg. Languages are checked against the registered front
// ends; an unknown language is only a warning.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	switch cfg.Markdown.Flavor {
	case "", config.FlavorCommonMark, config.FlavorGFM:
	default:
		result.fail("markdown.flavor", cfg.Markdown.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Markdown.Flavor)
	}

	switch cfg.Backups.Mode {
	case "", "sidecar", "none":
	default:
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	if strings.TrimLeft(cfg.Codegen.Indent, " \t") != "" {
		result.fail("codegen.indent", cfg.Codegen.Indent, "indent must contain only spaces and tabs")
	}

	if _, err := config.ParseOutputFormat(string(cfg.Format)); err != nil {
		result.fail("format", cfg.Format, "%v", err)
	}

	if cfg.Language != "" {
		if _, ok := frontend.DefaultRegistry.Resolve(cfg.Language); !ok {
			result.warn("language", cfg.Language, "no front end for language %q", cfg.Language)
		}
	}
	for i, lang := range cfg.Markdown.Languages {
		if _, ok := frontend.DefaultRegistry.Resolve(lang); !ok {
			result.warn(fmt.Sprintf("markdown.languages[%d]", i), lang, "no front end for language %q", lang)
		}
	}

	return result
}
