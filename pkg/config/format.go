package config

import (
	"fmt"
	"strings"
)

// OutputFormat selects how results are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
	FormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a format name. The empty string means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatDiff, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, diff or yaml)", s)
	}
}
