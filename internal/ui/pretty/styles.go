// Package pretty renders refactoring results for the terminal with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the renderers used by the text and diff output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	OldText lipgloss.Style
	NewText lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func newColorStyles() *Styles {
	return &Styles{
		Error:   fg("9").Bold(true),
		Warning: fg("11").Bold(true),
		Info:    fg("12").Bold(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   fg("8"),
		Message:    lipgloss.NewStyle(),
		SourceLine: fg("7"),
		Caret:      fg("9"),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg("14"),
		DiffAdd:     fg("10"),
		DiffRemove:  fg("9"),
		DiffContext: fg("8"),

		OldText: fg("9").Strikethrough(true),
		NewText: fg("10"),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg("10").Bold(true),
		Failure:      fg("9").Bold(true),

		TableHeader:    fg("7").Bold(true),
		TableSeparator: fg("8"),

		Dim:  fg("8"),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Warning: plain, Info: plain,
		FilePath: plain, Location: plain, Message: plain, SourceLine: plain, Caret: plain,
		DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
		OldText: plain, NewText: plain,
		SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
		TableHeader: plain, TableSeparator: plain,
		Dim: plain, Bold: plain,
	}
}

// IsColorEnabled resolves a color mode of "always", "never" or "auto".
// In auto mode color needs a terminal and an unset NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
