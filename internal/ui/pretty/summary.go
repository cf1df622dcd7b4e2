package pretty

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// Stats totals a run over one or more files.
type Stats struct {
	FilesProcessed int
	FilesChanged   int
	FilesWritten   int
	FilesFailed    int
	Edits          int
	Backups        int
	Warnings       int
	Diagnostics    int
	DryRun         bool
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats stats as one line, for example
// "4 edits in 2 files, 2 written (2 backups)".
func (s *Styles) FormatSummaryOneLine(stats Stats) string {
	if stats.Edits == 0 {
		msg := s.Success.Render("No changes") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
		if stats.FilesFailed > 0 {
			msg += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed))
		}
		return msg + "\n"
	}

	parts := []string{fmt.Sprintf("%d %s in %d %s",
		stats.Edits, plural(stats.Edits, "edit", "edits"),
		stats.FilesChanged, plural(stats.FilesChanged, wordFile, wordFiles))}

	switch {
	case stats.DryRun:
		parts = append(parts, s.Dim.Render("dry run"))
	case stats.FilesWritten > 0:
		written := fmt.Sprintf("%d written", stats.FilesWritten)
		if stats.Backups > 0 {
			written += fmt.Sprintf(" (%d %s)", stats.Backups, plural(stats.Backups, "backup", "backups"))
		}
		parts = append(parts, s.Success.Render(written))
	default:
		parts = append(parts, s.Warning.Render("not written"))
	}

	if stats.Warnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", stats.Warnings, plural(stats.Warnings, "warning", "warnings"))))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats stats as a block.
func (s *Styles) FormatSummary(stats Stats) string {
	var b strings.Builder

	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row := func(label string, value int, style func(...string) string) {
		fmt.Fprintf(&b, "  %-18s %s\n", label+":", style(strconv.Itoa(value)))
	}

	row("Files processed", stats.FilesProcessed, s.SummaryValue.Render)
	if stats.FilesChanged > 0 {
		row("Files changed", stats.FilesChanged, s.SummaryValue.Render)
	}
	if stats.FilesWritten > 0 {
		row("Files written", stats.FilesWritten, s.Success.Render)
	}
	if stats.Backups > 0 {
		row("Backups", stats.Backups, s.SummaryValue.Render)
	}
	if stats.FilesFailed > 0 {
		row("Files failed", stats.FilesFailed, s.Failure.Render)
	}
	b.WriteString("\n")
	row("Edits", stats.Edits, s.SummaryValue.Render)
	if stats.Warnings > 0 {
		row("Warnings", stats.Warnings, s.Warning.Render)
	}
	if stats.Diagnostics > 0 {
		row("Diagnostics", stats.Diagnostics, s.Warning.Render)
	}
	return b.String()
}
