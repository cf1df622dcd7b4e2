package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/refract/pkg/fix"
	"github.com/yaklabco/refract/pkg/uast"
)

const (
	tablePadding     = 2
	minLocWidth      = 8
	minTextWidth     = 12
	defaultTermWidth = 100
	ellipsis         = "…"
)

// EditRow is one edit as shown in the table.
type EditRow struct {
	Location string
	Old      string
	New      string
}

// EditTable lays out the edits of a file as LOC, OLD and NEW columns.
type EditTable struct {
	styles    *Styles
	termWidth int
}

// NewEditTable returns a table renderer. A termWidth of zero or less
// means 100 columns.
func NewEditTable(styles *Styles, termWidth int) *EditTable {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &EditTable{styles: styles, termWidth: termWidth}
}

// Rows converts edits on source into table rows. Newlines are shown as ⏎.
func Rows(source []byte, edits []fix.TextEdit) []EditRow {
	rows := make([]EditRow, 0, len(edits))
	for _, e := range edits {
		old := ""
		if e.StartOffset >= 0 && e.EndOffset <= len(source) && e.StartOffset <= e.EndOffset {
			old = string(source[e.StartOffset:e.EndOffset])
		}
		rows = append(rows, EditRow{
			Location: uast.PositionOf(source, e.StartOffset).String(),
			Old:      oneLine(old),
			New:      oneLine(e.NewText),
		})
	}
	return rows
}

// Format renders rows. It returns "" when there are none.
func (t *EditTable) Format(rows []EditRow) string {
	if len(rows) == 0 {
		return ""
	}

	locWidth := len("LOC")
	oldWidth, newWidth := len("OLD"), len("NEW")
	for _, r := range rows {
		locWidth = max(locWidth, lipgloss.Width(r.Location))
		oldWidth = max(oldWidth, lipgloss.Width(r.Old))
		newWidth = max(newWidth, lipgloss.Width(r.New))
	}
	locWidth = max(locWidth, minLocWidth)

	// Text columns share what is left of the terminal.
	avail := t.termWidth - locWidth - 2*tablePadding
	if oldWidth+newWidth > avail {
		half := max(avail/2, minTextWidth)
		oldWidth = min(oldWidth, half)
		newWidth = max(min(newWidth, avail-oldWidth), minTextWidth)
	}

	sep := t.styles.TableSeparator.Render(strings.Repeat("-", locWidth+oldWidth+newWidth+2*tablePadding))
	gap := strings.Repeat(" ", tablePadding)

	var b strings.Builder
	b.WriteString(t.styles.TableHeader.Render(pad("LOC", locWidth)+gap+pad("OLD", oldWidth)+gap+"NEW") + "\n")
	b.WriteString(sep + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s%s%s%s%s\n",
			t.styles.Location.Render(pad(r.Location, locWidth)), gap,
			t.styles.OldText.Render(pad(truncate(r.Old, oldWidth), oldWidth)), gap,
			t.styles.NewText.Render(truncate(r.New, newWidth)))
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", "⏎")
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
