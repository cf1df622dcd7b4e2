package pretty

import (
	"strings"

	"github.com/yaklabco/refract/pkg/fix"
)

// FormatDiff renders d in unified format with colored markers. It returns
// "" for a nil diff.
func (s *Styles) FormatDiff(d *fix.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	name := strings.TrimPrefix(d.Path, "/")
	var b strings.Builder
	b.WriteString(s.DiffHeader.Render("--- a/"+name) + "\n")
	b.WriteString(s.DiffHeader.Render("+++ b/"+name) + "\n")
	for _, h := range d.Hunks {
		b.WriteString(s.DiffHunk.Render(h.Header()) + "\n")
		for _, l := range h.Lines {
			line := l.Op.Prefix() + l.Text
			switch l.Op {
			case fix.LineAdded:
				line = s.DiffAdd.Render(line)
			case fix.LineRemoved:
				line = s.DiffRemove.Render(line)
			default:
				line = s.DiffContext.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
