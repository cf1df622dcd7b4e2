package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/refract/pkg/frontend"
	"github.com/yaklabco/refract/pkg/uast"
)

// FormatDiagnostic formats a front-end diagnostic as
// "path:line:col  warning  message", followed by the source line and a
// caret when showContext is set.
func (s *Styles) FormatDiagnostic(path string, source []byte, diag frontend.Diagnostic, showContext bool) string {
	pos := uast.PositionOf(source, diag.Span.Start)

	var builder strings.Builder
	fmt.Fprintf(&builder, "  %s  %s  %s\n",
		s.FilePath.Render(path)+s.Location.Render(":"+pos.String()),
		s.Warning.Render("warning"),
		s.Message.Render(diag.Message))

	if showContext {
		builder.WriteString(s.FormatSourceContext(lineAt(source, diag.Span.Start), pos.Column))
	}
	return builder.String()
}

// FormatWarning formats a pipeline warning for path.
func (s *Styles) FormatWarning(path, message string) string {
	return fmt.Sprintf("  %s  %s  %s\n", s.FilePath.Render(path), s.Warning.Render("warning"), s.Message.Render(message))
}

// FormatError formats a failure for path.
func (s *Styles) FormatError(path string, err error) string {
	return fmt.Sprintf("  %s  %s  %s\n", s.FilePath.Render(path), s.Error.Render("error"), s.Message.Render(err.Error()))
}

// FormatSourceContext formats a source line with a caret under column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats the heading printed above a file's output.
func (s *Styles) FormatFileHeader(path string, edits int) string {
	header := s.FilePath.Render(path)
	switch edits {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 edit)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d edits)", edits))
	}
	return header
}

// lineAt returns the line of source holding offset, without its newline.
func lineAt(source []byte, offset int) string {
	offset = min(max(offset, 0), len(source))
	start := strings.LastIndexByte(string(source[:offset]), '\n') + 1
	end := len(source)
	if i := strings.IndexByte(string(source[offset:]), '\n'); i >= 0 {
		end = offset + i
	}
	return string(source[start:end])
}
