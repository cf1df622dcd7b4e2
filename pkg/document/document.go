// Package document splits an input file into the regions of source code a
// front end can lower. A source file is a single region. A Markdown file is
// parsed with goldmark and each fenced code block in a supported language
// becomes a region whose edits map back onto the Markdown text.
package document

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/refract/pkg/fix"
	"github.com/yaklabco/refract/pkg/langdetect"
)

// Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// ErrUnsupportedLanguage is returned by Open for a non-Markdown file whose
// language is not accepted by Options.Supports.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Options controls how a file is split into regions.
type Options struct {
	// Language overrides detection for the whole file.
	Language string
	// Flavor selects the Markdown dialect. Unknown values mean CommonMark.
	Flavor string
	// Languages restricts which fence languages become regions.
	// Empty means every language Supports accepts.
	Languages []string
	// Supports reports whether a front end exists for a language id or
	// alias. Nil accepts every language except plain text.
	Supports func(lang string) bool
}

func (o Options) supports(lang string) bool {
	if lang == "" || lang == langdetect.Text {
		return false
	}
	if o.Supports == nil {
		return true
	}
	return o.Supports(lang)
}

func (o Options) wants(lang string) bool {
	if len(o.Languages) == 0 {
		return true
	}
	for _, l := range o.Languages {
		if l == lang || langdetect.FromInfoString(l) == lang {
			return true
		}
	}
	return false
}

// Skipped describes a fenced code block that did not become a region.
type Skipped struct {
	Line     int
	Info     string
	Language string
}

// Document is a file split into code regions.
type Document struct {
	Path     string
	Language string
	// Flavor is set for Markdown documents.
	Flavor  string
	Content []byte
	Regions []*Region
	Skipped []Skipped
}

// Open detects the language of content and splits it into regions.
func Open(path string, content []byte, opts Options) (*Document, error) {
	lang := opts.Language
	if lang == "" {
		lang = langdetect.Detect(path, content)
	}

	doc := &Document{Path: path, Language: lang, Content: content}

	if lang == langdetect.Markdown {
		doc.Flavor = flavorOrDefault(opts.Flavor)
		doc.readFences(opts)
		return doc, nil
	}

	if !opts.supports(lang) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedLanguage, lang, path)
	}
	doc.Regions = []*Region{newRegion(content, lang, "", []Segment{{Start: 0, Stop: len(content)}})}
	return doc, nil
}

// IsMarkdown reports whether regions were taken from Markdown fences.
func (d *Document) IsMarkdown() bool {
	return d.Language == langdetect.Markdown
}

// Apply returns the document content with doc-coordinate edits applied.
func (d *Document) Apply(edits []fix.TextEdit) []byte {
	return fix.ApplyBytes(d.Content, edits)
}

func (d *Document) readFences(opts Options) {
	md := newGoldmark(d.Flavor)
	root := md.Parser().Parse(text.NewReader(d.Content), parser.WithContext(parser.NewContext()))

	//nolint:errcheck // the walker never returns an error
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		d.addFence(fence, opts)
		return ast.WalkSkipChildren, nil
	})

	for i, r := range d.Regions {
		r.Index = i
	}
}

func (d *Document) addFence(fence *ast.FencedCodeBlock, opts Options) {
	info := ""
	if fence.Info != nil {
		info = string(fence.Info.Segment.Value(d.Content))
	}

	lines := fence.Lines()
	segs := make([]Segment, 0, lines.Len())
	for i := range lines.Len() {
		seg := lines.At(i)
		segs = append(segs, Segment{Start: seg.Start, Stop: seg.Stop})
	}

	region := newRegion(d.Content, "", info, segs)
	lang := langdetect.FromInfoString(info)
	if lang == "" {
		lang = langdetect.DetectSnippet(region.Source)
	}
	region.Language = lang

	if len(segs) == 0 || !opts.supports(lang) || !opts.wants(lang) {
		d.Skipped = append(d.Skipped, Skipped{Line: fenceLine(d.Content, fence, segs), Info: info, Language: lang})
		return
	}
	d.Regions = append(d.Regions, region)
}

// fenceLine returns the 1-based line of the first content line, or of the
// closest known position for an empty fence.
func fenceLine(content []byte, fence *ast.FencedCodeBlock, segs []Segment) int {
	switch {
	case len(segs) > 0:
		return lineOf(content, segs[0].Start)
	case fence.Info != nil:
		return lineOf(content, fence.Info.Segment.Start)
	default:
		return 0
	}
}

func lineOf(content []byte, offset int) int {
	return bytes.Count(content[:offset], []byte{'\n'}) + 1
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmark(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
