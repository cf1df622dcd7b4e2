package document

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yaklabco/refract/pkg/fix"
)

// Segment is a half-open byte range of the document.
type Segment struct {
	Start int
	Stop  int
}

// Len returns the segment length in bytes.
func (s Segment) Len() int {
	return s.Stop - s.Start
}

// Region is a run of source code inside a document. Source is the
// concatenation of its segments; every segment after the first follows a
// container prefix such as "> " or list indentation that is not part of
// Source.
type Region struct {
	Index    int
	Language string
	// Info is the fence info string, empty for whole-file regions.
	Info   string
	Line   int
	Source []byte

	doc  []byte
	segs []Segment
	// offs[i] is the region offset at which segs[i] starts.
	offs []int
}

func newRegion(doc []byte, lang, info string, segs []Segment) *Region {
	r := &Region{Language: lang, Info: info, doc: doc, segs: segs, offs: make([]int, len(segs))}

	var src bytes.Buffer
	for i, s := range segs {
		r.offs[i] = src.Len()
		src.Write(doc[s.Start:s.Stop])
	}
	r.Source = src.Bytes()
	if r.Source == nil {
		r.Source = []byte{}
	}
	if len(segs) > 0 {
		r.Line = lineOf(doc, segs[0].Start)
	}
	return r
}

// Segments returns the document ranges that make up the region.
func (r *Region) Segments() []Segment {
	return r.segs
}

// Contiguous reports whether the region is a single unbroken range of the
// document, so edits need no prefix handling.
func (r *Region) Contiguous() bool {
	for i := 1; i < len(r.segs); i++ {
		if r.segs[i].Start != r.segs[i-1].Stop {
			return false
		}
	}
	return true
}

// segmentAt returns the segment holding region offset pos. A position on a
// boundary belongs to the following segment when after is true and to the
// preceding one otherwise.
func (r *Region) segmentAt(pos int, after bool) int {
	if after {
		return sort.Search(len(r.segs), func(i int) bool { return r.offs[i]+r.segs[i].Len() > pos })
	}
	return sort.Search(len(r.segs), func(i int) bool { return r.offs[i]+r.segs[i].Len() >= pos })
}

// DocumentOffset maps a region offset to a document offset. Offsets at a
// line boundary map past the next line's prefix unless end is set.
func (r *Region) DocumentOffset(pos int, end bool) (int, bool) {
	if pos < 0 || pos > len(r.Source) || len(r.segs) == 0 {
		return 0, false
	}
	i := r.segmentAt(pos, !end)
	if i == len(r.segs) {
		last := len(r.segs) - 1
		return r.segs[last].Stop, pos == len(r.Source)
	}
	return r.segs[i].Start + pos - r.offs[i], true
}

// RegionOffset maps a document offset to a region offset. Offsets inside
// a container prefix or outside the region do not map.
func (r *Region) RegionOffset(docPos int) (int, bool) {
	for i, s := range r.segs {
		if docPos >= s.Start && docPos <= s.Stop {
			return r.offs[i] + docPos - s.Start, true
		}
	}
	return 0, false
}

// prefix returns the container prefix of segment seg's line: the bytes
// between the line start and the segment start.
func (r *Region) prefix(seg int) string {
	start := r.segs[seg].Start
	lineStart := bytes.LastIndexByte(r.doc[:start], '\n') + 1
	return string(r.doc[lineStart:start])
}

// ToDocument maps region-relative edits onto the document. An edit whose
// range would delete a container prefix is returned in dropped instead.
// Inserted newlines are followed by the prefix of the line being edited.
func (r *Region) ToDocument(edits []fix.TextEdit) (mapped, dropped []fix.TextEdit) {
	for _, e := range edits {
		start, ok := r.DocumentOffset(e.StartOffset, false)
		if !ok {
			dropped = append(dropped, e)
			continue
		}
		end := start
		if !e.IsInsertion() {
			end, ok = r.DocumentOffset(e.EndOffset, true)
			if !ok || end-start != e.Len() {
				dropped = append(dropped, e)
				continue
			}
		}

		newText := e.NewText
		if seg := r.segmentAt(e.StartOffset, true); seg < len(r.segs) && strings.Contains(newText, "\n") {
			if p := r.prefix(seg); p != "" {
				newText = strings.ReplaceAll(newText, "\n", "\n"+p)
			}
		}
		mapped = append(mapped, fix.TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
	}
	return mapped, dropped
}
