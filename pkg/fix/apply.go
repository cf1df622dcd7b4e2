package fix

import "slices"

// ApplyEdits splices edits into source and returns the result.
//
// Edits are expressed in the coordinates of the original source. They are
// applied in descending order of StartOffset (ties broken by descending
// EndOffset) so that earlier offsets stay valid while later regions are
// rewritten. An edit whose range is inverted, negative, or extends past the
// current length of the text is skipped. Overlapping edits are applied in
// the same order without any reconciliation.
func ApplyEdits(source string, edits []TextEdit) string {
	if len(edits) == 0 {
		return source
	}

	ordered := slices.Clone(edits)
	SortEdits(ordered)

	out := source
	for _, e := range ordered {
		if e.StartOffset < 0 || e.StartOffset > e.EndOffset || e.EndOffset > len(out) {
			continue
		}
		out = out[:e.StartOffset] + e.NewText + out[e.EndOffset:]
	}
	return out
}

// ApplyBytes is ApplyEdits for byte slices.
func ApplyBytes(source []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return source
	}
	return []byte(ApplyEdits(string(source), edits))
}
