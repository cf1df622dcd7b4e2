package refactor

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/refract/pkg/fix"
	"github.com/yaklabco/refract/pkg/uast"
)

// ApplyAll runs each refactoring against the same tree concurrently and
// returns their edit lists in argument order. The lists are independent;
// combining them is up to the caller.
func ApplyAll(ctx context.Context, target uast.TopLevel, refs ...Refactoring) ([][]fix.TextEdit, error) {
	results := make([][]fix.TextEdit, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = ref.Apply(target)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Extraction is the outcome of FindExtraction.
type Extraction struct {
	// Start and End delimit the occurrence that produced edits.
	Start int
	End   int
	Edits []fix.TextEdit
}

// FindExtraction tries each occurrence of snippet in source, in order, and
// returns the first one for which ExtractVariable produces edits against
// any of targets. Occurrences in comments or strings, or that do not line
// up with an expression, are passed over.
func FindExtraction(targets []uast.TopLevel, source, snippet, newName string) (Extraction, bool) {
	if snippet == "" {
		return Extraction{}, false
	}

	for offset := 0; offset <= len(source); {
		idx := strings.Index(source[offset:], snippet)
		if idx < 0 {
			break
		}
		start := offset + idx
		end := start + len(snippet)

		x := NewExtractVariable(start, end, newName, source)
		for _, target := range targets {
			if edits := x.Apply(target); len(edits) > 0 {
				return Extraction{Start: start, End: end, Edits: edits}, true
			}
		}
		offset = start + 1
	}
	return Extraction{}, false
}
