package mutate

import (
	"fmt"
	"sort"
)

// edit is a single non-overlapping replacement over a byte range of
// the original source buffer: bytes [start, end) are replaced by
// replacement. This is the engine's realization of a CST transformer's
// immutable "with-changes" reconstruction (spec.md §3): instead of
// rebuilding a tree node-by-node, Pass 2 accumulates a flat edit list
// against the read-only tree-sitter tree and splices it over the
// original bytes in one pass, which preserves every byte not covered
// by an edit verbatim (whitespace, comments, string literals).
type edit struct {
	start       uint32
	end         uint32
	replacement string
}

// applyEdits splices edits over content, returning the rewritten
// source. Edits must be non-overlapping; overlapping edits indicate a
// bug in the renamer (two rules both claiming the same span) and
// produce an error rather than silently corrupting output.
func applyEdits(content []byte, edits []edit) ([]byte, error) {
	if len(edits) == 0 {
		out := make([]byte, len(content))
		copy(out, content)
		return out, nil
	}

	sorted := make([]edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var out []byte
	cursor := uint32(0)
	for _, e := range sorted {
		if e.start < cursor {
			return nil, fmt.Errorf("overlapping edit at byte %d (cursor at %d)", e.start, cursor)
		}
		out = append(out, content[cursor:e.start]...)
		out = append(out, e.replacement...)
		cursor = e.end
	}
	out = append(out, content[cursor:]...)
	return out, nil
}
