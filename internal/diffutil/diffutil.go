// Package diffutil renders a unified diff between a file's original
// and mutated source, for preview without writing the transformed
// copy to disk.
package diffutil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

const contextLines = 3

// Render computes a unified diff between original and mutated (both
// the full text of one file) and formats it using
// github.com/sourcegraph/go-diff's FileDiff printer, the same type the
// validator's patch parser consumes on the way in.
func Render(filePath string, original, mutated []byte) (string, error) {
	origLines := splitLines(original)
	newLines := splitLines(mutated)

	hunks := buildHunks(origLines, newLines)
	if len(hunks) == 0 {
		return "", nil
	}

	fd := &diff.FileDiff{
		OrigName: "a/" + filePath,
		NewName:  "b/" + filePath,
		Hunks:    hunks,
	}

	out, err := diff.PrintFileDiff(fd)
	if err != nil {
		return "", fmt.Errorf("render diff for %s: %w", filePath, err)
	}
	return string(out), nil
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := string(content)
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lcsTable computes the longest-common-subsequence length table for a
// classic line-based diff; sized for single-file, in-memory inputs
// (the driver never feeds this path whole corpora, only one file's
// before/after pair).
func lcsTable(a, b []string) [][]int {
	table := make([][]int, len(a)+1)
	for i := range table {
		table[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else if table[i+1][j] >= table[i][j+1] {
				table[i][j] = table[i+1][j]
			} else {
				table[i][j] = table[i][j+1]
			}
		}
	}
	return table
}

type lineOp struct {
	kind byte // ' ', '-', '+'
	text string
}

func diffLines(a, b []string) []lineOp {
	table := lcsTable(a, b)
	var ops []lineOp
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			ops = append(ops, lineOp{' ', a[i]})
			i++
			j++
		case table[i+1][j] >= table[i][j+1]:
			ops = append(ops, lineOp{'-', a[i]})
			i++
		default:
			ops = append(ops, lineOp{'+', b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		ops = append(ops, lineOp{'-', a[i]})
	}
	for ; j < len(b); j++ {
		ops = append(ops, lineOp{'+', b[j]})
	}
	return ops
}

// buildHunks groups a flat line-op stream into unified-diff hunks with
// contextLines of surrounding unchanged context, matching standard
// diff(1) hunk-splitting behavior.
func buildHunks(a, b []string) []*diff.Hunk {
	ops := diffLines(a, b)

	type span struct{ start, end int }
	var changed []span
	for i, op := range ops {
		if op.kind != ' ' {
			if len(changed) > 0 && i-changed[len(changed)-1].end <= 2*contextLines {
				changed[len(changed)-1].end = i + 1
			} else {
				changed = append(changed, span{start: i, end: i + 1})
			}
		}
	}

	var hunks []*diff.Hunk
	for _, sp := range changed {
		start := sp.start - contextLines
		if start < 0 {
			start = 0
		}
		end := sp.end + contextLines
		if end > len(ops) {
			end = len(ops)
		}

		var body bytes.Buffer
		origLine, newLine := 0, 0
		for k := 0; k < start; k++ {
			switch ops[k].kind {
			case ' ':
				origLine++
				newLine++
			case '-':
				origLine++
			case '+':
				newLine++
			}
		}
		origStart, newStart := origLine+1, newLine+1
		origCount, newCount := 0, 0
		for k := start; k < end; k++ {
			op := ops[k]
			body.WriteByte(op.kind)
			body.WriteString(op.text)
			if !strings.HasSuffix(op.text, "\n") {
				body.WriteString("\n\\ No newline at end of file\n")
			}
			switch op.kind {
			case ' ':
				origCount++
				newCount++
			case '-':
				origCount++
			case '+':
				newCount++
			}
		}

		hunks = append(hunks, &diff.Hunk{
			OrigStartLine: int32(origStart),
			OrigLines:     int32(origCount),
			NewStartLine:  int32(newStart),
			NewLines:      int32(newCount),
			Body:          body.Bytes(),
		})
	}
	return hunks
}
