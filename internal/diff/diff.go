// Package diff computes unified diffs between two versions of a document.
// The matcher is a classic longest-common-subsequence line aligner; output
// follows the usual `--- a/<label>` / `+++ b/<label>` / `@@` convention with
// a fixed context window. Structured (JSON) inputs can be canonicalized
// before diffing so formatting-only differences disappear.
package diff

import (
	"fmt"
	"strings"
)

// DefaultContext is the number of unchanged lines shown around each hunk.
const DefaultContext = 3

// Text compares two documents line by line. Byte-equal inputs short-circuit
// to (false, ""). The returned diff is plain text; coloring and truncation
// are presentation concerns handled by Render.
func Text(old, new, label string) (bool, string) {
	if old == new {
		return false, ""
	}
	a := splitKeep(old)
	b := splitKeep(new)
	ops := align(a, b)
	return true, renderUnified(ops, label, DefaultContext)
}

type opTag byte

const (
	opEqual  opTag = ' '
	opDelete opTag = '-'
	opInsert opTag = '+'
)

// op is one aligned line. aPos/bPos are the zero-based positions in each
// input before the op is consumed; line carries the affected text.
type op struct {
	tag        opTag
	aPos, bPos int
	line       string
}

// splitKeep cuts text into lines keeping terminators, so a missing final
// newline still distinguishes two otherwise equal documents.
func splitKeep(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// align produces the edit script between a and b using an LCS table.
func align(a, b []string) []op {
	n, m := len(a), len(b)
	// lcs[i][j] = length of the LCS of a[i:] and b[j:]
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}
	var ops []op
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			ops = append(ops, op{opEqual, i, j, a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, op{opDelete, i, j, a[i]})
			i++
		default:
			ops = append(ops, op{opInsert, i, j, b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, op{opDelete, i, j, a[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, op{opInsert, i, j, b[j]})
	}
	return ops
}

// renderUnified groups the edit script into hunks with the given context
// window and renders the standard unified format.
func renderUnified(ops []op, label string, context int) string {
	var out strings.Builder
	fmt.Fprintf(&out, "--- a/%s\n", label)
	fmt.Fprintf(&out, "+++ b/%s\n", label)

	i := 0
	for i < len(ops) {
		if ops[i].tag == opEqual {
			i++
			continue
		}
		start := i - context
		if start < 0 {
			start = 0
		}
		// Walk forward until a stretch of unchanged lines longer than twice
		// the context separates this hunk from the next change.
		last := i
		j := i
		equalRun := 0
		for j < len(ops) {
			if ops[j].tag == opEqual {
				equalRun++
				if equalRun > 2*context {
					break
				}
			} else {
				equalRun = 0
				last = j
			}
			j++
		}
		end := last + 1 + context
		if end > len(ops) {
			end = len(ops)
		}
		writeHunk(&out, ops[start:end])
		i = j
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func writeHunk(out *strings.Builder, hunk []op) {
	aLen, bLen := 0, 0
	for _, o := range hunk {
		if o.tag != opInsert {
			aLen++
		}
		if o.tag != opDelete {
			bLen++
		}
	}
	aStart := hunk[0].aPos + 1
	if aLen == 0 {
		aStart--
	}
	bStart := hunk[0].bPos + 1
	if bLen == 0 {
		bStart--
	}
	fmt.Fprintf(out, "@@ -%d,%d +%d,%d @@\n", aStart, aLen, bStart, bLen)
	for _, o := range hunk {
		content := strings.TrimSuffix(o.line, "\n")
		content = strings.TrimSuffix(content, "\r")
		fmt.Fprintf(out, "%c%s\n", o.tag, content)
	}
}
