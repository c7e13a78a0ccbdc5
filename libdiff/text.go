// Package libdiff produces readable differences between rendered texts.
package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Text returns a line oriented description of how from turns into to, or
// "" when they are equal. Removed lines are prefixed with "-", added lines
// with "+".
func Text(from, to string) string {
	if from == to {
		return ""
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	sb := &strings.Builder{}
	for _, diff := range diffs {
		prefix := " "
		switch diff.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
		case diffpatch.DiffDelete:
			prefix = "-"
		}
		for _, ln := range splitLines(diff.Text) {
			sb.WriteString(prefix)
			sb.WriteString(ln)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// splitLines splits s after each newline, marking a missing final newline.
func splitLines(s string) []string {
	var res []string
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			res = append(res, s+"\\ no newline")
			break
		}
		res = append(res, s[:i])
		s = s[i+1:]
	}
	return res
}
