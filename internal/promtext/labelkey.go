package promtext

import (
	"sort"
	"strings"
)

// LabelKey returns the canonical label-set identity of a raw sample line:
// the label pairs between the first `{` and the last `}`, split on commas
// that are not inside a double-quoted value, trimmed, sorted lexically by
// their raw pair text, and rejoined with commas. A sample with no labels
// has LabelKey "". Two samples denote the same series iff their LabelKey
// is identical.
func LabelKey(line string) string {
	open := strings.IndexByte(line, '{')
	if open < 0 {
		return ""
	}
	close := strings.LastIndexByte(line, '}')
	if close <= open {
		return ""
	}

	labels := line[open+1 : close]
	if labels == "" {
		return ""
	}

	pairs := splitUnquoted(labels)
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

// splitUnquoted splits s on commas that are not inside a double-quoted
// string, tracking quote state with a simple unescaped-quote parity
// toggle, and trims whitespace from each resulting pair.
func splitUnquoted(s string) []string {
	var pairs []string
	inQuotes := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				pairs = append(pairs, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	pairs = append(pairs, strings.TrimSpace(s[start:]))
	return pairs
}
