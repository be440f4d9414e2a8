package promtext

import (
	"sort"
	"strings"
)

// Inject stamps extra name/value label pairs onto every sample line across
// families, in place. Keys are sorted alphabetically so output is
// deterministic; an injected label is always appended after any labels the
// sample already carries, even if the name collides with an existing one
// (spec-faithful: downstream consumers see a duplicate label rather than
// having their own label silently overridden). Empty extra is a no-op.
func Inject(families []Family, extra map[string]string) {
	if len(extra) == 0 {
		return
	}

	names := make([]string, 0, len(extra))
	for k := range extra {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(escapeLabelValue(extra[name]))
		b.WriteByte('"')
	}
	fragment := b.String()

	for fi := range families {
		samples := families[fi].Samples
		for si := range samples {
			samples[si].Raw = injectLine(samples[si].Raw, fragment)
		}
	}
}

// escapeLabelValue applies the Prometheus text-format label value escapes:
// backslash then quote.
func escapeLabelValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return v
}

// injectLine rewrites a single raw sample line to carry the pre-rendered
// fragment, preserving the trailing newline and any timestamp.
func injectLine(line, fragment string) string {
	content := strings.TrimSuffix(line, "\n")

	if open := strings.IndexByte(content, '{'); open >= 0 {
		close := strings.LastIndexByte(content, '}')
		if close < open {
			close = len(content)
		}
		existing := content[open+1 : close]
		after := content[close+1:]

		labels := fragment
		if existing != "" {
			labels = existing + "," + fragment
		}
		return content[:open] + "{" + labels + "}" + after + "\n"
	}

	space := strings.IndexByte(content, ' ')
	if space < 0 {
		space = len(content)
	}
	return content[:space] + "{" + fragment + "}" + content[space:] + "\n"
}
