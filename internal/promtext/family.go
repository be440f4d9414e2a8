// Package promtext parses Prometheus exposition-format text into metric
// families, rewrites sample lines to carry extra labels, and merges
// families scraped from multiple sources. Samples are kept as verbatim
// text; no numeric value is ever parsed or interpreted.
package promtext

// suffixes a family's base name may carry across its samples, per the
// histogram/summary exposition convention.
var suffixes = []string{"_bucket", "_count", "_sum", "_total", "_created", "_info"}

// Sample is the verbatim text of one metric line, trailing newline included.
type Sample struct {
	Raw string
}

// Family groups samples that share a base metric name.
type Family struct {
	Name    string
	Help    string // verbatim "# HELP ...\n" line, empty if never declared
	Type    string // verbatim "# TYPE ...\n" line, empty if never declared
	Samples []Sample
}

// baseName strips a trailing histogram/summary suffix from name, if any.
func baseName(name string) string {
	for _, suf := range suffixes {
		if b, ok := stripSuffix(name, suf); ok {
			return b
		}
	}
	return name
}

func stripSuffix(name, suffix string) (string, bool) {
	if len(name) <= len(suffix) || name[len(name)-len(suffix):] != suffix {
		return "", false
	}
	return name[:len(name)-len(suffix)], true
}

// belongsTo reports whether sampleName is the base family itself or base
// plus one of the recognized histogram/summary suffixes.
func belongsTo(sampleName, base string) bool {
	if sampleName == base {
		return true
	}
	if len(sampleName) <= len(base) || sampleName[:len(base)] != base {
		return false
	}
	suffix := sampleName[len(base):]
	for _, suf := range suffixes {
		if suffix == suf {
			return true
		}
	}
	return false
}

// SampleName returns the metric name a raw sample line carries, i.e. the
// text before its first `{` or space. Used by the shard builder to hash on
// the sample's own name rather than its family's base name, since
// histogram/summary components differ from the base name by a suffix.
func SampleName(raw string) string {
	return extractMetricName(raw)
}

// extractMetricName returns the portion of a sample line before the first
// `{` or space. Degenerate lines with neither yield the whole line, and a
// line starting with `{` or ` ` yields an empty name rather than panicking.
func extractMetricName(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == '{' || line[i] == ' ' {
			return line[:i]
		}
	}
	return line
}

// firstToken returns the first whitespace-delimited token of s.
func firstToken(s string) string {
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' {
			if start >= 0 {
				return s[start:i]
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start < 0 {
		return ""
	}
	return s[start:]
}
