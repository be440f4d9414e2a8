package promtext

import "strings"

// Parse groups the lines of a Prometheus exposition-format payload into an
// ordered list of Family, preserving the original text of every sample and
// HELP/TYPE line. Families are returned in first-seen order; families that
// end up with zero samples (orphaned HELP/TYPE declarations) are dropped.
func Parse(text string) []Family {
	var families []Family
	index := make(map[string]int)

	// currentBase/currentIdx track the family a bare HELP/TYPE declaration
	// put us "inside" of, so that samples immediately following it (with or
	// without a recognized suffix) are grouped with it.
	var currentBase string
	haveCurrent := false
	currentIdx := -1

	getOrInsert := func(name string) int {
		if idx, ok := index[name]; ok {
			return idx
		}
		families = append(families, Family{Name: name})
		idx := len(families) - 1
		index[name] = idx
		return idx
	}

	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# HELP "):
			name := firstToken(line[len("# HELP "):])
			idx := getOrInsert(name)
			families[idx].Help = line + "\n"
			currentBase, haveCurrent, currentIdx = name, true, idx

		case strings.HasPrefix(line, "# TYPE "):
			name := firstToken(line[len("# TYPE "):])
			idx := getOrInsert(name)
			families[idx].Type = line + "\n"
			currentBase, haveCurrent, currentIdx = name, true, idx

		case strings.HasPrefix(line, "#"):
			// other comment lines are ignored

		default:
			sampleName := extractMetricName(line)

			var idx int
			if haveCurrent && belongsTo(sampleName, currentBase) {
				idx = currentIdx
			} else {
				base := baseName(sampleName)
				idx = getOrInsert(base)
				currentBase, haveCurrent, currentIdx = base, true, idx
			}

			families[idx].Samples = append(families[idx].Samples, Sample{Raw: line + "\n"})
		}
	}

	out := families[:0]
	for _, f := range families {
		if len(f.Samples) > 0 {
			out = append(out, f)
		}
	}
	return out
}
