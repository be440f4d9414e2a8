package promtext

// MergeStats reports how many samples were dropped as duplicates during a
// Merge call, plus up to three human-readable examples for WARN logging.
type MergeStats struct {
	Duplicates int
	Examples   []string
}

const maxExamples = 3

// Merge combines families scraped from every configured source, in source
// order, into a deduplicated list. The same family name may appear more
// than once in the input (once per source); the first source to declare a
// family's HELP/TYPE wins and later declarations never overwrite them. For
// overlapping families, a sample is kept only if its LabelKey has not
// already been accepted — first source wins on colliding series.
func Merge(families []Family) ([]Family, MergeStats) {
	var merged []Family
	index := make(map[string]int)
	var stats MergeStats

	for _, incoming := range families {
		idx, seen := index[incoming.Name]
		if !seen {
			index[incoming.Name] = len(merged)
			merged = append(merged, incoming)
			continue
		}

		existing := &merged[idx]
		seenKeys := make(map[string]struct{}, len(existing.Samples))
		for _, s := range existing.Samples {
			seenKeys[LabelKey(s.Raw)] = struct{}{}
		}

		for _, sample := range incoming.Samples {
			key := LabelKey(sample.Raw)
			if _, dup := seenKeys[key]; dup {
				stats.Duplicates++
				if len(stats.Examples) < maxExamples {
					example := existing.Name
					if key != "" {
						example = existing.Name + "{" + key + "}"
					}
					stats.Examples = append(stats.Examples, example)
				}
				continue
			}
			existing.Samples = append(existing.Samples, sample)
			seenKeys[key] = struct{}{}
		}
	}

	return merged, stats
}
