// Package shard builds per-shard Prometheus exposition bodies from merged
// families and publishes them as an immutable, atomically-swappable
// Snapshot. Nothing here mutates a Snapshot once it has been built; a new
// scrape cycle always constructs a fresh one and swaps it in.
package shard

import (
	"bytes"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/prom-reaper/prom-reaper/internal/promtext"
	"github.com/prom-reaper/prom-reaper/pkg/hasher"
)

// Shard is the pre-rendered, immutable body for one shard id.
type Shard struct {
	Text     string // exposition-format text, ready to serve as-is
	Gzip     []byte // gzip-compressed copy of Text, computed once at build time
	Families int
	Series   int
}

// SourceStatus is the outcome of one source's fetch in a scrape cycle.
type SourceStatus struct {
	URL      string
	Success  bool
	Elapsed  time.Duration
	Families int
	Error    string
}

// Snapshot is the immutable result of one successful scrape cycle: every
// shard's rendered body plus the health of every configured source.
type Snapshot struct {
	Shards     []Shard
	LastScrape time.Time
	Sources    []SourceStatus
}

// Build partitions families into n shards. Each sample is assigned a shard
// by hashing its metric name and LabelKey; a family's HELP/TYPE lines are
// emitted into a shard at most once, the first time any of its samples
// lands there. Family and sample order within a shard follows input order.
func Build(families []promtext.Family, n uint32) []Shard {
	type buf struct {
		b        bytes.Buffer
		families map[string]struct{}
		series   int
	}

	bufs := make([]buf, n)
	for i := range bufs {
		bufs[i].families = make(map[string]struct{})
	}

	for _, f := range families {
		for _, s := range f.Samples {
			name := sampleBaseName(s.Raw, f.Name)
			key := promtext.LabelKey(s.Raw)
			id := hasher.ShardOf(name, key, n)

			shard := &bufs[id]
			if _, seen := shard.families[f.Name]; !seen {
				shard.families[f.Name] = struct{}{}
				if f.Help != "" {
					shard.b.WriteString(f.Help)
				}
				if f.Type != "" {
					shard.b.WriteString(f.Type)
				}
			}
			shard.b.WriteString(s.Raw)
			shard.series++
		}
	}

	out := make([]Shard, n)
	for i := range bufs {
		text := bufs[i].b.String()
		out[i] = Shard{
			Text:     text,
			Gzip:     mustGzip(text),
			Families: len(bufs[i].families),
			Series:   bufs[i].series,
		}
	}
	return out
}

// sampleBaseName returns the metric name used for shard assignment. A
// sample's own raw line carries its exact name (which, for histogram and
// summary components, differs from the family's base name by a known
// suffix); the hasher keys on that exact name, matching the original
// implementation's per-sample, not per-family, shard_of call.
func sampleBaseName(raw, familyName string) string {
	name := promtext.SampleName(raw)
	if name == "" {
		return familyName
	}
	return name
}

func mustGzip(text string) []byte {
	var out bytes.Buffer
	w := gzip.NewWriter(&out)
	if _, err := w.Write([]byte(text)); err != nil {
		panic(err) // bytes.Buffer never fails to accept a write
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return out.Bytes()
}
