package httpapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/prom-reaper/prom-reaper/internal/shard"
)

// selfMetrics holds this process's own Prometheus instrumentation,
// registered with promauto the way the rest of the ecosystem does, and
// refreshed from the current Snapshot on every /metrics scrape.
type selfMetrics struct {
	lastScrapeAge   prometheus.Gauge
	numShards       prometheus.Gauge
	shardSeries     *prometheus.GaugeVec
	shardFamilies   *prometheus.GaugeVec
	shardSizeBytes  *prometheus.GaugeVec
	sourceUp        *prometheus.GaugeVec
	sourceScrapeSec *prometheus.GaugeVec
}

func newSelfMetrics(reg prometheus.Registerer) *selfMetrics {
	factory := promauto.With(reg)
	return &selfMetrics{
		lastScrapeAge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "prom_reaper_last_scrape_age_seconds",
			Help: "Seconds elapsed since the last successful scrape cycle published a snapshot.",
		}),
		numShards: factory.NewGauge(prometheus.GaugeOpts{
			Name: "prom_reaper_num_shards",
			Help: "Number of shards the series space is partitioned into.",
		}),
		shardSeries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "prom_reaper_shard_series",
			Help: "Number of series currently assigned to a shard.",
		}, []string{"shard"}),
		shardFamilies: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "prom_reaper_shard_families",
			Help: "Number of distinct metric families currently assigned to a shard.",
		}, []string{"shard"}),
		shardSizeBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "prom_reaper_shard_size_bytes",
			Help: "Rendered exposition body size, in bytes, of a shard.",
		}, []string{"shard"}),
		sourceUp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "prom_reaper_source_up",
			Help: "1 if the most recent scrape of this source succeeded, 0 otherwise.",
		}, []string{"url"}),
		sourceScrapeSec: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "prom_reaper_source_scrape_duration_seconds",
			Help: "Duration of the most recent scrape attempt against this source.",
		}, []string{"url"}),
	}
}

// refresh overwrites every self-metric from snap. Called on each /metrics
// request rather than on a timer, so the exposed values always reflect the
// snapshot currently being served elsewhere.
func (m *selfMetrics) refresh(snap *shard.Snapshot) {
	m.lastScrapeAge.Set(time.Since(snap.LastScrape).Seconds())
	m.numShards.Set(float64(len(snap.Shards)))

	for i, sh := range snap.Shards {
		label := shardLabel(i)
		m.shardSeries.WithLabelValues(label).Set(float64(sh.Series))
		m.shardFamilies.WithLabelValues(label).Set(float64(sh.Families))
		m.shardSizeBytes.WithLabelValues(label).Set(float64(len(sh.Text)))
	}

	for _, src := range snap.Sources {
		up := 0.0
		if src.Success {
			up = 1.0
		}
		m.sourceUp.WithLabelValues(src.URL).Set(up)
		m.sourceScrapeSec.WithLabelValues(src.URL).Set(src.Elapsed.Seconds())
	}
}
