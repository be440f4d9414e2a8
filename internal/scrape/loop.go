// Package scrape runs the periodic, concurrent, per-source-isolated fetch
// cycle and publishes merged, sharded snapshots to a shard.Store.
package scrape

import (
	"context"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"golang.org/x/sync/errgroup"

	"github.com/prom-reaper/prom-reaper/internal/config"
	prlog "github.com/prom-reaper/prom-reaper/internal/log"
	"github.com/prom-reaper/prom-reaper/internal/promtext"
	"github.com/prom-reaper/prom-reaper/internal/shard"
)

// Loop periodically scrapes every configured source and publishes the
// resulting snapshot to a shard.Store.
type Loop struct {
	cfg    *config.Config
	store  *shard.Store
	client *http.Client
	sched  gocron.Scheduler
}

// New builds a Loop bound to cfg and store. Call Start to begin scraping.
func New(cfg *config.Config, store *shard.Store) (*Loop, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Loop{
		cfg:    cfg,
		store:  store,
		client: &http.Client{},
		sched:  sched,
	}, nil
}

// Start registers the periodic cycle and starts the scheduler. The first
// cycle runs immediately rather than waiting a full interval.
func (l *Loop) Start() error {
	_, err := l.sched.NewJob(
		gocron.DurationJob(l.cfg.ScrapeInterval()),
		gocron.NewTask(l.runCycle),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}
	l.sched.Start()
	return nil
}

// Shutdown stops the scheduler. In-flight cycles are allowed to finish.
func (l *Loop) Shutdown() error {
	return l.sched.Shutdown()
}

// runCycle fetches every source concurrently, never letting one source's
// failure affect another, then merges, shards, and publishes on any
// success. On total failure it logs at ERROR and keeps serving the stale
// snapshot.
func (l *Loop) runCycle() {
	ctx := context.Background()
	start := time.Now()

	results := make([]result, len(l.cfg.Sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range l.cfg.Sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = fetchOne(gctx, l.client, src)
			return nil // never propagate a source failure to siblings
		})
	}
	_ = g.Wait() // g.Go never returns a non-nil error; Wait cannot fail here

	var (
		allFamilies []promtext.Family
		statuses    = make([]shard.SourceStatus, 0, len(results))
		anySuccess  bool
	)
	for _, r := range results {
		statuses = append(statuses, r.status)
		if r.status.Success {
			anySuccess = true
			allFamilies = append(allFamilies, r.families...)
		} else {
			prlog.Warnf("scrape: source %s failed after %s: %s", r.status.URL, r.status.Elapsed, r.status.Error)
		}
	}

	if !anySuccess {
		prlog.Errorf("scrape: all %d sources failed this cycle, keeping stale snapshot", len(results))
		return
	}

	merged, stats := promtext.Merge(allFamilies)
	if stats.Duplicates > 0 {
		prlog.Warnf("scrape: merge dropped %d duplicate samples, examples: %v", stats.Duplicates, stats.Examples)
	}

	shards := shard.Build(merged, l.cfg.NumShards)
	l.store.Publish(&shard.Snapshot{
		Shards:     shards,
		LastScrape: start,
		Sources:    statuses,
	})
}
