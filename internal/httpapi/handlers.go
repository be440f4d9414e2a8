// Package httpapi exposes the sharded metrics surface: per-shard scrape
// endpoints, health/status introspection, and this process's own
// self-metrics.
package httpapi

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prom-reaper/prom-reaper/internal/shard"
)

// Server wires the shard store to the HTTP surface described by this
// module's external interface.
type Server struct {
	store       *shard.Store
	metrics     *selfMetrics
	promHandler http.Handler
}

// New builds a Server backed by store. reg is the registry self-metrics
// are registered against; pass prometheus.NewRegistry() in production (one
// per process) or a fresh registry per test.
func New(store *shard.Store, reg *prometheus.Registry) *Server {
	return &Server{
		store:       store,
		metrics:     newSelfMetrics(reg),
		promHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
}

// shardLabel renders a shard id as the "shard" label value.
func shardLabel(i int) string {
	return strconv.Itoa(i)
}

// hasScraped reports whether the store's current snapshot was produced by
// a real scrape cycle, as opposed to the empty snapshot a Store starts
// with.
func hasScraped(snap *shard.Snapshot) bool {
	return len(snap.Sources) > 0
}

func (s *Server) shardHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Load()
	if !hasScraped(snap) {
		http.Error(w, "metrics not yet available", http.StatusServiceUnavailable)
		return
	}

	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 0 || id >= len(snap.Shards) {
		http.Error(w, fmt.Sprintf("shard %s not found, valid range is 0..%d", idStr, len(snap.Shards)), http.StatusNotFound)
		return
	}

	sh := snap.Shards[id]
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	if acceptsGzip(r) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(sh.Gzip)
		return
	}
	w.Write([]byte(sh.Text))
}

// acceptsGzip reports whether the request's Accept-Encoding lists gzip.
// Handled manually (rather than via handlers.CompressHandler) because the
// shard body is already gzipped once at build time; wrapping this route in
// CompressHandler would gzip it a second time.
func acceptsGzip(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(enc) == "gzip" {
			return true
		}
	}
	return false
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if !hasScraped(s.store.Load()) {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

type statusSource struct {
	URL            string  `json:"url"`
	Success        bool    `json:"success"`
	DurationMs     float64 `json:"duration_ms"`
	MetricFamilies int     `json:"metric_families"`
}

type statusShard struct {
	ID        int `json:"id"`
	SizeBytes int `json:"size_bytes"`
	Families  int `json:"families"`
	Series    int `json:"series"`
}

type statusResponse struct {
	NumShards         int            `json:"num_shards"`
	LastScrapeAgoSecs float64        `json:"last_scrape_ago_secs"`
	Sources           []statusSource `json:"sources"`
	Shards            []statusShard  `json:"shards"`
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Load()
	if !hasScraped(snap) {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}

	resp := statusResponse{
		NumShards:         len(snap.Shards),
		LastScrapeAgoSecs: time.Since(snap.LastScrape).Seconds(),
	}
	for _, src := range snap.Sources {
		resp.Sources = append(resp.Sources, statusSource{
			URL:            src.URL,
			Success:        src.Success,
			DurationMs:     float64(src.Elapsed.Microseconds()) / 1000,
			MetricFamilies: src.Families,
		})
	}
	for i, sh := range snap.Shards {
		resp.Shards = append(resp.Shards, statusShard{
			ID:        i,
			SizeBytes: len(sh.Text),
			Families:  sh.Families,
			Series:    sh.Series,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// metricsHandler refreshes self-metrics from the current snapshot, then
// delegates rendering to promhttp. Before the first scrape, last-scrape
// age is exposed as NaN rather than a misleadingly small number.
func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Load()
	if hasScraped(snap) {
		s.metrics.refresh(snap)
	} else {
		s.metrics.lastScrapeAge.Set(math.NaN())
		s.metrics.numShards.Set(0)
	}
	s.promHandler.ServeHTTP(w, r)
}
