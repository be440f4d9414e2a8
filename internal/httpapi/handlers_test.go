package httpapi

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prom-reaper/prom-reaper/internal/promtext"
	"github.com/prom-reaper/prom-reaper/internal/shard"
	"github.com/prom-reaper/prom-reaper/pkg/hasher"
)

func newTestServer(snap *shard.Snapshot) (*Server, *httptest.Server) {
	store := shard.NewStore()
	if snap != nil {
		store.Publish(snap)
	}
	s := New(store, prometheus.NewRegistry())
	return s, httptest.NewServer(s.Router())
}

func buildSnapshot(n uint32, text string, sources []shard.SourceStatus) *shard.Snapshot {
	families := promtext.Parse(text)
	return &shard.Snapshot{
		Shards:  shard.Build(families, n),
		Sources: sources,
	}
}

func TestShardNotFoundOutOfRange(t *testing.T) {
	_, srv := newTestServer(buildSnapshot(4, "up 1\n", []shard.SourceStatus{{URL: "x", Success: true}}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics/shard/99")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "shard 99 not found, valid range is 0..4\n", string(body))
}

func TestShardBeforeFirstScrapeReturns503(t *testing.T) {
	_, srv := newTestServer(nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics/shard/0")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthBeforeAndAfterScrape(t *testing.T) {
	s, srv := newTestServer(nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()

	s.store.Publish(buildSnapshot(1, "up 1\n", []shard.SourceStatus{{URL: "x", Success: true}}))

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthAfterScrapeReturnsOK(t *testing.T) {
	_, srv := newTestServer(buildSnapshot(1, "up 1\n", []shard.SourceStatus{{URL: "x", Success: true}}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}

func TestShardGzipRoundTripsToSamePlainBody(t *testing.T) {
	_, srv := newTestServer(buildSnapshot(1, "up 1\n", []shard.SourceStatus{{URL: "x", Success: true}}))
	defer srv.Close()

	plainResp, err := http.Get(srv.URL + "/metrics/shard/0")
	require.NoError(t, err)
	defer plainResp.Body.Close()
	plainBody, _ := io.ReadAll(plainResp.Body)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/metrics/shard/0", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	gzResp, err := http.DefaultTransport.RoundTrip(req)
	require.NoError(t, err)
	defer gzResp.Body.Close()

	require.Equal(t, "gzip", gzResp.Header.Get("Content-Encoding"))
	zr, err := gzip.NewReader(gzResp.Body)
	require.NoError(t, err)
	decompressed, _ := io.ReadAll(zr)

	assert.Equal(t, string(plainBody), string(decompressed))
}

func TestStatusReportsPerSourceSuccessAndFailure(t *testing.T) {
	snap := buildSnapshot(2, "up 1\n", []shard.SourceStatus{
		{URL: "http://good", Success: true, Families: 1},
		{URL: "http://bad", Success: false, Error: "timeout"},
	})
	_, srv := newTestServer(snap)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Sources, 2)
	assert.True(t, got.Sources[0].Success)
	assert.False(t, got.Sources[1].Success)
}

func TestStatusBeforeFirstScrapeReturns503(t *testing.T) {
	_, srv := newTestServer(nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestExtraLabelsAffectRenderedBodyAndShardID(t *testing.T) {
	families := promtext.Parse("up 1\n")
	promtext.Inject(families, map[string]string{"cluster": "prod"})
	snap := &shard.Snapshot{
		Shards:  shard.Build(families, 4),
		Sources: []shard.SourceStatus{{URL: "x", Success: true}},
	}
	_, srv := newTestServer(snap)
	defer srv.Close()

	want := int(hasher.ShardOf("up", `cluster="prod"`, 4))
	found := -1
	for i := 0; i < 4; i++ {
		resp, err := http.Get(srv.URL + "/metrics/shard/" + strconv.Itoa(i))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if strings.Contains(string(body), `up{cluster="prod"} 1`) {
			found = i
		}
	}
	assert.Equal(t, want, found, "expected up{cluster=\"prod\"} 1 in the shard of \"up\" + NUL + cluster=\"prod\"")
}

func TestMetricsEndpointServesSelfMetrics(t *testing.T) {
	_, srv := newTestServer(buildSnapshot(1, "up 1\n", []shard.SourceStatus{{URL: "x", Success: true}}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "prom_reaper_num_shards")
}

