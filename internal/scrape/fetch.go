package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prom-reaper/prom-reaper/internal/config"
	"github.com/prom-reaper/prom-reaper/internal/promtext"
	"github.com/prom-reaper/prom-reaper/internal/shard"
)

// result is one source's outcome for a cycle: either families plus
// SourceStatus on success, or just SourceStatus on failure.
type result struct {
	families []promtext.Family
	status   shard.SourceStatus
}

// fetchOne issues a single GET against src, bounded by its own timeout,
// parses the body into families, and injects src's extra labels. It never
// returns an error to the caller; failures are reported through the
// returned result's status instead, so callers can fan this out without
// one source's failure affecting any other.
func fetchOne(ctx context.Context, client *http.Client, src config.Source) result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, src.Timeout())
	defer cancel()

	status := shard.SourceStatus{URL: src.URL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		status.Error = fmt.Sprintf("build request: %v", err)
		status.Elapsed = time.Since(start)
		return result{status: status}
	}
	for name, value := range src.Headers {
		req.Header.Set(name, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		status.Error = fmt.Sprintf("fetch: %v", err)
		status.Elapsed = time.Since(start)
		return result{status: status}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		status.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		status.Elapsed = time.Since(start)
		return result{status: status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		status.Error = fmt.Sprintf("read body: %v", err)
		status.Elapsed = time.Since(start)
		return result{status: status}
	}

	families := promtext.Parse(string(body))
	promtext.Inject(families, src.ExtraLabels)

	status.Success = true
	status.Elapsed = time.Since(start)
	status.Families = len(families)
	return result{families: families, status: status}
}
