// Package config loads and validates the proxy's JSON configuration file:
// a JSON Schema pass catches structural mistakes, and a second semantic Go
// pass (mirroring the teacher's two-layer config validation in
// pkg/schema.Validate plus internal/config.Validate) catches what the
// schema can't express, such as label-name syntax.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Source describes one upstream Prometheus exposition endpoint to scrape.
type Source struct {
	URL         string            `json:"url"`
	TimeoutSecs int               `json:"timeout_secs"`
	Headers     map[string]string `json:"headers"`
	ExtraLabels map[string]string `json:"extra_labels"`
}

// Timeout returns the source's configured request deadline.
func (s Source) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// Config is the root of the proxy's configuration file.
type Config struct {
	Listen             string   `json:"listen"`
	NumShards          uint32   `json:"num_shards"`
	ScrapeIntervalSecs int      `json:"scrape_interval_secs"`
	Sources            []Source `json:"sources"`
}

// ScrapeInterval returns the configured cycle period.
func (c Config) ScrapeInterval() time.Duration {
	return time.Duration(c.ScrapeIntervalSecs) * time.Second
}

const defaultTimeoutSecs = 30

// Load reads, schema-validates, decodes, and then semantically validates
// the config file at path. A source with no timeout_secs defaults to 30.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := ValidateSchema(raw); err != nil {
		return nil, fmt.Errorf("validate config schema: %w", err)
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	for i := range cfg.Sources {
		if cfg.Sources[i].TimeoutSecs == 0 {
			cfg.Sources[i].TimeoutSecs = defaultTimeoutSecs
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
