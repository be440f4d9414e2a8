package config

// Sample is printed by the `-gen-config` CLI flag as a starting point for a
// new deployment.
const Sample = `{
  "listen": "0.0.0.0:9090",
  "num_shards": 4,
  "scrape_interval_secs": 15,
  "sources": [
    {
      "url": "http://localhost:9100/metrics",
      "timeout_secs": 30,
      "headers": {},
      "extra_labels": {
        "cluster": "prod"
      }
    }
  ]
}
`
