package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var configSchema = `
{
  "type": "object",
  "required": ["listen", "num_shards", "scrape_interval_secs", "sources"],
  "properties": {
    "listen": {
      "description": "host:port the HTTP surface listens on.",
      "type": "string",
      "minLength": 1
    },
    "num_shards": {
      "description": "Number of shards the series space is partitioned into.",
      "type": "integer",
      "minimum": 1
    },
    "scrape_interval_secs": {
      "description": "Interval, in seconds, between scrape cycles.",
      "type": "integer",
      "minimum": 1
    },
    "sources": {
      "description": "Upstream Prometheus exposition endpoints to scrape.",
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["url"],
        "properties": {
          "url": {
            "type": "string",
            "minLength": 1
          },
          "timeout_secs": {
            "type": "integer",
            "minimum": 1
          },
          "headers": {
            "type": "object",
            "additionalProperties": {
              "type": "string"
            }
          },
          "extra_labels": {
            "type": "object",
            "additionalProperties": {
              "type": "string"
            }
          }
        }
      }
    }
  }
}
`

// ValidateSchema checks raw against the compiled configSchema, the
// structural layer of config validation.
func ValidateSchema(raw []byte) error {
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode config for schema validation: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return err
	}
	return nil
}
