package config

import (
	"fmt"
	"regexp"
)

// labelNamePattern matches the names extra_labels entries are allowed to
// use, per the Prometheus exposition format's own label name grammar.
var labelNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate runs the semantic checks the JSON Schema can't express: label
// name syntax, and any cross-field invariant.
func Validate(cfg *Config) error {
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("sources must be nonempty")
	}

	for i, src := range cfg.Sources {
		if src.URL == "" {
			return fmt.Errorf("sources[%d]: url must be nonempty", i)
		}
		if src.TimeoutSecs <= 0 {
			return fmt.Errorf("sources[%d]: timeout_secs must be positive, got %d", i, src.TimeoutSecs)
		}
		for name := range src.ExtraLabels {
			if !labelNamePattern.MatchString(name) {
				return fmt.Errorf("sources[%d]: extra_labels name %q does not match %s", i, name, labelNamePattern)
			}
		}
	}

	return nil
}
