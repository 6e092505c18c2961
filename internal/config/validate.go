package config

import (
	"fmt"
	"regexp"
	"strings"
)

var validBackends = map[string]struct{}{
	"json":   {},
	"sqlite": {},
}

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if _, ok := validBackends[c.History.Backend]; !ok {
		return fmt.Errorf("history.backend: unsupported value %q (expected json or sqlite)", c.History.Backend)
	}
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}

	for ext, category := range c.Extensions {
		if strings.TrimSpace(category) == "" {
			return fmt.Errorf("extensions: %q maps to an empty category", ext)
		}
	}

	for i, rule := range c.Rules {
		if rule.Pattern == "" {
			return fmt.Errorf("rules[%d]: pattern cannot be empty", i)
		}
		if rule.Category == "" {
			return fmt.Errorf("rules[%d]: category cannot be empty", i)
		}
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return fmt.Errorf("rules[%d]: invalid pattern %q: %w", i, rule.Pattern, err)
		}
	}

	return nil
}
