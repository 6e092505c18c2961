package config

import (
	"fmt"
	"strings"
)

// normalize canonicalizes user-supplied values: expands paths, lowercases
// enums, and sanitizes the extension table so lookups can assume a leading
// dot and lowercase keys.
func (c *Config) normalize() error {
	var err error

	if c.Paths.TargetDir != "" {
		if c.Paths.TargetDir, err = expandPath(c.Paths.TargetDir); err != nil {
			return err
		}
	}
	if c.Paths.LogDir != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return err
		}
	}

	c.History.Backend = strings.ToLower(strings.TrimSpace(c.History.Backend))
	if c.History.Backend == "" {
		c.History.Backend = defaultHistoryBackend
	}
	c.History.File = strings.TrimSpace(c.History.File)

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	if len(c.Extensions) > 0 {
		normalized := make(map[string]string, len(c.Extensions))
		for ext, category := range c.Extensions {
			key, err := NormalizeExtension(ext)
			if err != nil {
				return err
			}
			normalized[key] = strings.TrimSpace(category)
		}
		c.Extensions = normalized
	}

	for i := range c.Rules {
		c.Rules[i].Pattern = strings.TrimSpace(c.Rules[i].Pattern)
		c.Rules[i].Category = strings.TrimSpace(c.Rules[i].Category)
	}

	return nil
}

// NormalizeExtension lowercases ext and guarantees a single leading dot.
func NormalizeExtension(ext string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(ext))
	cleaned = strings.TrimLeft(cleaned, ".")
	if cleaned == "" {
		return "", fmt.Errorf("extension cannot be empty")
	}
	return "." + cleaned, nil
}
