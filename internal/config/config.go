package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// HistoryDirName is the hidden directory inside the target directory that
// holds the persisted History. Its entries are never organized.
const HistoryDirName = ".tidy"

// Paths contains directory configuration.
type Paths struct {
	TargetDir string `toml:"target_dir"`
	LogDir    string `toml:"log_dir"`
}

// History contains configuration for the persisted operation History.
type History struct {
	// Backend selects the on-disk encoding: "json" (default) or "sqlite".
	Backend string `toml:"backend"`
	// File overrides the history location. Relative paths resolve against
	// the target directory. Empty means <target>/.tidy/history.<ext>.
	File string `toml:"file"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Rule is a custom categorization rule: the first rule whose pattern matches
// a filename decides its category, ahead of the extension table.
type Rule struct {
	Pattern  string `toml:"pattern"`
	Category string `toml:"category"`
}

// Config encapsulates all configuration values for tidy.
type Config struct {
	Paths   Paths   `toml:"paths"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`

	// Extensions maps a file extension (with leading dot) to a category,
	// overlaying the built-in table. Last write wins per extension.
	Extensions map[string]string `toml:"extensions"`

	// Rules are evaluated in order before the extension table.
	Rules []Rule `toml:"rules"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tidy/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tidy.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Save writes the configuration back to path as TOML. The CLI uses this to
// persist rules and extension mappings added on the command line.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the directories tidy needs to operate.
func (c *Config) EnsureDirectories() error {
	if dir := strings.TrimSpace(c.Paths.LogDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath resolves the history file location for the given target
// directory, honoring the configured override.
func (c *Config) HistoryPath(targetDir string) string {
	file := strings.TrimSpace(c.History.File)
	if file == "" {
		name := "history.json"
		if c.History.Backend == "sqlite" {
			name = "history.db"
		}
		return filepath.Join(targetDir, HistoryDirName, name)
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(targetDir, file)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
