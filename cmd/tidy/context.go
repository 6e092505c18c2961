package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tidy/internal/config"
	"tidy/internal/journal"
	"tidy/internal/logging"
	"tidy/internal/organizer"
	"tidy/internal/rules"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
	})
	return c.config, c.configErr
}

// session bundles everything one command invocation needs to act on a target
// directory. Close releases the history store.
type session struct {
	cfg       *config.Config
	target    string
	table     *rules.Table
	organizer *organizer.Organizer
	store     journal.Store
	logger    *slog.Logger
}

// openSession resolves the target directory and wires the rules table, the
// journal, and the organizer. Commands that only read pass quiet=true to
// keep the operation log untouched.
func (c *commandContext) openSession(ctx context.Context, targetArg string, quiet bool) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	target, err := resolveTarget(targetArg, cfg)
	if err != nil {
		return nil, err
	}

	logger := logging.NewNop()
	if !quiet {
		logger, err = logging.NewFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("initialize logging: %w", err)
		}
	}

	table, err := rules.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	store, err := journal.OpenStore(cfg.History.Backend, cfg.HistoryPath(target), logger)
	if err != nil {
		return nil, err
	}
	j, err := journal.Open(ctx, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	// The organizer reads the target from the config, which may have been
	// overridden on the command line.
	sessionCfg := *cfg
	sessionCfg.Paths.TargetDir = target

	return &session{
		cfg:       &sessionCfg,
		target:    target,
		table:     table,
		organizer: organizer.New(&sessionCfg, table, j, logger),
		store:     store,
		logger:    logger,
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// resolveTarget picks the directory to operate on: the positional argument,
// then paths.target_dir, then the working directory. The result must be an
// existing directory.
func resolveTarget(targetArg string, cfg *config.Config) (string, error) {
	candidate := strings.TrimSpace(targetArg)
	if candidate == "" {
		candidate = strings.TrimSpace(cfg.Paths.TargetDir)
	}
	if candidate == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		candidate = wd
	}

	expanded, err := config.ExpandPath(candidate)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("target directory %s does not exist", expanded)
		}
		return "", fmt.Errorf("inspect target directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("target %s is not a directory", expanded)
	}
	return expanded, nil
}

func targetFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
