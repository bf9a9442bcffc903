package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"splice/internal/config"
	"splice/internal/logging"
	"splice/internal/projectstore"
	"splice/internal/timeline"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// withStore opens the project database for the duration of fn.
func (c *commandContext) withStore(fn func(*projectstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := projectstore.Open(cfg)
	if err != nil {
		return fmt.Errorf("open project store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// withLockedStore acquires the advisory editor lock before opening the store.
// Mutating commands go through here so two splice processes never edit the
// same database concurrently; a held lock fails fast instead of waiting.
func (c *commandContext) withLockedStore(fn func(*projectstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire editor lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another splice process is editing (lock held at %s)", cfg.LockPath())
	}
	defer func() {
		_ = lock.Unlock()
	}()
	return c.withStore(fn)
}

// resolveProject looks a project up by ID, name, or unique ID prefix and
// converts absence into a user-facing error.
func resolveProject(ctx context.Context, store *projectstore.Store, ref string) (*timeline.Project, error) {
	project, err := store.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("no project matches %q (try `splice project list`)", ref)
	}
	return project, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
