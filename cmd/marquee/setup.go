package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/config"
	"github.com/aretw0/marquee/internal/logging"
	"github.com/aretw0/marquee/pkg/adapters/file"
	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/adapters/redis"
	"github.com/aretw0/marquee/pkg/adapters/sqlite"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/persistence/middleware"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/spf13/cobra"
)

// DefaultDatabasePath is used by the sqlite backend when no path is configured.
const DefaultDatabasePath = "/var/tmp/marquee.db"

// EnvEncryptionKey overrides store.encryption_key from the config file.
const EnvEncryptionKey = "MARQUEE_ENCRYPTION_KEY"

// app bundles what every command needs: the resolved config, a logger and
// the stores, plus whatever must be closed on exit.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	settings ports.SettingsStore
	texts    ports.TextStore
	closers  []io.Closer
}

// setup resolves flags and config, builds the logger and opens the stores.
func setup(ctx context.Context, cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	backend, _ := cmd.Flags().GetString("backend")
	storePath, _ := cmd.Flags().GetString("store-path")
	debug, _ := cmd.Flags().GetBool("debug")
	logFile, _ := cmd.Flags().GetString("log-file")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if backend != "" {
		cfg.Store.Backend = backend
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}

	a := &app{cfg: cfg}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if logFile != "" {
		logger, closer, err := logging.NewWithFile(level, logFile)
		if err != nil {
			return nil, err
		}
		a.logger = logger
		a.closers = append(a.closers, closer)
	} else {
		a.logger = logging.New(level)
	}

	if err := a.openStores(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	a.logger.Debug("Stores opened",
		"backend", cfg.Store.Backend,
		"settings", ports.LocationOf(a.settings),
		"text", ports.LocationOf(a.texts),
	)
	return a, nil
}

func (a *app) openStores(ctx context.Context) error {
	textPath := a.cfg.Host.FilePathOr(domain.DefaultTextPath)

	switch a.cfg.Store.Backend {
	case config.BackendFile:
		a.settings = file.NewSettingsStore(a.cfg.Store.Path)
		a.texts = file.NewTextStore(textPath)
	case config.BackendMemory:
		a.settings = memory.NewSettingsStore()
		a.texts = memory.NewTextStore()
	case config.BackendRedis:
		var opts []redis.Option
		if a.cfg.Store.Prefix != "" {
			opts = append(opts, redis.WithPrefix(a.cfg.Store.Prefix))
		}
		store := redis.New(a.cfg.Store.Address, a.cfg.Store.Password, a.cfg.Store.DB, opts...)
		a.closers = append(a.closers, store)
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		a.settings = store.Settings()
		a.texts = store.Text()
	case config.BackendSQLite:
		path := a.cfg.Store.Path
		if path == "" {
			path = DefaultDatabasePath
		}
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, store)
		a.settings = store.Settings()
		a.texts = store.Text()
	default:
		return fmt.Errorf("unknown store backend %q", a.cfg.Store.Backend)
	}

	key := a.cfg.Store.EncryptionKey
	if env := os.Getenv(EnvEncryptionKey); env != "" {
		key = env
	}
	if key == "" {
		return nil
	}
	activeKey, err := middleware.ParseKey(key)
	if err != nil {
		return fmt.Errorf("invalid encryption key: %w", err)
	}
	encrypt, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:      activeKey,
		AllowPlaintext: true,
	})
	if err != nil {
		return err
	}
	a.texts = middleware.Chain(a.texts, encrypt)
	return nil
}

// engine builds the Engine over the opened stores.
func (a *app) engine(ctx context.Context, opts ...marquee.Option) *marquee.Engine {
	opts = append([]marquee.Option{
		marquee.WithSettingsStore(a.settings),
		marquee.WithTextStore(a.texts),
		marquee.WithLogger(a.logger),
	}, opts...)
	return marquee.New(ctx, a.cfg.Host, opts...)
}

// Close releases stores and log files in reverse order of opening.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
