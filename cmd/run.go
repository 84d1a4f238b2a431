package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashmaster/internal/app"
	"github.com/abhisek/flashmaster/internal/config"
	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/generate"
	"github.com/abhisek/flashmaster/internal/llm"
	"github.com/abhisek/flashmaster/internal/logging"
	"github.com/abhisek/flashmaster/internal/screen"
	"github.com/abhisek/flashmaster/internal/store"
)

// deps holds what every command that touches data needs.
type deps struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	decks   *deck.Repository
	closers []io.Closer
}

// loadConfig reads .env, then the config file, then applies --db.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Path = p
	}
	return cfg, nil
}

// openStore opens the database alone, for commands that only read events
// or manage the stored collection.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openDeps loads config, opens the log file and the store, and loads the
// deck collection.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	logger, logFile, err := logging.OpenFile(logPath, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	d.logger = logger
	d.closers = append(d.closers, logFile)

	dbPath, err := cfg.DBPath()
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append([]io.Closer{st}, d.closers...)

	repo, err := deck.Open(cmd.Context(), st.DeckStore(), deck.WithLogger(logger))
	if err != nil {
		d.Close()
		return nil, err
	}
	d.decks = repo

	logger.Debug("started", "db", dbPath, "decks", repo.Len())
	return d, nil
}

// Close releases the store and the log file.
func (d *deps) Close() {
	for _, c := range d.closers {
		c.Close()
	}
}

// generator builds the flashcard generator from the configured provider.
// It returns llm.ErrNotConfigured when no API key is available.
func (d *deps) generator(ctx context.Context) (generate.Generator, error) {
	provider, err := llm.NewProvider(ctx, d.cfg.Provider(), d.store.EventRepo(), d.logger)
	if err != nil {
		return nil, err
	}
	return generate.New(provider), nil
}

// timeout returns the per-request generation timeout.
func (d *deps) timeout() time.Duration {
	t, _ := d.cfg.Timeout()
	return t
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startDeck string) error {
	ctx := cmd.Context()
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	env := &screen.Env{
		Decks:   d.decks,
		Events:  d.store.EventRepo(),
		Logger:  d.logger,
		Timeout: d.timeout(),
	}

	gen, err := d.generator(ctx)
	switch {
	case err == nil:
		env.Generator = gen
	case errors.Is(err, llm.ErrNotConfigured):
		d.logger.Info("no LLM provider configured, AI import disabled")
		env.GeneratorErr = err
	default:
		d.logger.Warn("LLM provider unavailable", "err", err)
		env.GeneratorErr = err
	}

	return app.Run(ctx, env, app.Options{StartDeck: startDeck})
}
