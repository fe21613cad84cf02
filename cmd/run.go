package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabz/internal/app"
	"github.com/abhisek/vocabz/internal/config"
	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/logger"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/stats"
	"github.com/abhisek/vocabz/internal/store"
)

// env is what every command needs once configuration is resolved.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.Store
	svc   *stats.Service
}

// newEnv loads config, builds the logger and opens the store. A TUI owns
// the terminal, so its logs go to a file next to the database unless one
// is configured.
func newEnv(cmd *cobra.Command, tui bool) (*env, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logOpts := logger.Options{Mode: cfg.Log.Mode, Level: cfg.Log.Level, File: cfg.Log.File}
	if tui && logOpts.File == "" {
		logOpts.File = filepath.Join(filepath.Dir(dbPath), "vocabz.log")
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, err
	}

	var opts []store.Option
	if cfg.Log.SQL {
		opts = append(opts, store.WithDebugLog(log.SQLDebug()))
	}
	st, err := store.Open(dbPath, opts...)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "path", dbPath)

	return &env{
		cfg:   cfg,
		log:   log,
		store: st,
		svc:   stats.NewService(st, stats.WithLogger(log)),
	}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store failed", "error", err)
	}
	e.log.Sync()
}

// loadDeck resolves and loads the selected deck. With no --deck the last
// deck used is picked up from settings.
func (e *env) loadDeck(ctx context.Context) (*deck.Deck, error) {
	settings := e.store.SettingsRepo()
	if e.cfg.Deck == "" {
		var saved string
		if ok, err := settings.Get(ctx, store.SettingSelectedDeck, &saved); err != nil {
			e.log.Warn("read selected deck failed", "error", err)
		} else if ok {
			e.cfg.Deck = saved
		}
	}

	src, err := e.cfg.DeckSource()
	if err != nil {
		return nil, err
	}
	d, err := deck.LoadSource(ctx, src)
	if err != nil {
		return nil, err
	}
	if len(d.Invalid) > 0 {
		e.log.Warn("deck has invalid cards", "deck", d.ID, "invalid", len(d.Invalid), "first", d.Invalid[0].Error())
	}
	e.log.Info("deck loaded", "deck", d.ID, "cards", len(d.Cards))

	selector := e.cfg.Deck
	if selector == "" {
		selector = src.ID
	}
	if err := settings.Set(ctx, store.SettingSelectedDeck, selector); err != nil {
		e.log.Warn("save selected deck failed", "error", err)
	}
	return d, nil
}

// openSession loads the deck and starts a session in the configured
// mode, or the last mode used when none was given explicitly.
func (e *env) openSession(cmd *cobra.Command) (*session.Session, error) {
	ctx := cmd.Context()
	d, err := e.loadDeck(ctx)
	if err != nil {
		return nil, err
	}

	settings := e.store.SettingsRepo()
	mode := e.cfg.Mode
	if !e.cfg.ModeExplicit {
		var saved string
		if ok, err := settings.Get(ctx, store.SettingMode, &saved); err != nil {
			e.log.Warn("read saved mode failed", "error", err)
		} else if ok {
			mode = saved
		}
	}

	sess := session.New(session.Options{
		Service:  e.svc,
		Settings: settings,
		Deck:     d,
		Mode:     mode,
		Jitter:   e.cfg.Jitter,
		Logger:   e.log,
	})
	if err := sess.Load(ctx); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

// runApp opens the store, starts a session, and launches the TUI.
func runApp(cmd *cobra.Command, startInReview bool) error {
	e, err := newEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	sess, err := e.openSession(cmd)
	if err != nil {
		return err
	}
	return app.Run(app.Options{
		Session:       sess,
		Events:        e.store.EventRepo(),
		Logger:        e.log,
		StartInReview: startInReview,
	})
}
