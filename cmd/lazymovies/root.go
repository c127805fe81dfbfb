package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/lazymovies/internal/app"
	"github.com/rebeliceyang/lazymovies/internal/config"
	"github.com/rebeliceyang/lazymovies/internal/history"
	"github.com/rebeliceyang/lazymovies/internal/logger"
	"github.com/rebeliceyang/lazymovies/internal/store"
	"github.com/rebeliceyang/lazymovies/internal/watchlist"
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	configFile string
	source     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "lazymovies",
		Short:         "Browse, filter and inspect a movie list in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: search user config dir, . and ./config)")
	cmd.PersistentFlags().StringVar(&opts.source, "source", "", "movie source: http(s) URL, JSON file path or postgres DSN")

	cmd.AddCommand(newExportCmd(opts), newHistoryCmd(opts))
	return cmd
}

// setup loads configuration and starts file logging. A config that cannot be
// loaded falls back to defaults.
func (o *rootOptions) setup() *config.Config {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.GetDefaults()
	}
	if o.source != "" {
		cfg.Source.URL = o.source
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	return cfg
}

func newStore(cfg *config.Config) (*store.Store, error) {
	src, err := store.NewSource(store.SourceOptions{
		URL:     cfg.Source.URL,
		Timeout: cfg.Source.Timeout,
		Table:   cfg.Source.Table,
	})
	if err != nil {
		return nil, err
	}
	return store.New(src), nil
}

func runTUI(opts *rootOptions) error {
	cfg := opts.setup()
	defer func() { _ = logger.Close() }()

	st, err := newStore(cfg)
	if err != nil {
		return err
	}

	deps := app.Deps{Store: st}

	wl, err := watchlist.NewManager(cfg.Watchlist.Path)
	if err != nil {
		logger.Err(err, "watchlist disabled")
	} else {
		deps.Watchlist = wl
	}

	if cfg.History.Enabled {
		h, err := history.NewStore(cfg.History.Path)
		if err != nil {
			logger.Err(err, "history disabled")
		} else {
			defer func() {
				if err := h.Prune(cfg.History.MaxEntries); err != nil {
					logger.Err(err, "failed to prune history")
				}
				_ = h.Close()
			}()
			deps.History = h
		}
	}

	// Row zones are registered with the global manager on every frame
	zone.NewGlobal()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(app.New(cfg, deps), programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
