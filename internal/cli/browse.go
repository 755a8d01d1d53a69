package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/agentdeck/internal/catalog"
	"github.com/roach88/agentdeck/internal/loader"
	"github.com/roach88/agentdeck/internal/query"
	"github.com/roach88/agentdeck/internal/render"
	"github.com/roach88/agentdeck/internal/session"
	"github.com/roach88/agentdeck/internal/tui"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Open the interactive browser.

The terminal belongs to the browser while it runs, so logs go to the
configured log_file, or nowhere.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config()

			logger, closeLog, err := browseLogger(cfg.LogFile, rootOpts.Verbose)
			if err != nil {
				_ = rootOpts.formatter(cmd).Error(ErrCodeWriteFailed, err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to open log file", err)
			}
			defer closeLog()

			criteria := query.DefaultCriteria()
			criteria.Sort = cfg.SortKey()
			location := rootOpts.Catalog

			opts := tui.Options{
				Load: func(ctx context.Context) (*catalog.Catalog, error) {
					return loader.New(loader.WithLogger(logger)).Load(ctx, location)
				},
				Theme:    render.ThemeFor(cfg.Theme),
				Plain:    plain,
				Debounce: cfg.SearchDebounce,
				Logger:   logger,
				Session: []session.Option{
					session.WithCriteria(criteria),
					session.WithMode(cfg.Mode()),
				},
			}
			if err := tui.Run(cmd.Context(), opts); err != nil {
				return WrapExitError(ExitFailure, "browser failed", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors and markdown rendering")
	return cmd
}

// browseLogger writes to path, or discards when path is empty.
func browseLogger(path string, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = file.Close() }, nil
}
