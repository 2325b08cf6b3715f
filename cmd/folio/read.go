package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/justyntemme/folio/internal/book"
	"github.com/justyntemme/folio/internal/storage"
	"github.com/justyntemme/folio/internal/ui"
	"github.com/justyntemme/folio/internal/ui/terminal"
)

var errNoBook = errors.New("no book given and nothing was read before")

func runRead(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	log := env.Log.Named("read")

	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many books", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	path := cmd.Args().First()
	if path == "" {
		if path = env.Cfg.LastBook(); path == "" {
			return errNoBook
		}
		log.Info("Reopening last book", zap.String("path", path))
	}
	if abs, er := filepath.Abs(path); er == nil {
		path = abs
	}

	b, err := book.Open(path, log.Named("book"))
	if err != nil {
		return fmt.Errorf("unable to open book: %w", err)
	}

	backend := env.Cfg.Storage.Backend
	if cmd.Bool("ephemeral") {
		backend = storage.BackendMemory
	}
	kv, err := storage.Open(backend, env.Cfg.StoragePath())
	if err != nil {
		return fmt.Errorf("unable to open preferences: %w", err)
	}
	defer func() {
		if er := storage.Close(kv); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close preferences: %w", er))
		}
	}()

	if er := env.Cfg.AddRecentBook(path, b.Title); er != nil {
		log.Warn("Unable to remember book", zap.String("path", path), zap.Error(er))
	}

	mode := terminal.TermModeNone
	if env.Cfg.ShowImages && !cmd.Bool("no-images") {
		mode = terminal.DetectTerminalMode()
	}
	log.Debug("Starting reader", zap.String("book", b.Title), zap.String("storage", backend), zap.Stringer("images", mode))

	app, err := ui.NewApp(b, kv, ui.Options{
		SwipeThreshold: env.Cfg.SwipeThreshold,
		ImageMode:      mode,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("unable to start reader: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("reader failed: %w", err)
	}
	return nil
}
