package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/justyntemme/folio/internal/reader"
	"github.com/justyntemme/folio/internal/storage"
)

// withPreferences opens the configured backend for the duration of fn
func withPreferences(ctx context.Context, fn func(*localEnv, storage.KV, *reader.Preferences) error) (err error) {
	env := envFromContext(ctx)

	kv, err := storage.Open(env.Cfg.Storage.Backend, env.Cfg.StoragePath())
	if err != nil {
		return fmt.Errorf("unable to open preferences: %w", err)
	}
	defer func() {
		if er := storage.Close(kv); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close preferences: %w", er))
		}
	}()

	prefs := reader.NewPreferences(kv, nil, env.Log.Named("prefs"))
	prefs.Restore()
	return fn(env, kv, prefs)
}

func showPrefs(ctx context.Context, _ *cli.Command) error {
	return withPreferences(ctx, func(env *localEnv, kv storage.KV, prefs *reader.Preferences) error {
		return printPrefs(os.Stdout, env, kv, prefs)
	})
}

// printPrefs writes the effective preferences followed by the raw stored entries
func printPrefs(w io.Writer, env *localEnv, kv storage.KV, prefs *reader.Preferences) error {
	fmt.Fprintf(w, "storage:    %s %s\n", env.Cfg.Storage.Backend, env.Cfg.StoragePath())
	fmt.Fprintf(w, "%-11s %s\n", reader.KeyTheme+":", prefs.Theme())
	fmt.Fprintf(w, "%-11s %d\n", reader.KeyFontLevel+":", prefs.FontLevel())

	keys, err := kv.Keys()
	if err != nil {
		return fmt.Errorf("unable to list preferences: %w", err)
	}
	if len(keys) == 0 {
		fmt.Fprintln(w, "stored:     (nothing, defaults in effect)")
		return nil
	}
	fmt.Fprintln(w, "stored:")
	for _, k := range keys {
		v, _, err := kv.Get(k)
		if err != nil {
			return fmt.Errorf("unable to read %q: %w", k, err)
		}
		fmt.Fprintf(w, "  %s = %q\n", k, v)
	}
	return nil
}

func resetPrefs(ctx context.Context, _ *cli.Command) error {
	return withPreferences(ctx, func(env *localEnv, _ storage.KV, prefs *reader.Preferences) error {
		if err := prefs.Reset(); err != nil {
			return fmt.Errorf("unable to reset preferences: %w", err)
		}
		env.Log.Info("Preferences reset", zap.String("storage", env.Cfg.Storage.Backend))
		return nil
	})
}
