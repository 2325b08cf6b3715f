package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/justyntemme/folio/internal/config"
	"github.com/justyntemme/folio/internal/logging"
)

const appName = "folio"

// initializeAppContext loads configuration and prepares logging after the
// command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, help will be shown
		return ctx, nil
	}

	env := envFromContext(ctx)

	configFile := cmd.String("config")
	if len(configFile) > 0 {
		env.Cfg, err = config.LoadFrom(configFile)
	} else {
		env.Cfg, err = config.Load()
	}
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}

	opts := logging.Options{
		FileLevel:   env.Cfg.Logging.Level,
		Destination: env.Cfg.LogPath(),
	}
	if cmd.Bool("debug") {
		opts.FileLevel = logging.LevelDebug
	}
	// The reader owns the terminal, everything else may talk to the console
	if cmd.Args().First() != "read" {
		opts.ConsoleLevel = logging.LevelNormal
		opts.Stdout = os.Stdout
		opts.Stderr = os.Stderr
	}
	if env.Log, err = logging.New(opts); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()), zap.String("config", env.Cfg.Path()))
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	if env.Log == nil {
		return nil
	}

	env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	if er := env.Log.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close log: %w", er))
	}
	return
}

// Errors from subcommands are regular errors, logged once here and turned
// into exit code 1 by main.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if env := envFromContext(ctx); env.Log != nil {
		env.Log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "terminal reader for illustrated books",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (JSON)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level regardless of configuration"},
		},
		Commands: []*cli.Command{
			{
				Name:         "read",
				Usage:        "Opens a book in the terminal reader",
				OnUsageError: usageErrorHandler,
				Action:       runRead,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "ephemeral", Usage: "keep preferences in memory for this session only"},
					&cli.BoolFlag{Name: "no-images", Usage: "show illustration placeholders instead of inline images"},
				},
				ArgsUsage: "[BOOK]",
				CustomHelpTemplate: fmt.Sprintf(`%s
BOOK:
    path to a book manifest (YAML) or an HTML book, if absent - the most
    recently read book
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "illustrate",
				Usage:        "Generates illustrations for a list of prompts",
				OnUsageError: usageErrorHandler,
				Action:       runIllustrate,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prompts", Aliases: []string{"p"}, Required: true, Usage: "read prompts from `FILE` (YAML)"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write images to `DIR` (default from configuration)"},
					&cli.StringFlag{Name: "env", Value: ".env", Usage: "read the API key from `FILE` when it is not in the environment"},
				},
			},
			{
				Name:            "prefs",
				Usage:           "Inspects or clears saved reader preferences",
				HideHelpCommand: true,
				Commands: []*cli.Command{
					{Name: "show", Usage: "Prints saved preferences", Action: showPrefs},
					{Name: "reset", Usage: "Removes saved preferences", Action: resetPrefs},
				},
			},
		},
	}

	var err error
	// os.Exit is called at the end of main, no deferred functions may follow
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
