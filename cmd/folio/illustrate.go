package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/justyntemme/folio/internal/api"
	"github.com/justyntemme/folio/internal/illustrate"
)

func runIllustrate(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	log := env.Log.Named("illustrate")

	key, err := illustrate.LoadKey(cmd.String("env"))
	if err != nil {
		return err
	}

	prompts, err := illustrate.LoadPrompts(cmd.String("prompts"))
	if err != nil {
		return fmt.Errorf("unable to load prompts: %w", err)
	}

	out := cmd.String("out")
	if out == "" {
		out = env.Cfg.Illustrate.OutputDir
	}

	client := api.NewClient(env.Cfg.Illustrate.Endpoint, env.Cfg.Illustrate.Model, key)
	log.Info("Starting batch",
		zap.Int("prompts", len(prompts)),
		zap.String("model", client.Model()),
		zap.String("out", out),
		zap.Duration("delay", env.Cfg.Illustrate.Delay()))

	sum, err := illustrate.NewBatch(client, out, env.Cfg.Illustrate.Delay(), log).Run(ctx, prompts)
	if err != nil {
		return fmt.Errorf("batch interrupted after %d of %d: %w", sum.Written+sum.Failed, sum.Total, err)
	}

	// Individual failures are already logged and do not fail the command
	log.Info("Batch finished",
		zap.Int("written", sum.Written),
		zap.Int("failed", sum.Failed),
		zap.String("size", humanize.Bytes(sum.Bytes)))
	if sum.Err != nil {
		log.Warn("Some illustrations were not generated", zap.Error(sum.Err))
	}
	return nil
}
