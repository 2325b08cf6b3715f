package main

import (
	"context"
	"time"

	"github.com/justyntemme/folio/internal/config"
	"github.com/justyntemme/folio/internal/logging"
)

type envKey struct{}

// localEnv keeps everything the commands share in a single place
type localEnv struct {
	Cfg *config.Config
	Log *logging.Logger

	start time.Time
}

func envFromContext(ctx context.Context) *localEnv {
	if env, ok := ctx.Value(envKey{}).(*localEnv); ok {
		return env
	}
	panic("localenv not found in context")
}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &localEnv{start: time.Now()})
}

func (e *localEnv) uptime() time.Duration {
	return time.Since(e.start)
}
