// Package illustrate pre-renders book illustrations through an
// image-generation API, one prompt at a time.
package illustrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/justyntemme/folio/pkg/models"
)

// Generator produces image bytes for a prompt
type Generator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// Summary reports the outcome of a batch
type Summary struct {
	Total   int
	Written int
	Failed  int
	Bytes   uint64

	// Err combines every per-item failure
	Err error
}

// Batch generates illustrations sequentially with a fixed pause between
// requests.
type Batch struct {
	gen    Generator
	outDir string
	delay  time.Duration
	log    *zap.Logger

	// wait is swapped out in tests
	wait func(ctx context.Context, d time.Duration) error
}

// NewBatch creates a batch writing into outDir
func NewBatch(gen Generator, outDir string, delay time.Duration, log *zap.Logger) *Batch {
	if log == nil {
		log = zap.NewNop()
	}
	return &Batch{gen: gen, outDir: outDir, delay: delay, log: log, wait: sleep}
}

// Run generates every prompt in order. Item failures are logged and collected
// into the summary; only a cancelled context stops the batch early.
func (b *Batch) Run(ctx context.Context, prompts []models.Prompt) (Summary, error) {
	sum := Summary{Total: len(prompts)}

	if err := os.MkdirAll(b.outDir, 0755); err != nil {
		return sum, fmt.Errorf("unable to create output directory: %w", err)
	}

	for i, p := range prompts {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		log := b.log.With(zap.String("name", p.Name), zap.Int("item", i+1), zap.Int("of", len(prompts)))
		log.Info("Generating illustration")

		n, err := b.generate(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			sum.Failed++
			sum.Err = multierr.Append(sum.Err, fmt.Errorf("%s: %w", p.Name, err))
			log.Error("Illustration failed", zap.Error(err))
		} else {
			sum.Written++
			sum.Bytes += n
			log.Info("Illustration saved", zap.String("size", humanize.Bytes(n)))
		}

		if i < len(prompts)-1 && b.delay > 0 {
			if err := b.wait(ctx, b.delay); err != nil {
				return sum, err
			}
		}
	}

	b.log.Info("Batch complete",
		zap.Int("written", sum.Written),
		zap.Int("failed", sum.Failed),
		zap.String("size", humanize.Bytes(sum.Bytes)))
	return sum, nil
}

func (b *Batch) generate(ctx context.Context, p models.Prompt) (uint64, error) {
	data, err := b.gen.GenerateImage(ctx, p.Prompt)
	if err != nil {
		return 0, err
	}

	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return 0, fmt.Errorf("response is not an image (%d bytes)", len(data))
	}
	if ext := strings.TrimPrefix(filepath.Ext(p.Name), "."); ext != "" && !strings.EqualFold(ext, kind.Extension) {
		b.log.Warn("Illustration format differs from file name",
			zap.String("name", p.Name), zap.String("format", kind.Extension))
	}

	path := filepath.Join(b.outDir, p.Name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("unable to write %s: %w", path, err)
	}
	return uint64(len(data)), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
