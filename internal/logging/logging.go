// Package logging builds the program's zap logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Levels accepted for both the file and the console logger
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// Options describe the cores to build
type Options struct {
	FileLevel   string
	Destination string

	// ConsoleLevel enables a console logger: info and warnings to Stdout,
	// errors to Stderr. The reader never sets it since the TUI owns the screen.
	ConsoleLevel string
	Stdout       io.Writer
	Stderr       io.Writer
}

// Logger wraps zap.Logger with the files it has to close
type Logger struct {
	*zap.Logger
	files []*os.File
}

// Close flushes the logger and closes its files
func (l *Logger) Close() (err error) {
	if er := l.Sync(); er != nil && len(l.files) > 0 {
		err = multierr.Append(err, er)
	}
	for _, f := range l.files {
		err = multierr.Append(err, f.Close())
	}
	l.files = nil
	return err
}

// New builds a logger. With both levels "none" it returns a no-op logger.
func New(opts Options) (*Logger, error) {
	var (
		cores []zapcore.Core
		files []*os.File
	)

	if lvl, ok := zapLevel(opts.FileLevel); ok {
		if opts.Destination == "" {
			return nil, fmt.Errorf("file logging requires a destination")
		}
		if err := os.MkdirAll(filepath.Dir(opts.Destination), 0700); err != nil {
			return nil, fmt.Errorf("unable to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Destination, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("unable to access log destination (%s): %w", opts.Destination, err)
		}
		files = append(files, f)
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(f), lvl))
	}

	if lvl, ok := zapLevel(opts.ConsoleLevel); ok {
		stdout, stderr := opts.Stdout, opts.Stderr
		if stdout == nil {
			stdout = os.Stdout
		}
		if stderr == nil {
			stderr = os.Stderr
		}
		low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return lvl.Enabled(l) && l < zapcore.ErrorLevel
		})
		high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapcore.ErrorLevel
		})
		cores = append(cores,
			zapcore.NewCore(consoleEncoder(stdout), zapcore.AddSync(stdout), low),
			zapcore.NewCore(consoleEncoder(stderr), zapcore.AddSync(stderr), high),
		)
	}

	if len(cores) == 0 {
		return &Logger{Logger: zap.NewNop()}, nil
	}
	return &Logger{Logger: zap.New(zapcore.NewTee(cores...)), files: files}, nil
}

func zapLevel(level string) (zapcore.Level, bool) {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel, true
	case LevelNormal:
		return zapcore.InfoLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

func consoleEncoder(w io.Writer) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if isTerminal(w) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
