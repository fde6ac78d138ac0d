// Package logging installs the process-wide logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jdeng/gogif/internal/config"
)

var levels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

// ParseLevel converts a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	lvl, ok := levels[strings.ToLower(name)]
	if !ok {
		return 0, errors.Newf("logging: unknown level %q", name)
	}
	return lvl, nil
}

// NewHandler builds the handler for cfg writing to w. Color is only used for
// the terminal format and only when w is a terminal.
func NewHandler(cfg config.Log, w io.Writer) (slog.Handler, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(cfg.Format) {
	case "", "terminal":
		useColor := false
		if f, ok := w.(*os.File); ok && cfg.Color {
			if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
				w = colorable.NewColorable(f)
				useColor = true
			}
		}
		return log.NewTerminalHandlerWithLevel(w, lvl, useColor), nil
	case "json":
		return log.JSONHandlerWithLevel(w, lvl), nil
	case "logfmt":
		return log.LogfmtHandlerWithLevel(w, lvl), nil
	default:
		return nil, errors.Newf("logging: unknown format %q", cfg.Format)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup installs the default logger. Output goes to stderr unless cfg.File is
// set, in which case a rotating file is used. The returned closer flushes and
// closes that file.
func Setup(cfg config.Log, stderr io.Writer) (io.Closer, error) {
	w := stderr
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		w, closer = lj, lj
	}
	h, err := NewHandler(cfg, w)
	if err != nil {
		return nil, err
	}
	log.SetDefault(log.NewLogger(h))
	return closer, nil
}
