package log

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Config for the logger.
type Config struct {
	Level Level  `help:"Log level." default:"info" env:"LOG_LEVEL"`
	JSON  bool   `help:"Log in JSON format." env:"LOG_JSON"`
	Color bool   `help:"Force colored log output." env:"LOG_COLOR"`
	File  string `help:"Also append JSON log entries to FILE." type:"path" env:"LOG_FILE" placeholder:"FILE"`
}

// Configure returns a new logger writing to w based on the config.
//
// Colour is enabled automatically when w is a terminal. Config.File is
// ignored, use Open to honour it.
func Configure(w io.Writer, cfg Config) *Logger {
	var sink Sink
	if cfg.JSON {
		sink = newJSONSink(w)
	} else {
		sink = newPlainSink(w, cfg.Color || isTerminal(w))
	}
	level := cfg.Level
	if level == Default {
		level = Info
	}
	return New(level, sink)
}

// Open is Configure plus a JSON sink appending to Config.File, if set.
//
// The returned function closes the file and must be called on shutdown.
func Open(w io.Writer, cfg Config) (*Logger, func() error, error) {
	logger := Configure(w, cfg)
	if cfg.File == "" {
		return logger, func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}
	return logger.AddSink(newJSONSink(f)), f.Close, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
