package internal

import (
	"io"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 32
	logMaxBackups = 1
)

// LogParams contains the parameters for logging console output and errors.
// These will vary depending on whether the radar runs in ticker or tui mode.
// # Ticker mode
// - console output goes to stdout
// - error logs go to stderr
// # TUI mode
// - console output is discarded, the terminal belongs to the TUI
// - error logs go to a rotating log file
// .
type LogParams struct {
	ConsoleOut io.Writer
	ErrorOut   io.Writer
}

// NewLogParams routes output for the selected mode. The returned closer releases the log file,
// if one was opened.
func NewLogParams(ticker bool, logFile string) (LogParams, io.Closer) {
	if ticker {
		return LogParams{ConsoleOut: os.Stdout, ErrorOut: os.Stderr}, io.NopCloser(nil)
	}

	file := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
	}

	return LogParams{ConsoleOut: io.Discard, ErrorOut: file}, file
}

// NewLogger creates a JSON logger writing to the error output and installs it as the slog
// default.
func (params LogParams) NewLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(params.ErrorOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Debug("system information",
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()))

	return logger
}
