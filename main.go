// Package main provides the ADS-B radar application
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/micutio/airradar/internal"
	"github.com/micutio/airradar/internal/modes"
	"github.com/micutio/airradar/tickerapp"
	"github.com/micutio/airradar/tuiapp"
	"github.com/spf13/pflag"
)

const (
	// thisAppName is the name of this application as shown on notifications.
	thisAppName = "airradar"
)

func main() {
	os.Exit(run())
}

func run() int {
	internal.RegisterFlags(pflag.CommandLine)

	// Parse all arguments provided to the program on launch.
	pflag.Parse()

	cfg, err := internal.LoadConfig(pflag.CommandLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		pflag.Usage()

		return 1
	}

	logParams, logCloser := internal.NewLogParams(cfg.Ticker, cfg.LogFile)
	defer logCloser.Close() //nolint:errcheck // process is exiting

	logger := logParams.NewLogger(cfg.LogLevel)

	feed, err := internal.Dial(context.Background(), cfg.Host, cfg.Port, cfg.ReadTimeout)
	if err != nil {
		logger.Error("unable to connect to feed, exiting", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)

		return 1
	}
	defer feed.Close() //nolint:errcheck // process is exiting

	watcher := internal.NewWatcher(thisAppName, cfg.Watch, logParams.ConsoleOut)
	session := internal.NewSession(cfg, feed, modes.NewDecoder(), watcher, logger)

	var reason string
	if cfg.Ticker {
		reason = tickerapp.Run(thisAppName, cfg, session, logParams.ConsoleOut)
	} else {
		reason, err = tuiapp.Run(cfg, session)
		if err != nil {
			logger.Error("tui failed", slog.Any("error", err))
			fmt.Fprintln(os.Stderr, err)

			return 1
		}
	}

	fmt.Println(reason)

	return 0
}
