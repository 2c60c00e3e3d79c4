// Package tickerapp launches the ticker application which writes out all updates to stdout and
// can be piped into other programs and processed further.
// This is in contrast to the TUI app, which plots the aircraft like a radar scope.
package tickerapp

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/micutio/airradar/internal"
)

// Run steps the session every tick until the feed closes or a shutdown signal arrives, and
// returns the quit reason.
func Run(appName string, cfg internal.Config, session *internal.Session, consoleOut io.Writer) string {
	out := newPrinter(consoleOut)
	out.Stdout.Printf("%s launching at Lat: %.3f, Lon: %.3f\n", appName, cfg.Home.Latitude, cfg.Home.Longitude)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	return loop(cfg, session, out, sigc)
}

func loop(cfg internal.Config, session *internal.Session, out *printer, stop <-chan os.Signal) string {
	// Create a step ticker that drains the feed in a given interval
	stepTicker := time.NewTicker(cfg.Tick)
	defer stepTicker.Stop()

	// Create a summary ticker that fires in a given interval
	summaryTicker := time.NewTicker(cfg.Summary)
	defer summaryTicker.Stop()

	for {
		select {
		case now := <-stepTicker.C:
			out.PrintStep(session.Store(), session.Step(now))
			if session.Done() {
				return session.QuitReason()
			}
		case <-summaryTicker.C:
			out.PrintSummary(internal.Summarize(session.Store().Tracks(), cfg.Home))
		case <-stop:
			slog.Info("Shutdown signal received, stopping...")
			session.Handle(internal.ActionQuit)

			return session.QuitReason()
		}
	}
}
