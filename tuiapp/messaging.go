package tuiapp

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/micutio/airradar/internal"
)

// FeedMsg carries one drained batch of feed lines into Update.
type FeedMsg struct {
	Batch internal.Batch
	At    time.Time
}

// drainFeed reads the feed off the event loop. Only the feed is touched, so it may run while
// Update handles keys.
func drainFeed(session *internal.Session) tea.Cmd {
	return func() tea.Msg {
		batch := session.Drain()
		return FeedMsg{Batch: batch, At: time.Now()}
	}
}

// drainFeedAfter schedules the next drain one tick from now.
func drainFeedAfter(interval time.Duration, session *internal.Session) tea.Cmd {
	return tea.Tick(
		interval,
		func(time.Time) tea.Msg {
			batch := session.Drain()
			return FeedMsg{Batch: batch, At: time.Now()}
		},
	)
}
