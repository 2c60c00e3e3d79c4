package internal

import (
	"errors"
	"log/slog"
	"time"
)

// Quit reasons, printed after the terminal has been restored.
const (
	QuitUser       = "user requested quit"
	QuitFeedClosed = "TCP connection aborted, quitting radar tui"
)

// LineSource yields feed lines. *Feed is the production implementation.
type LineSource interface {
	ReadLine() (string, error)
}

// Batch is the outcome of one drain of the feed. Err is nil when the drain stopped because
// no more data was pending or the batch cap was reached. Dropped counts overlong lines.
type Batch struct {
	Lines   []string
	Dropped int
	Err     error
}

// StepResult describes what one iteration changed.
type StepResult struct {
	Lines   int
	Created []Address
	Removed []Address
	Spotted []Track
}

// Session owns all dashboard state and advances it one iteration at a time. It is not safe
// for concurrent use, with the exception of Drain, which only touches the feed.
type Session struct {
	feed     LineSource
	ingestor *Ingestor
	store    *TrackStore
	coverage *Coverage
	view     *ViewState
	watcher  *Watcher
	logger   *slog.Logger

	cities      []City
	hideLatLong bool
	stale       time.Duration
	batch       int

	quitReason string
}

// NewSession wires a session from cfg. watcher may be nil.
func NewSession(cfg Config, feed LineSource, decoder Decoder, watcher *Watcher, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	store := NewTrackStore()

	return &Session{
		feed:        feed,
		ingestor:    NewIngestor(decoder, store, logger),
		store:       store,
		coverage:    NewCoverage(cfg.CoverageDedup),
		view:        NewViewState(cfg.Home),
		watcher:     watcher,
		logger:      logger,
		cities:      cfg.Cities,
		hideLatLong: cfg.DisableLatLong,
		stale:       cfg.Stale,
		batch:       cfg.Batch,
	}
}

// Drain reads up to the batch cap of lines, stopping early at the read deadline.
func (s *Session) Drain() Batch {
	var batch Batch

	for range s.batch {
		line, err := s.feed.ReadLine()
		if errors.Is(err, ErrLineTooLong) {
			batch.Dropped++
			continue
		}

		if err != nil {
			if !errors.Is(err, ErrNoData) {
				batch.Err = err
			}

			break
		}

		batch.Lines = append(batch.Lines, line)
	}

	return batch
}

// Advance ingests a drained batch, records coverage, prunes stale tracks and clamps the cursor.
// A feed error ends the session after the lines read before it were ingested.
func (s *Session) Advance(batch Batch, now time.Time) StepResult {
	result := StepResult{Lines: len(batch.Lines)}

	for _, line := range batch.Lines {
		s.ingestor.Ingest(line, now)
	}

	s.ingestor.Discard(batch.Dropped)

	if batch.Err != nil {
		if !errors.Is(batch.Err, ErrFeedClosed) {
			s.logger.Error("session: feed read failed", slog.Any("error", batch.Err))
		}

		s.quit(QuitFeedClosed)

		return result
	}

	s.coverage.Add(s.store.ResolvedPositions())

	result.Removed = s.store.Prune(now, s.stale)
	if len(result.Removed) > 0 {
		s.ingestor.Forget(result.Removed)
		s.logger.Debug("session: pruned stale tracks", slog.Int("count", len(result.Removed)))
	}

	s.view.Clamp(s.store.Len())

	result.Created = s.store.TakeCreated()

	if s.watcher != nil && s.watcher.Enabled() {
		s.watcher.Forget(result.Removed)
		result.Spotted = s.watcher.Check(s.store.Tracks())
	}

	return result
}

// Step runs Drain and Advance back to back.
func (s *Session) Step(now time.Time) StepResult {
	return s.Advance(s.Drain(), now)
}

// Handle applies a key action. It reports whether the session should end.
func (s *Session) Handle(action Action) bool {
	if s.view.Apply(action, s.store) {
		s.quit(QuitUser)
	}

	return s.Done()
}

func (s *Session) quit(reason string) {
	if s.quitReason == "" {
		s.quitReason = reason
	}
}

// Done reports whether a quit condition was reached.
func (s *Session) Done() bool {
	return s.quitReason != ""
}

// QuitReason returns why the session ended, empty while it runs.
func (s *Session) QuitReason() string {
	return s.quitReason
}

// View exposes the view state for rendering. Mutate it only through Handle.
func (s *Session) View() *ViewState {
	return s.view
}

// Store exposes the tracks for reading.
func (s *Session) Store() *TrackStore {
	return s.store
}

func (s *Session) Coverage() *Coverage {
	return s.coverage
}

func (s *Session) Stats() IngestStats {
	return s.ingestor.Stats()
}

// Scene returns the plot of the current tab. It is empty on the Airplanes tab.
func (s *Session) Scene() Scene {
	switch s.view.Tab {
	case TabMap:
		return MapScene(s.view.Settings, s.cities, s.store.Tracks(), s.hideLatLong)
	case TabCoverage:
		return CoverageScene(s.view.Settings, s.cities, s.coverage.Samples())
	case TabAirplanes:
	}

	return Scene{}
}

// Rows returns the airplanes listing.
func (s *Session) Rows() []AirplaneRow {
	return AirplaneRows(s.store.Tracks())
}
