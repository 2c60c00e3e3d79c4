package internal

import (
	"fmt"
	"io"
	"log" //nolint:depguard // Don't feel like using slog
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"golang.org/x/time/rate"
)

const (
	// appIconPath is the file path to the icon png for this application.
	appIconPath = "./assets/icon.png"

	// notifyInterval and notifyBurst limit desktop notifications when many watched aircraft
	// show up at once.
	notifyInterval = 10 * time.Second
	notifyBurst    = 3
)

// AlertFunc shows a desktop notification. beeep.Notify is the production implementation.
type AlertFunc func(title, message, icon string) error

// Watcher raises a notification the first time a watched aircraft is seen. Entries match
// either the callsign or, when they parse as hex, the address.
type Watcher struct {
	Stdout *log.Logger

	callsigns map[string]struct{}
	addrs     map[Address]struct{}
	notified  map[Address]struct{}
	limiter   *rate.Limiter
	alert     AlertFunc
}

// NewWatcher registers appName with beeep and watches the given entries.
func NewWatcher(appName string, watch []string, consoleOut io.Writer) *Watcher {
	beeep.AppName = appName //nolint:reassign // This is the only way to set app name in beeep.

	return newWatcher(watch, consoleOut, func(title, message, icon string) error {
		return beeep.Notify(title, message, icon) //nolint:wrapcheck // passed through to the caller's log
	})
}

func newWatcher(watch []string, consoleOut io.Writer, alert AlertFunc) *Watcher {
	w := &Watcher{
		Stdout:    log.New(consoleOut, "", 0),
		callsigns: make(map[string]struct{}),
		addrs:     make(map[Address]struct{}),
		notified:  make(map[Address]struct{}),
		limiter:   rate.NewLimiter(rate.Every(notifyInterval), notifyBurst),
		alert:     alert,
	}

	for _, entry := range watch {
		entry = strings.ToUpper(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}

		w.callsigns[entry] = struct{}{}
		if addr, err := ParseAddress(entry); err == nil {
			w.addrs[addr] = struct{}{}
		}
	}

	return w
}

// Enabled reports whether anything is watched at all.
func (w *Watcher) Enabled() bool {
	return len(w.callsigns) > 0
}

func (w *Watcher) matches(track Track) bool {
	if _, ok := w.addrs[track.Address]; ok {
		return true
	}

	_, ok := w.callsigns[strings.ToUpper(track.Callsign)]

	return ok && track.Callsign != ""
}

// Check notifies about every watched track not notified yet and returns them. Notifications
// over the rate limit are written to the console only.
func (w *Watcher) Check(tracks []Track) []Track {
	var spotted []Track

	for _, track := range tracks {
		if _, done := w.notified[track.Address]; done || !w.matches(track) {
			continue
		}

		w.notified[track.Address] = struct{}{}
		spotted = append(spotted, track)

		w.Stdout.Printf("watched aircraft spotted: %s\n", TrackToString(track))

		if !w.limiter.Allow() {
			continue
		}

		msgBody := fmt.Sprintf("%s (%s)", displayName(track), track.Address)
		if err := w.alert("Watched Aircraft Spotted", msgBody, appIconPath); err != nil {
			w.Stdout.Printf("notification failed: %v\n", err)
		}
	}

	return spotted
}

// Forget lets pruned aircraft trigger a new notification when they return.
func (w *Watcher) Forget(addrs []Address) {
	for _, addr := range addrs {
		delete(w.notified, addr)
	}
}

func displayName(track Track) string {
	if track.Callsign != "" {
		return track.Callsign
	}

	return track.Address.String()
}

// TrackToString generates a one-liner consisting of the most relevant information about the
// given track.
func TrackToString(track Track) string {
	altitude, speed, fpm := "-", "-", "-"

	if track.Position != nil {
		altitude = fmt.Sprintf("%d ft", track.Position.Altitude)
	}

	if track.Velocity != nil {
		speed = fmt.Sprintf("%3.0f kt", track.Velocity.Speed)
		fpm = fmt.Sprintf("%d fpm", track.Velocity.VerticalRate)
	}

	return fmt.Sprintf("ICAO %s FNO %-8s ALT %s SPD %s VS %s MSG %d",
		track.Address,
		displayCallsign(track.Callsign),
		altitude,
		speed,
		fpm,
		track.Messages)
}

func displayCallsign(callsign string) string {
	if callsign == "" {
		return operatorUnknown
	}

	return callsign
}
