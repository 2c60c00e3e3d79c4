// Package tuiapp provides the TUI app which plots live aircraft, updates continuously
// and can be interacted with.
// Layout:
// +-------------------------------------------------+
// | (lat,long)                                      |
// | Map · Coverage · Airplanes                      |
// +-------------------------------------------------+
// | Map / Coverage: braille plot with cities,       |
// |                 crosshairs and aircraft         |
// | Airplanes:      table of all live tracks        |
// +-------------------------------------------------+
// | status line and key help                        |
// .
package tuiapp

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/micutio/airradar/internal"
)

type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Green     lipgloss.AdaptiveColor
	Red       lipgloss.AdaptiveColor
}

var Color = Theme{ //nolint: gochecknoglobals // theme constants
	Primary:   lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
	Secondary: lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"},
	Highlight: lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#8b2def"},
	Border:    lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"},
	Green:     lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF00"},
	Red:       lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF0000"},
}

// Run takes over the terminal until the user quits or the feed closes, then returns the quit
// reason for the caller to print on the restored terminal.
func Run(cfg internal.Config, session *internal.Session) (string, error) {
	m := newModel(cfg, session)

	// Create a new Bubble Tea program with the model and enable alternate screen
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return "", fmt.Errorf("tuiapp.Run: %w", err)
	}

	return session.QuitReason(), nil
}
