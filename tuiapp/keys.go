package tuiapp

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/micutio/airradar/internal"
)

type keyMap struct {
	Map       key.Binding
	Coverage  key.Binding
	Airplanes key.Binding
	NextTab   key.Binding
	Quit      key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Map:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "map")),
		Coverage:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "coverage")),
		Airplanes: key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "airplanes")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "west")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "east")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "reset / jump")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.ZoomIn, k.ZoomOut, k.Enter, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Map, k.Coverage, k.Airplanes, k.NextTab},
		{k.Up, k.Down, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut, k.Enter, k.Quit},
	}
}

// action maps a key press onto a view action.
func (k keyMap) action(msg tea.KeyMsg) internal.Action {
	bindings := []struct {
		binding key.Binding
		action  internal.Action
	}{
		{k.Map, internal.ActionShowMap},
		{k.Coverage, internal.ActionShowCoverage},
		{k.Airplanes, internal.ActionShowAirplanes},
		{k.NextTab, internal.ActionNextTab},
		{k.Quit, internal.ActionQuit},
		{k.ZoomIn, internal.ActionZoomIn},
		{k.ZoomOut, internal.ActionZoomOut},
		{k.Up, internal.ActionUp},
		{k.Down, internal.ActionDown},
		{k.Left, internal.ActionLeft},
		{k.Right, internal.ActionRight},
		{k.Enter, internal.ActionEnter},
	}

	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}

	return internal.ActionNone
}
