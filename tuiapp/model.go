package tuiapp

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/micutio/airradar/internal"
)

const (
	// tabBarHeight is the centre title above the bordered tab line.
	tabBarHeight = 4
	// chromeHeight is everything around the page body: plot border, page title and the
	// status and help lines.
	chromeHeight = 5
	borderWidth  = 2
)

// Model implements the bubbletea.Model interface, which requires three methods:
// - Init() Cmd
// - Update(Msg) (Model, Cmd)
// - View() string
// This forms the base for the TUI app.
type model struct {
	width      int
	height     int
	baseStyle  lipgloss.Style
	viewStyle  lipgloss.Style
	theme      Theme
	keys       keyMap
	help       help.Model
	airplanes  autoFormatTable
	tableStyle table.Styles
	lastUpdate time.Time
	tick       time.Duration
	session    *internal.Session
}

func newModel(cfg internal.Config, session *internal.Session) *model {
	tableStyle := table.DefaultStyles()
	tableStyle.Selected = lipgloss.NewStyle().Background(Color.Highlight)

	return &model{
		baseStyle:  lipgloss.NewStyle(),
		viewStyle:  lipgloss.NewStyle(),
		theme:      Color,
		keys:       newKeyMap(),
		help:       help.New(),
		airplanes:  newAirplanesTable(tableStyle),
		tableStyle: tableStyle,
		tick:       cfg.Tick,
		session:    session,
	}
}

// Init starts the first feed drain. Every processed batch schedules the next one.
func (m *model) Init() tea.Cmd {
	return drainFeed(m.session)
}

// Update takes a tea.Msg as input and uses a type switch to handle different types of messages.
// Each case in the switch statement corresponds to a specific message type.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // required by interface
	switch thisMsg := msg.(type) {
	// message is sent when the window size changes
	// save to reflect the new dimensions of the terminal window.
	case tea.WindowSizeMsg:
		m.height = thisMsg.Height
		m.width = thisMsg.Width
		m.help.Width = thisMsg.Width
		if err := m.airplanes.resize(m.width - borderWidth); err != nil {
			slog.Error("tuiapp: airplanes table not resized", slog.Any("error", err))
		}
		m.airplanes.SetHeight(max(m.bodyHeight(), 1))

	// message is sent when a key is pressed.
	case tea.KeyMsg:
		if m.session.Handle(m.keys.action(thisMsg)) {
			return m, tea.Quit
		}
		m.syncTable()

	// a batch of feed lines was drained in the background.
	case FeedMsg:
		m.session.Advance(thisMsg.Batch, thisMsg.At)
		m.lastUpdate = thisMsg.At
		if m.session.Done() {
			return m, tea.Quit
		}
		m.syncTable()

		return m, drainFeedAfter(m.tick, m.session)
	}

	// If the message type does not match any of the handled cases, the model is returned unchanged,
	// and no new command is issued.
	return m, nil
}

// syncTable copies rows and the selection into the airplanes table. Without a selection the
// highlight is switched off.
func (m *model) syncTable() {
	m.airplanes.SetRows(m.session.Rows())

	if idx, ok := m.session.View().Cursor(); ok {
		m.tableStyle.Selected = m.baseStyle.Background(m.theme.Highlight).Bold(true)
		m.airplanes.table.SetCursor(idx)
	} else {
		m.tableStyle.Selected = m.baseStyle
		m.airplanes.table.SetCursor(0)
	}

	m.airplanes.table.SetStyles(m.tableStyle)
}

// bodyHeight is the number of rows left for the plot or table.
func (m *model) bodyHeight() int {
	return max(m.height-tabBarHeight-chromeHeight, 0)
}

func (m *model) View() string {
	if m.width == 0 {
		return ""
	}

	// Set the content to match the terminal dimensions (m.width and m.height).
	return m.baseStyle.
		Width(m.width).
		MaxHeight(m.height).
		Render(
			// Vertically join multiple elements aligned to the left.
			lipgloss.JoinVertical(lipgloss.Left,
				m.viewTabs(),
				m.viewBody(),
				m.viewStatus(),
				m.help.View(m.keys),
			),
		)
}

// viewTabs renders the tab bar, titled with the current plot centre.
func (m *model) viewTabs() string {
	view := m.session.View()

	active := m.baseStyle.Foreground(m.theme.Green).Bold(true)
	inactive := m.baseStyle.Foreground(m.theme.Primary)

	titles := make([]string, len(internal.Tabs))
	for i, tab := range internal.Tabs {
		if tab == view.Tab {
			titles[i] = active.Render(tab.String())
		} else {
			titles[i] = inactive.Render(tab.String())
		}
	}

	box := m.viewStyle.
		Border(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		Width(max(m.width-borderWidth, 0))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.baseStyle.Bold(true).Render(internal.CentreTitle(view.Settings)),
		box.Render(strings.Join(titles, " · ")),
	)
}

func (m *model) viewBody() string {
	box := m.viewStyle.
		Border(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border)

	if m.session.View().Tab == internal.TabAirplanes {
		title := internal.AirplanesTitle(m.session.Store().Len())
		return lipgloss.JoinVertical(lipgloss.Left,
			m.baseStyle.Bold(true).Render(title),
			box.Render(m.airplanes.table.View()),
		)
	}

	scene := m.session.Scene()
	plot := newCanvas(m.width-borderWidth, m.bodyHeight())
	plot.draw(scene)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.baseStyle.Bold(true).Render(scene.Title),
		box.Render(plot.render(m.theme)),
	)
}

// viewStatus shows feed statistics as a key/value list.
func (m *model) viewStatus() string {
	listItem := func(key string, value string) string {
		listItemValue := m.baseStyle.Align(lipgloss.Right).Render(value)
		listItemKey := m.baseStyle.Foreground(m.theme.Secondary).Render(key + ":")

		return fmt.Sprintf("%s %s ", listItemKey, listItemValue)
	}

	stats := m.session.Stats()
	since := "-"
	if !m.lastUpdate.IsZero() {
		since = fmt.Sprintf("%dms", time.Since(m.lastUpdate).Milliseconds())
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		listItem("TRK", fmt.Sprintf("%d", m.session.Store().Len())),
		listItem("COV", fmt.Sprintf("%d", m.session.Coverage().Len())),
		listItem("MSG", fmt.Sprintf("%d/%d", stats.Accepted, stats.Lines)),
		listItem("UPD", since),
	)
}
