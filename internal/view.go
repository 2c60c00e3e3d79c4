package internal

// View constants.
const (
	// DefaultScale is the zoom scale on startup and after a reset.
	DefaultScale = 1.2

	zoomStep     = 0.1
	minZoomScale = 0.2 // ZoomIn is ignored at or below this scale.
	latPanStep   = 0.005
	longPanStep  = 0.03
)

// Tab is one of the three dashboard pages.
type Tab int

const (
	TabMap Tab = iota
	TabCoverage
	TabAirplanes
)

// Tabs lists all tabs in display order.
var Tabs = []Tab{TabMap, TabCoverage, TabAirplanes} //nolint: gochecknoglobals // fixed enumeration

// Next cycles Map -> Coverage -> Airplanes -> Map.
func (t Tab) Next() Tab {
	return (t + 1) % Tab(len(Tabs))
}

func (t Tab) String() string {
	switch t {
	case TabMap:
		return "Map"
	case TabCoverage:
		return "Coverage"
	case TabAirplanes:
		return "Airplanes"
	default:
		return "Unknown"
	}
}

// isPlot reports whether the tab shows a geographic plot.
func (t Tab) isPlot() bool {
	return t == TabMap || t == TabCoverage
}

// Settings are the pan and zoom parameters of the plots. Latitude and Longitude are the plot
// centre.
type Settings struct {
	Scale     float64
	Latitude  float64
	Longitude float64
}

// Centre returns the plot centre as a point.
func (s Settings) Centre() Point {
	return Point{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Action is an abstract key action. The front-end maps physical keys onto actions.
type Action int

const (
	ActionNone Action = iota
	ActionShowMap
	ActionShowCoverage
	ActionShowAirplanes
	ActionNextTab
	ActionQuit
	ActionZoomIn
	ActionZoomOut
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionEnter
)

// ViewState holds the tab, plot settings and table selection. It starts on the Map tab,
// centred on home, with nothing selected.
type ViewState struct {
	Tab      Tab
	Settings Settings

	home     Settings
	selected int
	hasSel   bool
}

// NewViewState creates the initial state centred on home with the default scale.
func NewViewState(home Point) *ViewState {
	settings := Settings{
		Scale:     DefaultScale,
		Latitude:  home.Latitude,
		Longitude: home.Longitude,
	}

	return &ViewState{
		Tab:      TabMap,
		Settings: settings,
		home:     settings,
	}
}

// Cursor returns the selected row, if any.
func (v *ViewState) Cursor() (int, bool) {
	return v.selected, v.hasSel
}

// Clamp fits the cursor to a listing of n rows: an index past the end moves to the last row,
// and an empty listing clears the selection.
func (v *ViewState) Clamp(n int) {
	if !v.hasSel {
		return
	}

	if n <= 0 {
		v.selected, v.hasSel = 0, false
		return
	}

	if v.selected >= n {
		v.selected = n - 1
	}
}

// Apply performs one action and reports whether the user asked to quit. tracks is only read,
// to size the cursor range and to resolve the selected row on Enter.
func (v *ViewState) Apply(action Action, tracks *TrackStore) bool {
	switch action {
	case ActionNone:
	case ActionShowMap:
		v.Tab = TabMap
	case ActionShowCoverage:
		v.Tab = TabCoverage
	case ActionShowAirplanes:
		v.Tab = TabAirplanes
	case ActionNextTab:
		v.Tab = v.Tab.Next()
	case ActionQuit:
		return true
	case ActionZoomIn, ActionZoomOut, ActionLeft, ActionRight:
		if v.Tab.isPlot() {
			v.adjustPlot(action)
		}
	case ActionUp, ActionDown:
		if v.Tab.isPlot() {
			v.adjustPlot(action)
		} else {
			v.moveCursor(action, tracks.Len())
		}
	case ActionEnter:
		if v.Tab.isPlot() {
			v.Settings = v.home
		} else {
			v.jumpToSelected(tracks)
		}
	}

	return false
}

func (v *ViewState) adjustPlot(action Action) {
	switch action { //nolint: exhaustive // plot actions only
	case ActionZoomIn:
		// repeated subtraction drifts, so the floor is matched within half a step
		if v.Settings.Scale > minZoomScale+zoomStep/2 {
			v.Settings.Scale -= zoomStep
		}
	case ActionZoomOut:
		v.Settings.Scale += zoomStep
	case ActionUp:
		v.Settings.Latitude += latPanStep
	case ActionDown:
		v.Settings.Latitude -= latPanStep
	case ActionLeft:
		v.Settings.Longitude -= longPanStep
	case ActionRight:
		v.Settings.Longitude += longPanStep
	}
}

func (v *ViewState) moveCursor(action Action, n int) {
	v.Clamp(n)

	if n == 0 {
		return
	}

	if !v.hasSel {
		v.selected, v.hasSel = 0, true
		return
	}

	if action == ActionUp {
		v.selected = max(v.selected-1, 0)
	} else {
		v.selected = min(v.selected+1, n-1)
	}
}

// jumpToSelected centres the map on the selected track. Tracks without a resolved position
// leave the state unchanged.
func (v *ViewState) jumpToSelected(tracks *TrackStore) {
	v.Clamp(tracks.Len())

	if !v.hasSel {
		return
	}

	track, ok := tracks.At(v.selected)
	if !ok || track.Position == nil {
		return
	}

	v.Settings.Latitude = track.Position.Latitude
	v.Settings.Longitude = track.Position.Longitude
	v.Tab = TabMap
}
