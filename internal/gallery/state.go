// Package gallery holds the gallery's state machine and the controller that
// turns user triggers into fetches and surface updates.
package gallery

// View selects which surface is visible.
type View int

const (
	ViewExplore View = iota
	ViewFavorites
)

func (v View) String() string {
	if v == ViewFavorites {
		return "Favorites"
	}
	return "Explore"
}

// State is the pagination and search cursor of the gallery. An empty Query
// is browse mode. Searched records that the current listing came from a
// search submission, even an empty one.
type State struct {
	Page     int
	Query    string
	Searched bool
	View     View
}

// SearchMode reports whether fetches go to the search endpoint.
func (s State) SearchMode() bool {
	return s.Query != ""
}

func initialState() State {
	return State{Page: 1, View: ViewExplore}
}
