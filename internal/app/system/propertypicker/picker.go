// Package propertypicker holds the state of the revenue dashboard's property
// selector: the tenant's property list, the current selection, and the single
// asynchronous fetch that populates the list when a dashboard is mounted.
//
// The static catalogue and the tenant-scoped fetch are the same component with
// different Sources. All state changes go through Apply and Select so the
// fail-closed policy (hide everything when the list is unavailable) is one
// explicit branch.
package propertypicker

import (
	"github.com/dalemusser/revenuedash/internal/domain/models"
)

// LoadingLabel is the text of the disabled placeholder option shown while the
// list is pending or unavailable.
const LoadingLabel = "Loading..."

// Phase is the selector's lifecycle position.
type Phase int

const (
	// PhaseLoading: fetch issued, not yet resolved.
	PhaseLoading Phase = iota
	// PhaseReady: list populated, first entry selected.
	PhaseReady
	// PhaseUnavailable: fetch failed or returned nothing usable.
	PhaseUnavailable
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result is the outcome of a property list fetch.
type Result struct {
	Properties []models.Property
	Err        error
}

// Succeeded wraps a resolved fetch.
func Succeeded(list []models.Property) Result {
	return Result{Properties: list}
}

// Failed wraps a rejected fetch.
func Failed(err error) Result {
	return Result{Err: err}
}

// usable reports whether the result can populate a selector. A nil list is
// how a non-array payload arrives here, so it is treated like an empty one.
func (r Result) usable() bool {
	return r.Err == nil && len(r.Properties) > 0
}

// State is the selector's value. The zero value is not meaningful; start from
// Initial or Static.
type State struct {
	Phase      Phase
	Properties []models.Property
	Selected   string
}

// Initial returns the state of a freshly mounted dynamic dashboard.
func Initial() State {
	return State{Phase: PhaseLoading}
}

// Static returns a ready state over a fixed catalogue. defaultID is selected
// when it names a catalogue entry; otherwise the first entry is.
func Static(catalogue []models.Property, defaultID string) State {
	s := Apply(Initial(), Succeeded(catalogue))
	if s.Has(defaultID) {
		s.Selected = defaultID
	}
	return s
}

// Apply transitions a loading state on a fetch result. Results arriving after
// the state has left PhaseLoading are ignored.
func Apply(s State, res Result) State {
	if s.Phase != PhaseLoading {
		return s
	}
	if !res.usable() {
		return State{Phase: PhaseUnavailable}
	}
	list := make([]models.Property, len(res.Properties))
	copy(list, res.Properties)
	return State{
		Phase:      PhaseReady,
		Properties: list,
		Selected:   list[0].PropertyID,
	}
}

// Select changes the selection to id. Ids that are not offered are ignored.
func (s State) Select(id string) State {
	if s.Phase != PhaseReady || !s.Has(id) {
		return s
	}
	s.Selected = id
	return s
}

// Has reports whether id is in the current list.
func (s State) Has(id string) bool {
	if id == "" {
		return false
	}
	for _, p := range s.Properties {
		if p.PropertyID == id {
			return true
		}
	}
	return false
}

// Option is one rendered <option>.
type Option struct {
	ID       string
	Name     string
	Selected bool
}

// View is what the dashboard template renders.
type View struct {
	Phase             Phase
	Options           []Option
	Disabled          bool
	Placeholder       string
	SummaryPropertyID string
}

// ShowSummary reports whether the revenue panel is mounted.
func (v View) ShowSummary() bool {
	return v.SummaryPropertyID != ""
}

// View renders the state. The selector is disabled, and the placeholder shown,
// exactly when the list is empty.
func (s State) View() View {
	v := View{
		Phase:             s.Phase,
		SummaryPropertyID: s.Selected,
	}
	if len(s.Properties) == 0 {
		v.Disabled = true
		v.Placeholder = LoadingLabel
		v.SummaryPropertyID = ""
		return v
	}
	v.Options = make([]Option, 0, len(s.Properties))
	for _, p := range s.Properties {
		v.Options = append(v.Options, Option{
			ID:       p.PropertyID,
			Name:     p.DisplayName(),
			Selected: p.PropertyID == s.Selected,
		})
	}
	return v
}
