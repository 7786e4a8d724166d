package motionplan

import (
	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"
)

// State is a point in the planning space. The first two coordinates are always the planar position
// used for collision checking; further coordinates (e.g. heading) are interpreted by the Dynamics.
type State []float64

// Clone returns a copy of the state that shares no memory with s.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	return append(State(nil), s...)
}

// Equal returns true if both states have the same dimension and every coordinate is exactly equal.
func (s State) Equal(other State) bool {
	return floats.Equal(s, other)
}

// Point returns the planar position of the state.
func (s State) Point() r2.Point {
	return r2.Point{X: s[0], Y: s[1]}
}

// Dim returns the number of coordinates.
func (s State) Dim() int {
	return len(s)
}

func cloneStates(states []State) []State {
	out := make([]State, 0, len(states))
	for _, s := range states {
		out = append(out, s.Clone())
	}
	return out
}
