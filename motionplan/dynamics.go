package motionplan

import (
	"github.com/golang/geo/r2"

	"go.viam.com/rrtplan/spatialmath"
)

// Dynamics describes how a robot may move between two states. The search in RRTMotionPlanner only
// talks to this interface and never inspects the concrete motion model.
type Dynamics interface {
	// Distance is the length of the shortest admissible motion from one state to another. It is
	// non-negative and need not be symmetric.
	Distance(from, to State) float64

	// Steer returns toward itself if Distance(from, toward) < maxStep, and otherwise the state reached
	// after travelling exactly maxStep along the admissible motion from `from` toward `toward`.
	Steer(from, toward State, maxStep float64) State

	// Feasible returns true if the admissible motion from one state to another touches no obstacle.
	Feasible(obstacles *spatialmath.Obstacles, from, to State) bool

	// Interpolate returns states along the admissible motion spaced at most step apart, starting at
	// from and ending at to.
	Interpolate(from, to State, step float64) []State

	// CheckDimension returns an error if states of the given dimension cannot be used with this model.
	CheckDimension(dim int) error
}

func statesToPoints(states []State) []r2.Point {
	pts := make([]r2.Point, 0, len(states))
	for _, s := range states {
		pts = append(pts, s.Point())
	}
	return pts
}
