package motionplan

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"go.viam.com/rrtplan/spatialmath"
)

// EuclideanDynamics is a holonomic point robot: it may move in a straight line between any two
// states. Distance is the L2 norm over all coordinates.
type EuclideanDynamics struct{}

// NewEuclideanDynamics returns the straight-line motion model.
func NewEuclideanDynamics() *EuclideanDynamics {
	return &EuclideanDynamics{}
}

// Distance returns the two-norm of to - from.
func (ed *EuclideanDynamics) Distance(from, to State) float64 {
	// 2 is the L value returning a standard L2 Normalization
	return floats.Distance(from, to, 2)
}

// Steer moves maxStep along the segment from `from` toward `toward`.
func (ed *EuclideanDynamics) Steer(from, toward State, maxStep float64) State {
	dist := ed.Distance(from, toward)
	if dist < maxStep {
		return toward.Clone()
	}
	diff := make([]float64, len(from))
	floats.SubTo(diff, toward, from)
	out := make(State, len(from))
	floats.AddScaledTo(out, from, maxStep/dist, diff)
	return out
}

// Feasible tests the single segment between the planar positions of the two states.
func (ed *EuclideanDynamics) Feasible(obstacles *spatialmath.Obstacles, from, to State) bool {
	return !obstacles.IntersectsSegment(spatialmath.Segment{Start: from.Point(), End: to.Point()})
}

// Interpolate returns evenly spaced states on the segment, including both ends.
func (ed *EuclideanDynamics) Interpolate(from, to State, step float64) []State {
	dist := ed.Distance(from, to)
	if !(step > 0) || dist == 0 {
		return []State{from.Clone(), to.Clone()}
	}
	steps := int(math.Ceil(dist / step))
	out := make([]State, 0, steps+1)
	diff := make([]float64, len(from))
	floats.SubTo(diff, to, from)
	for i := 0; i < steps; i++ {
		s := make(State, len(from))
		floats.AddScaledTo(s, from, float64(i)/float64(steps), diff)
		out = append(out, s)
	}
	return append(out, to.Clone())
}

// CheckDimension requires at least a planar position.
func (ed *EuclideanDynamics) CheckDimension(dim int) error {
	if dim < 2 {
		return newInvalidConfigurationError("euclidean states need at least 2 coordinates, got %d", dim)
	}
	return nil
}
