package motionplan

import (
	"math"

	"go.viam.com/rrtplan/motionplan/dubins"
	"go.viam.com/rrtplan/spatialmath"
)

const (
	// Steering samples a path for a slightly wider turn, so the returned state is never marginally
	// more than maxStep away under the nominal radius.
	dubinsSteerMargin = 1.001

	// DefaultDubinsResolution is the angle, in radians, swept between collision checks along a turn.
	DefaultDubinsResolution = math.Pi / 6
)

// DubinsDynamics is a forward-only vehicle with a minimum turning radius. States are
// [x, y, heading] with heading in radians.
type DubinsDynamics struct {
	radius     float64
	resolution float64
}

// NewDubinsDynamics returns a Dubins motion model with the given minimum turning radius.
func NewDubinsDynamics(radius float64) (*DubinsDynamics, error) {
	return NewDubinsDynamicsWithResolution(radius, DefaultDubinsResolution)
}

// NewDubinsDynamicsWithResolution also sets the collision checking resolution; the motion is checked
// every radius*resolution units of path length.
func NewDubinsDynamicsWithResolution(radius, resolution float64) (*DubinsDynamics, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, newInvalidConfigurationError("turning radius must be positive, got %v", radius)
	}
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return nil, newInvalidConfigurationError("dubins resolution must be positive, got %v", resolution)
	}
	return &DubinsDynamics{radius: radius, resolution: resolution}, nil
}

// Radius returns the minimum turning radius.
func (dd *DubinsDynamics) Radius() float64 {
	return dd.radius
}

// Resolution returns the angular collision checking resolution.
func (dd *DubinsDynamics) Resolution() float64 {
	return dd.resolution
}

// Distance is the length of the shortest dubins path, or +Inf if none exists.
func (dd *DubinsDynamics) Distance(from, to State) float64 {
	length, err := dubins.PathLength(toConfig(from), toConfig(to), dd.radius)
	if err != nil {
		return math.Inf(1)
	}
	return length
}

// Steer drives maxStep along the shortest path toward `toward`.
func (dd *DubinsDynamics) Steer(from, toward State, maxStep float64) State {
	if dd.Distance(from, toward) < maxStep {
		return toward.Clone()
	}
	q0, q1 := toConfig(from), toConfig(toward)
	path, err := dubins.ShortestPath(q0, q1, dubinsSteerMargin*dd.radius)
	if err != nil || path.Length() <= maxStep {
		// The wider turn is already short enough; use the nominal path, which is at least maxStep long.
		path, err = dubins.ShortestPath(q0, q1, dd.radius)
		if err != nil {
			return from.Clone()
		}
	}
	q, err := path.Sample(maxStep)
	if err != nil {
		return toward.Clone()
	}
	return fromConfig(q)
}

// Feasible samples the nominal path every radius*resolution units and tests each chord, ending at
// `to`.
func (dd *DubinsDynamics) Feasible(obstacles *spatialmath.Obstacles, from, to State) bool {
	path, err := dubins.ShortestPath(toConfig(from), toConfig(to), dd.radius)
	if err != nil {
		return false
	}
	samples, err := path.SampleMany(dd.radius * dd.resolution)
	if err != nil {
		return false
	}
	pts := make([]State, 0, len(samples)+1)
	for _, q := range samples {
		pts = append(pts, fromConfig(q))
	}
	pts = append(pts, to)
	return !obstacles.IntersectsPolyline(statesToPoints(pts))
}

// Interpolate samples the shortest path every step units of length and appends `to`.
func (dd *DubinsDynamics) Interpolate(from, to State, step float64) []State {
	path, err := dubins.ShortestPath(toConfig(from), toConfig(to), dd.radius)
	if err != nil || !(step > 0) {
		return []State{from.Clone(), to.Clone()}
	}
	samples, err := path.SampleMany(step)
	if err != nil {
		return []State{from.Clone(), to.Clone()}
	}
	out := make([]State, 0, len(samples)+1)
	for _, q := range samples {
		out = append(out, fromConfig(q))
	}
	return append(out, to.Clone())
}

// CheckDimension requires [x, y, heading].
func (dd *DubinsDynamics) CheckDimension(dim int) error {
	if dim != 3 {
		return newInvalidConfigurationError("dubins states need exactly 3 coordinates (x, y, heading), got %d", dim)
	}
	return nil
}

func toConfig(s State) [3]float64 {
	return [3]float64{s[0], s[1], s[2]}
}

func fromConfig(q [3]float64) State {
	return State{q[0], q[1], q[2]}
}
