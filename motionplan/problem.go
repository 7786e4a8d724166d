package motionplan

import (
	"math"

	"go.uber.org/multierr"

	"go.viam.com/rrtplan/spatialmath"
)

// Problem is an immutable planning query: a box shaped state space, a start, a goal, a set of wall
// segments, and the motion model that connects states.
type Problem struct {
	lower     State
	upper     State
	start     State
	goal      State
	obstacles *spatialmath.Obstacles
	dynamics  Dynamics
}

// NewProblem validates and bundles a planning query. All vectors must share one dimension accepted
// by dynamics.CheckDimension, every coordinate must be finite, and lower[i] <= upper[i]. Every
// violation found is reported, each wrapping ErrInvalidConfiguration.
func NewProblem(lower, upper, start, goal []float64, obstacles []spatialmath.Segment, dynamics Dynamics) (*Problem, error) {
	if dynamics == nil {
		return nil, newInvalidConfigurationError("problem requires dynamics")
	}

	var errs []error
	dim := len(start)
	for _, v := range []struct {
		name string
		vec  []float64
	}{
		{"lower bound", lower},
		{"upper bound", upper},
		{"start", start},
		{"goal", goal},
	} {
		if len(v.vec) != dim {
			errs = append(errs, newInvalidConfigurationError("%s has dimension %d, start has %d", v.name, len(v.vec), dim))
			continue
		}
		for i, x := range v.vec {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				errs = append(errs, newInvalidConfigurationError("%s coordinate %d is not finite (%v)", v.name, i, x))
			}
		}
	}
	if err := dynamics.CheckDimension(dim); err != nil {
		errs = append(errs, err)
	}
	if len(lower) == dim && len(upper) == dim {
		for i := range lower {
			if lower[i] > upper[i] {
				errs = append(errs, newInvalidConfigurationError("lower bound %v exceeds upper bound %v in coordinate %d",
					lower[i], upper[i], i))
			}
		}
	}
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}

	obs, err := spatialmath.NewObstacles(obstacles)
	if err != nil {
		return nil, multierr.Combine(newInvalidConfigurationError("bad obstacle"), err)
	}

	return &Problem{
		lower:     State(lower).Clone(),
		upper:     State(upper).Clone(),
		start:     State(start).Clone(),
		goal:      State(goal).Clone(),
		obstacles: obs,
		dynamics:  dynamics,
	}, nil
}

// Dim returns the state dimension.
func (p *Problem) Dim() int {
	return len(p.start)
}

// Lower returns a copy of the lower corner of the state space.
func (p *Problem) Lower() State {
	return p.lower.Clone()
}

// Upper returns a copy of the upper corner of the state space.
func (p *Problem) Upper() State {
	return p.upper.Clone()
}

// Start returns a copy of the initial state.
func (p *Problem) Start() State {
	return p.start.Clone()
}

// Goal returns a copy of the goal state.
func (p *Problem) Goal() State {
	return p.goal.Clone()
}

// Obstacles returns a copy of the wall segments.
func (p *Problem) Obstacles() []spatialmath.Segment {
	return p.obstacles.Segments()
}

// ObstacleSet returns the indexed, read-only obstacle set.
func (p *Problem) ObstacleSet() *spatialmath.Obstacles {
	return p.obstacles
}

// Dynamics returns the motion model.
func (p *Problem) Dynamics() Dynamics {
	return p.dynamics
}
