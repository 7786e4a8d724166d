package motionplan

import (
	"context"
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/rrtplan/logging"
)

// RRTMotionPlanner grows a Rapidly-exploring Random Tree from the start of a Problem until a
// feasible motion lands exactly on the goal or the iteration budget runs out.
type RRTMotionPlanner struct {
	problem *Problem
	logger  logging.Logger
	clock   clock.Clock
}

// NewRRTMotionPlanner creates a planner for the given problem.
func NewRRTMotionPlanner(problem *Problem, logger logging.Logger) (*RRTMotionPlanner, error) {
	if problem == nil {
		return nil, newInvalidConfigurationError("planner requires a problem")
	}
	if logger == nil {
		logger = logging.NewBlankLogger("rrt")
	}
	return &RRTMotionPlanner{problem: problem, logger: logger, clock: clock.New()}, nil
}

// Problem returns the problem being solved.
func (mp *RRTMotionPlanner) Problem() *Problem {
	return mp.problem
}

// Solve runs one search. Every call starts from a fresh tree and a random source seeded from
// opts.RandomSeed, so identical calls return identical plans.
//
// Each iteration k = 1 .. PlanIter-1 draws a goal-bias coin and then a uniform sample of the state
// space (both are drawn every iteration, in that order), replaces the sample with the goal if the
// coin is below GoalBias, steers from the nearest tree state toward it by at most StepSize, and
// inserts the result if the motion is feasible. A new state exactly equal to the goal ends the
// search as Succeeded. Running out of iterations, or of opts.Timeout, ends it as Exhausted; neither
// is an error. Cancelling ctx aborts with ctx.Err().
func (mp *RRTMotionPlanner) Solve(ctx context.Context, opts *PlannerOptions) (*Plan, error) {
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	problem := mp.problem
	dynamics := problem.dynamics
	goal := problem.goal

	tree, err := NewTree(problem.start, opts.PlanIter, dynamics)
	if err != nil {
		return nil, err
	}
	tree.setParallelism(opts.NumThreads, opts.ParallelNeighbors)

	//nolint:gosec
	randseed := rand.New(rand.NewSource(opts.RandomSeed))

	var deadline <-chan time.Time
	if opts.Timeout > 0 {
		timer := mp.clock.Timer(opts.timeoutDuration())
		defer timer.Stop()
		deadline = timer.C
	}

	plan := &Plan{Status: Running, tree: tree}
	rejected := 0
	start := mp.clock.Now()

search:
	for k := 1; k < opts.PlanIter; k++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			mp.logger.Debugf("rrt search timed out after %d iterations", plan.Iterations)
			break search
		default:
		}
		plan.Iterations = k

		target := mp.sample(randseed, opts.GoalBias)
		near, err := tree.Nearest(ctx, target)
		if err != nil {
			return nil, err
		}
		nearState := tree.State(near)
		newState := dynamics.Steer(nearState, target, opts.StepSize)
		if !dynamics.Feasible(problem.obstacles, nearState, newState) {
			rejected++
			continue
		}

		idx, err := tree.Insert(near, newState)
		if err != nil {
			return nil, errors.Wrapf(err, "iteration %d", k)
		}
		if newState.Equal(goal) {
			plan.Status = Succeeded
			plan.Path = tree.PathToRoot(idx)
			mp.logger.Debugw("rrt reached goal",
				"iteration", k,
				"path_length", len(plan.Path),
				"cost", plan.Cost(dynamics),
			)
			break search
		}
	}
	if plan.Status == Running {
		plan.Status = Exhausted
	}

	mp.logger.Infow("rrt search finished",
		"status", plan.Status.String(),
		"iterations", plan.Iterations,
		"tree_size", tree.Len(),
		"rejected", rejected,
		"elapsed", mp.clock.Since(start).String(),
	)
	return plan, nil
}

// sample draws the bias coin and then a uniform state from the bounding box. The uniform state is
// always drawn so every iteration consumes the same amount of randomness.
func (mp *RRTMotionPlanner) sample(randseed *rand.Rand, goalBias float64) State {
	z := randseed.Float64()
	lower, upper := mp.problem.lower, mp.problem.upper
	x := make(State, len(lower))
	for i := range x {
		x[i] = lower[i] + randseed.Float64()*(upper[i]-lower[i])
	}
	if z < goalBias {
		return mp.problem.goal.Clone()
	}
	return x
}
