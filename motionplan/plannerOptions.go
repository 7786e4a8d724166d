package motionplan

import (
	"encoding/json"
	"math"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rrtplan/utils"
)

// default values for planning options.
const (
	// Maximum distance travelled by a single steering step.
	defaultStepSize = 1.0

	// Number of planner iterations before giving up.
	defaultPlanIter = 1000

	// Probability of sampling the goal instead of a uniform random state.
	defaultGoalBias = 0.05

	// random seed.
	defaultRandomSeed = 0

	// default number of seconds to try to solve in total before returning. Zero means no limit.
	defaultTimeout = 0.
)

var defaultNumThreads = utils.MinInt(runtime.NumCPU()/2, 10)

func init() {
	defaultNumThreads = utils.GetenvInt(utils.NumThreadsEnvVar, defaultNumThreads)
}

// NewBasicPlannerOptions specifies a set of basic options for the planner.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		StepSize:          defaultStepSize,
		PlanIter:          defaultPlanIter,
		GoalBias:          defaultGoalBias,
		RandomSeed:        defaultRandomSeed,
		Timeout:           defaultTimeout,
		NumThreads:        utils.MaxInt(defaultNumThreads, 1),
		ParallelNeighbors: defaultParallelNeighbors,
	}
}

// PlannerOptions are a set of options to be passed to a planner which will specify how to solve a motion planning problem.
type PlannerOptions struct {
	// Maximum length of a single extension of the tree, measured with the Dynamics distance.
	StepSize float64 `json:"step_size"`

	// Number of planner iterations before giving up. The tree never holds more than this many states.
	PlanIter int `json:"plan_iter"`

	// Probability in [0, 1] of using the goal as the sample in an iteration.
	GoalBias float64 `json:"goal_bias"`

	// The random seed used during planning. This parameter guarantees deterministic outputs for a
	// given set of identical inputs.
	RandomSeed int64 `json:"rseed"`

	// Number of seconds before terminating the search as exhausted. Zero disables the limit.
	Timeout float64 `json:"timeout"`

	// Number of goroutines used for nearest neighbor searches on large trees.
	NumThreads int `json:"num_threads"`

	// Tree size above which nearest neighbor searches are split across NumThreads goroutines.
	ParallelNeighbors int `json:"parallel_neighbors"`
}

// NewPlannerOptionsFromExtra returns basic default settings updated by overridden parameters
// found in extra, e.g. the "planner" block of a problem file.
func NewPlannerOptionsFromExtra(extra map[string]interface{}) (*PlannerOptions, error) {
	opt := NewBasicPlannerOptions()

	jsonString, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(jsonString, opt); err != nil {
		return nil, errors.Wrap(err, "failed to decode planner options")
	}

	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return opt, nil
}

// Validate reports every option outside its allowed range. Each reported error wraps
// ErrInvalidConfiguration.
func (p *PlannerOptions) Validate() error {
	var errs []error
	if !(p.StepSize > 0) || math.IsInf(p.StepSize, 0) {
		errs = append(errs, newInvalidConfigurationError("step_size must be positive, got %v", p.StepSize))
	}
	if p.PlanIter < 1 {
		errs = append(errs, newInvalidConfigurationError("plan_iter must be at least 1, got %d", p.PlanIter))
	}
	if !(p.GoalBias >= 0 && p.GoalBias <= 1) {
		errs = append(errs, newInvalidConfigurationError("goal_bias must be in [0, 1], got %v", p.GoalBias))
	}
	if !(p.Timeout >= 0) || math.IsInf(p.Timeout, 0) {
		errs = append(errs, newInvalidConfigurationError("timeout must be a finite, non-negative number of seconds, got %v", p.Timeout))
	}
	if p.NumThreads < 1 {
		errs = append(errs, newInvalidConfigurationError("num_threads must be at least 1, got %d", p.NumThreads))
	}
	if p.ParallelNeighbors < 0 {
		errs = append(errs, newInvalidConfigurationError("parallel_neighbors can't be negative, got %d", p.ParallelNeighbors))
	}
	return multierr.Combine(errs...)
}

func (p *PlannerOptions) timeoutDuration() time.Duration {
	return time.Duration(p.Timeout * float64(time.Second))
}
