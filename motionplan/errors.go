package motionplan

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is returned, wrapped with details, for malformed problems and options.
	// It is always returned before any sampling happens.
	ErrInvalidConfiguration = errors.New("invalid planner configuration")

	// ErrCapacityExceeded is returned when inserting into a full Tree.
	ErrCapacityExceeded = errors.New("planning tree capacity exceeded")
)

// NewPlannerFailedError is returned by callers that require a solution when the search ended
// without reaching the goal.
func NewPlannerFailedError() error {
	return errors.New("motion planner failed to find path")
}

func newInvalidConfigurationError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfiguration, format, args...)
}
