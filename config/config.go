// Package config reads planning problems from JSON files.
package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/spatialmath"
)

// Supported motion models.
const (
	DynamicsEuclidean = "euclidean"
	DynamicsDubins    = "dubins"
)

// ProblemConfig describes a planning problem as it appears on disk.
type ProblemConfig struct {
	// Dynamics is "euclidean" (the default) or "dubins".
	Dynamics string `json:"dynamics,omitempty"`
	// TurningRadius is required for dubins dynamics.
	TurningRadius float64 `json:"turning_radius,omitempty"`
	// Resolution is the angle, in radians of arc, between collision samples along dubins curves.
	Resolution float64 `json:"resolution,omitempty"`

	Lower []float64 `json:"lower"`
	Upper []float64 `json:"upper"`
	Start []float64 `json:"start"`
	Goal  []float64 `json:"goal"`

	// Obstacles are wall segments given as [[x0, y0], [x1, y1]].
	Obstacles [][2][2]float64 `json:"obstacles,omitempty"`
	// ObstacleFiles are GeoJSON files whose line and polygon edges are added as walls. Relative
	// paths are resolved against the directory of the problem file.
	ObstacleFiles []string `json:"obstacle_files,omitempty"`

	// Planner holds planner option overrides, e.g. {"step_size": 0.5, "plan_iter": 5000}.
	Planner map[string]interface{} `json:"planner,omitempty"`

	ConfigFilePath string `json:"-"`
}

func newConfigValidationFieldRequiredError(path, field string) error {
	return errors.Errorf("%s: %q is required", path, field)
}

func newConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// Validate checks the fields that can be checked without building the problem. Every problem found
// is reported.
func (c *ProblemConfig) Validate(path string) error {
	var errs []error
	switch c.dynamicsName() {
	case DynamicsEuclidean:
	case DynamicsDubins:
		if !(c.TurningRadius > 0) {
			errs = append(errs, newConfigValidationError(path,
				errors.Errorf("turning_radius must be positive for dubins dynamics, got %v", c.TurningRadius)))
		}
		if c.Resolution < 0 {
			errs = append(errs, newConfigValidationError(path, errors.Errorf("resolution can't be negative, got %v", c.Resolution)))
		}
	default:
		errs = append(errs, newConfigValidationError(path, errors.Errorf("unknown dynamics %q", c.Dynamics)))
	}

	for _, v := range []struct {
		field string
		vec   []float64
	}{
		{"lower", c.Lower},
		{"upper", c.Upper},
		{"start", c.Start},
		{"goal", c.Goal},
	} {
		if len(v.vec) == 0 {
			errs = append(errs, newConfigValidationFieldRequiredError(path, v.field))
		}
	}

	for i, seg := range c.Obstacles {
		for _, p := range seg {
			if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
				errs = append(errs, newConfigValidationError(fmt.Sprintf("%s.obstacles.%d", path, i),
					errors.New("coordinates must be finite")))
				break
			}
		}
	}
	for i, f := range c.ObstacleFiles {
		if f == "" {
			errs = append(errs, newConfigValidationFieldRequiredError(fmt.Sprintf("%s.obstacle_files.%d", path, i), "path"))
		}
	}
	return multierr.Combine(errs...)
}

func (c *ProblemConfig) dynamicsName() string {
	if c.Dynamics == "" {
		return DynamicsEuclidean
	}
	return strings.ToLower(c.Dynamics)
}

// NewDynamics creates the motion model named by the config.
func (c *ProblemConfig) NewDynamics() (motionplan.Dynamics, error) {
	switch c.dynamicsName() {
	case DynamicsEuclidean:
		return motionplan.NewEuclideanDynamics(), nil
	case DynamicsDubins:
		if c.Resolution == 0 {
			return motionplan.NewDubinsDynamics(c.TurningRadius)
		}
		return motionplan.NewDubinsDynamicsWithResolution(c.TurningRadius, c.Resolution)
	default:
		return nil, errors.Errorf("unknown dynamics %q", c.Dynamics)
	}
}

// Segments returns the inline obstacles followed by those read from every obstacle file.
func (c *ProblemConfig) Segments() ([]spatialmath.Segment, error) {
	segments := make([]spatialmath.Segment, 0, len(c.Obstacles))
	for _, seg := range c.Obstacles {
		segments = append(segments, spatialmath.NewSegment(seg[0][0], seg[0][1], seg[1][0], seg[1][1]))
	}
	for _, f := range c.ObstacleFiles {
		fromFile, err := spatialmath.ReadGeoJSONSegments(c.resolvePath(f))
		if err != nil {
			return nil, err
		}
		segments = append(segments, fromFile...)
	}
	return segments, nil
}

func (c *ProblemConfig) resolvePath(p string) string {
	if filepath.IsAbs(p) || c.ConfigFilePath == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.ConfigFilePath), p)
}

// Build validates the config and creates the problem and planner options it describes.
func (c *ProblemConfig) Build() (*motionplan.Problem, *motionplan.PlannerOptions, error) {
	if err := c.Validate("problem"); err != nil {
		return nil, nil, err
	}
	dynamics, err := c.NewDynamics()
	if err != nil {
		return nil, nil, err
	}
	segments, err := c.Segments()
	if err != nil {
		return nil, nil, err
	}
	problem, err := motionplan.NewProblem(c.Lower, c.Upper, c.Start, c.Goal, segments, dynamics)
	if err != nil {
		return nil, nil, err
	}
	opts, err := motionplan.NewPlannerOptionsFromExtra(c.Planner)
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid planner block")
	}
	return problem, opts, nil
}
