package cli

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/rrtplan/config"
	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/motionplan"
)

// PlanAction is the corresponding Action for 'plan'.
func PlanAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()

	configPath := c.String(configFlag)
	for _, flag := range []string{outputFlag, geojsonFlag} {
		if c.String(flag) == "" {
			continue
		}
		same, err := samePath(configPath, c.String(flag))
		if err != nil {
			return err
		}
		if same {
			return errors.Errorf("--%s would overwrite the problem file %q", flag, configPath)
		}
	}

	problem, opts, err := loadProblem(configPath, logger)
	if err != nil {
		return err
	}
	if c.IsSet(seedFlag) {
		opts.RandomSeed = c.Int64(seedFlag)
	}
	if c.IsSet(planIterFlag) {
		opts.PlanIter = c.Int(planIterFlag)
	}
	if c.IsSet(timeoutFlag) {
		opts.Timeout = c.Float64(timeoutFlag)
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	mp, err := motionplan.NewRRTMotionPlanner(problem, logger.Sublogger("rrt"))
	if err != nil {
		return err
	}
	start := time.Now()
	plan, err := mp.Solve(c.Context, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printf(c.App.Writer, "%s", planSummary(problem, plan, opts, elapsed))

	if out := c.String(outputFlag); out != "" {
		if err := writePlanJSON(out, plan); err != nil {
			return err
		}
		logger.Debugw("wrote plan", "path", out)
	}
	if out := c.String(geojsonFlag); out != "" {
		if err := writePlanGeoJSON(out, problem, plan, c.Float64(resolutionFlag)); err != nil {
			return err
		}
		logger.Debugw("wrote geojson", "path", out)
	}

	if !plan.Success() {
		if plan.Iterations < opts.PlanIter-1 {
			warningf(c.App.ErrWriter, "search stopped after %d of %d iterations; consider a larger --timeout",
				plan.Iterations, opts.PlanIter-1)
		}
		return motionplan.NewPlannerFailedError()
	}
	return nil
}

// ValidateAction is the corresponding Action for 'validate'.
func ValidateAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()
	problem, opts, err := loadProblem(c.String(configFlag), logger)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s is valid: %d-dimensional problem with %d obstacles, step size %v, %d iterations",
		c.String(configFlag), problem.Dim(), len(problem.Obstacles()), opts.StepSize, opts.PlanIter)
	return nil
}

// VersionAction is the corresponding Action for 'version'.
func VersionAction(c *cli.Context) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("error reading build info")
	}
	if c.Bool(debugFlag) {
		printf(c.App.Writer, "%s", info.String())
	}
	settings := make(map[string]string, len(info.Settings))
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	version := "?"
	if rev, ok := settings["vcs.revision"]; ok {
		version = rev
		if len(version) > 8 {
			version = version[:8]
		}
		if settings["vcs.modified"] == "true" {
			version += "+"
		}
	}
	appVersion := Version
	if appVersion == "" {
		appVersion = "(dev)"
	}
	printf(c.App.Writer, "Version %s Git=%s Go=%s", appVersion, version, info.GoVersion)
	return nil
}

func loadProblem(path string, logger logging.Logger) (*motionplan.Problem, *motionplan.PlannerOptions, error) {
	cfg, err := config.Read(path, logger)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot read problem %q", path)
	}
	return cfg.Build()
}

func planSummary(problem *motionplan.Problem, plan *motionplan.Plan, opts *motionplan.PlannerOptions, elapsed time.Duration) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"status", plan.Status.String()})
	t.AppendRow(table.Row{"iterations", fmt.Sprintf("%d / %d", plan.Iterations, opts.PlanIter-1)})
	t.AppendRow(table.Row{"tree size", plan.Len()})
	t.AppendRow(table.Row{"seed", opts.RandomSeed})
	if plan.Success() {
		t.AppendRow(table.Row{"path states", len(plan.Path)})
		t.AppendRow(table.Row{"path cost", strconv.FormatFloat(plan.Cost(problem.Dynamics()), 'f', 4, 64)})
	}
	t.AppendRow(table.Row{"elapsed", elapsed.Round(time.Millisecond).String()})
	return t.Render()
}
