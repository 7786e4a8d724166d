package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.viam.com/test"

	"go.viam.com/rrtplan/motionplan"
)

const straightLineProblem = `{
	"lower": [-5, -5],
	"upper": [5, 5],
	"start": [-4, -4],
	"goal": [4, 4],
	"planner": {"step_size": 1, "goal_bias": 1, "plan_iter": 13}
}`

func writeProblem(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.json")
	test.That(t, os.WriteFile(path, []byte(body), 0o600), test.ShouldBeNil)
	return path
}

func runApp(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	err := app.Run(append([]string{"rrtplan"}, args...))
	return out.String(), errOut.String(), err
}

func TestPlanCommand(t *testing.T) {
	problemPath := writeProblem(t, straightLineProblem)
	dir := filepath.Dir(problemPath)

	t.Run("success", func(t *testing.T) {
		planPath := filepath.Join(dir, "plan.json.gz")
		geoPath := filepath.Join(dir, "plan.geojson")
		out, _, err := runApp("plan", "--config", problemPath, "--output", planPath, "--geojson", geoPath)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "succeeded")
		test.That(t, out, test.ShouldContainSubstring, "path cost")

		//nolint:gosec
		f, err := os.Open(planPath)
		test.That(t, err, test.ShouldBeNil)
		defer f.Close()
		gz, err := gzip.NewReader(f)
		test.That(t, err, test.ShouldBeNil)
		var decoded struct {
			Status  motionplan.Status `json:"status"`
			Parents []int             `json:"parents"`
			Path    [][]float64       `json:"path"`
		}
		test.That(t, json.NewDecoder(gz).Decode(&decoded), test.ShouldBeNil)
		test.That(t, decoded.Status, test.ShouldEqual, motionplan.Succeeded)
		test.That(t, len(decoded.Path), test.ShouldEqual, 13)
		test.That(t, len(decoded.Parents), test.ShouldEqual, 13)
		test.That(t, decoded.Path[12], test.ShouldResemble, []float64{4, 4})

		data, err := os.ReadFile(geoPath)
		test.That(t, err, test.ShouldBeNil)
		fc, err := geojson.UnmarshalFeatureCollection(data)
		test.That(t, err, test.ShouldBeNil)
		kinds := []string{}
		for _, f := range fc.Features {
			kinds = append(kinds, f.Properties.MustString("kind"))
		}
		test.That(t, kinds, test.ShouldResemble, []string{"obstacles", "tree", "path", "start", "goal"})
	})

	t.Run("plain json", func(t *testing.T) {
		planPath := filepath.Join(dir, "plan.json")
		_, _, err := runApp("plan", "-c", problemPath, "-o", planPath)
		test.That(t, err, test.ShouldBeNil)
		data, err := os.ReadFile(planPath)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, string(data), test.ShouldContainSubstring, `"status":"succeeded"`)
	})

	t.Run("exhausted", func(t *testing.T) {
		out, _, err := runApp("plan", "--config", problemPath, "--plan-iter", "10")
		test.That(t, err, test.ShouldBeError, motionplan.NewPlannerFailedError())
		test.That(t, out, test.ShouldContainSubstring, "exhausted")
	})

	t.Run("timeout warns", func(t *testing.T) {
		_, errOut, err := runApp("plan", "--config", problemPath, "--plan-iter", "1000000", "--timeout", "0.000001")
		// The goal is reached within 12 iterations unless the clock runs out first.
		if err != nil {
			test.That(t, err, test.ShouldBeError, motionplan.NewPlannerFailedError())
			test.That(t, errOut, test.ShouldContainSubstring, "Warning")
		}
	})

	t.Run("bad overrides", func(t *testing.T) {
		_, _, err := runApp("plan", "--config", problemPath, "--plan-iter", "0")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "plan_iter")
	})

	t.Run("refuses to overwrite the problem", func(t *testing.T) {
		_, _, err := runApp("plan", "--config", problemPath, "--output", problemPath)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "overwrite")
		data, err := os.ReadFile(problemPath)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, string(data), test.ShouldEqual, straightLineProblem)
	})

	t.Run("missing config", func(t *testing.T) {
		_, _, err := runApp("plan")
		test.That(t, err, test.ShouldNotBeNil)
		_, _, err = runApp("plan", "--config", filepath.Join(dir, "nope.json"))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "cannot read problem")
	})
}

func TestPlanCommandDebugLogging(t *testing.T) {
	problemPath := writeProblem(t, straightLineProblem)
	_, errOut, err := runApp("--debug", "plan", "--config", problemPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "rrt search finished")
	test.That(t, errOut, test.ShouldContainSubstring, "rrtplan.rrt")

	_, errOut, err = runApp("plan", "--config", problemPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldNotContainSubstring, "rrt search finished")
}

func TestLogFile(t *testing.T) {
	problemPath := writeProblem(t, straightLineProblem)
	logPath := filepath.Join(filepath.Dir(problemPath), "rrtplan.log")
	_, _, err := runApp("--debug", "--log-file", logPath, "plan", "--config", problemPath)
	test.That(t, err, test.ShouldBeNil)
	data, err := os.ReadFile(logPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldContainSubstring, "rrt search finished")
	test.That(t, string(data), test.ShouldContainSubstring, "read problem")
}

func TestValidateCommand(t *testing.T) {
	out, _, err := runApp("validate", "--config", filepath.Join("..", "examples", "maze_dubins.json"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "is valid: 3-dimensional problem with 15 obstacles")

	bad := writeProblem(t, `{"lower": [0, 0], "upper": [1, 1], "start": [0, 0], "goal": [2, 2, 2]}`)
	_, _, err = runApp("validate", "--config", bad)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "goal")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runApp("version")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "Version (dev)")
}

func TestPlanFeatureCollection(t *testing.T) {
	dd, err := motionplan.NewDubinsDynamics(1)
	test.That(t, err, test.ShouldBeNil)
	problem, err := motionplan.NewProblem([]float64{-5, -5, 0}, []float64{5, 5, 6.3},
		[]float64{0, 0, 0}, []float64{0, 2, 3.141592653589793}, nil, dd)
	test.That(t, err, test.ShouldBeNil)
	mp, err := motionplan.NewRRTMotionPlanner(problem, nil)
	test.That(t, err, test.ShouldBeNil)
	opts := motionplan.NewBasicPlannerOptions()
	opts.GoalBias = 1
	opts.StepSize = 10
	plan, err := mp.Solve(context.Background(), opts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plan.Success(), test.ShouldBeTrue)

	fc := PlanFeatureCollection(problem, plan, 0.1)
	test.That(t, len(fc.Features), test.ShouldEqual, 5)
	path := fc.Features[2]
	test.That(t, path.Properties.MustString("kind"), test.ShouldEqual, "path")
	// A half turn of radius 1 sampled every 0.1 has about 33 points.
	test.That(t, len(path.Geometry.(orb.LineString)), test.ShouldBeGreaterThan, 30)
}
