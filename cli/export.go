package cli

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/spatialmath"
)

const defaultExportResolution = 0.1

// Feature kinds written to the "kind" property of exported GeoJSON.
const (
	featureObstacles = "obstacles"
	featureTree      = "tree"
	featurePath      = "path"
	featureStart     = "start"
	featureGoal      = "goal"
)

// writePlanJSON writes the plan as JSON, gzip compressed when the path ends in ".gz".
func writePlanJSON(path string, plan *motionplan.Plan) error {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %q", path)
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}
	if err := json.NewEncoder(w).Encode(plan); err != nil {
		return errors.Wrap(err, "cannot encode plan")
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return err
		}
	}
	return f.Sync()
}

// PlanFeatureCollection returns the obstacles, every tree edge, and the solution trajectory as
// GeoJSON features, each tagged with a "kind" property. Edges and the trajectory are sampled at most
// resolution apart so curved motions keep their shape.
func PlanFeatureCollection(problem *motionplan.Problem, plan *motionplan.Plan, resolution float64) *geojson.FeatureCollection {
	dynamics := problem.Dynamics()
	fc := geojson.NewFeatureCollection()

	obstacles := geojson.NewFeature(spatialmath.SegmentsToMultiLineString(problem.Obstacles()))
	obstacles.Properties["kind"] = featureObstacles
	fc.Append(obstacles)

	edges := plan.Edges(dynamics, resolution)
	treeLines := make(orb.MultiLineString, 0, len(edges))
	for _, edge := range edges {
		treeLines = append(treeLines, statesToLineString(edge))
	}
	tree := geojson.NewFeature(treeLines)
	tree.Properties["kind"] = featureTree
	tree.Properties["size"] = plan.Len()
	fc.Append(tree)

	if plan.Success() {
		path := geojson.NewFeature(statesToLineString(plan.Trajectory(dynamics, resolution)))
		path.Properties["kind"] = featurePath
		path.Properties["cost"] = plan.Cost(dynamics)
		path.Properties["states"] = len(plan.Path)
		fc.Append(path)
	}

	for _, end := range []struct {
		kind  string
		state motionplan.State
	}{{featureStart, problem.Start()}, {featureGoal, problem.Goal()}} {
		point := geojson.NewFeature(orb.Point{end.state[0], end.state[1]})
		point.Properties["kind"] = end.kind
		point.Properties["state"] = []float64(end.state)
		fc.Append(point)
	}
	return fc
}

func writePlanGeoJSON(path string, problem *motionplan.Problem, plan *motionplan.Plan, resolution float64) error {
	data, err := PlanFeatureCollection(problem, plan, resolution).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "cannot encode geojson")
	}
	return os.WriteFile(path, data, 0o600)
}

func statesToLineString(states []motionplan.State) orb.LineString {
	out := make(orb.LineString, 0, len(states))
	for _, s := range states {
		out = append(out, orb.Point{s[0], s[1]})
	}
	return out
}
