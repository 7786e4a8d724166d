package motionplan

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"go.viam.com/rrtplan/spatialmath"
)

func TestEuclideanSteer(t *testing.T) {
	ed := NewEuclideanDynamics()

	t.Run("close targets are returned unchanged", func(t *testing.T) {
		from, to := State{0, 0}, State{0.3, 0.4}
		got := ed.Steer(from, to, 1)
		test.That(t, got, test.ShouldResemble, to)
		// The result does not alias the input.
		got[0] = 9
		test.That(t, to[0], test.ShouldEqual, 0.3)
	})

	t.Run("far targets are reached in exact steps", func(t *testing.T) {
		got := ed.Steer(State{0, 0}, State{3, 4}, 1)
		test.That(t, got[0], test.ShouldAlmostEqual, 0.6)
		test.That(t, got[1], test.ShouldAlmostEqual, 0.8)
	})

	t.Run("random", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(1))
		for i := 0; i < 1000; i++ {
			from := State{rnd.Float64()*10 - 5, rnd.Float64()*10 - 5}
			to := State{rnd.Float64()*10 - 5, rnd.Float64()*10 - 5}
			eps := 0.1 + rnd.Float64()*3
			got := ed.Steer(from, to, eps)
			if ed.Distance(from, to) < eps {
				test.That(t, got, test.ShouldResemble, to)
				continue
			}
			test.That(t, ed.Distance(from, got), test.ShouldAlmostEqual, eps, 1e-9)
			// On the segment from -> to.
			test.That(t, ed.Distance(from, got)+ed.Distance(got, to), test.ShouldAlmostEqual, ed.Distance(from, to), 1e-9)
		}
	})
}

func TestEuclideanFeasible(t *testing.T) {
	ed := NewEuclideanDynamics()
	obs, err := spatialmath.NewObstacles([]spatialmath.Segment{spatialmath.NewSegment(-2, 2, 2, -2)})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, ed.Feasible(obs, State{-4, -4}, State{4, 4}), test.ShouldBeFalse)
	test.That(t, ed.Feasible(obs, State{-4, -4}, State{-4, 4}), test.ShouldBeTrue)
	// Stopping on the wall counts as a collision.
	test.That(t, ed.Feasible(obs, State{-4, -4}, State{0, 0}), test.ShouldBeFalse)
	test.That(t, ed.Feasible(nil, State{-4, -4}, State{4, 4}), test.ShouldBeTrue)
}

func TestEuclideanInterpolate(t *testing.T) {
	ed := NewEuclideanDynamics()
	pts := ed.Interpolate(State{0, 0}, State{2, 0}, 0.5)
	test.That(t, len(pts), test.ShouldEqual, 5)
	for i, p := range pts {
		test.That(t, p[0], test.ShouldAlmostEqual, 0.5*float64(i))
		test.That(t, p[1], test.ShouldEqual, 0.)
	}
	test.That(t, ed.Interpolate(State{1, 1}, State{1, 1}, 0.5), test.ShouldResemble, []State{{1, 1}, {1, 1}})
	test.That(t, ed.CheckDimension(2), test.ShouldBeNil)
	test.That(t, ed.CheckDimension(5), test.ShouldBeNil)
	test.That(t, ed.CheckDimension(1), test.ShouldNotBeNil)
}

func TestDubinsDynamics(t *testing.T) {
	_, err := NewDubinsDynamics(0)
	test.That(t, err, test.ShouldBeError)
	_, err = NewDubinsDynamicsWithResolution(1, -1)
	test.That(t, err, test.ShouldBeError)

	dd, err := NewDubinsDynamics(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dd.Radius(), test.ShouldEqual, 1.)
	test.That(t, dd.Resolution(), test.ShouldEqual, math.Pi/6)
	test.That(t, dd.CheckDimension(3), test.ShouldBeNil)
	test.That(t, dd.CheckDimension(2), test.ShouldNotBeNil)

	t.Run("distance", func(t *testing.T) {
		test.That(t, dd.Distance(State{0, 0, 0}, State{4, 4, math.Pi}), test.ShouldAlmostEqual, 7.613728608589373, 1e-9)
		// Backing up is not allowed, so the metric is not symmetric.
		test.That(t, dd.Distance(State{-1, 0, 0}, State{0, 0, 0}), test.ShouldAlmostEqual, 1, 1e-9)
		test.That(t, dd.Distance(State{0, 0, 0}, State{-1, 0, 0}), test.ShouldAlmostEqual, 2*math.Pi+1, 1e-9)
	})

	t.Run("steer never overshoots", func(t *testing.T) {
		small, err := NewDubinsDynamics(0.5)
		test.That(t, err, test.ShouldBeNil)
		rnd := rand.New(rand.NewSource(1))
		for i := 0; i < 2000; i++ {
			from := State{rnd.Float64()*10 - 5, rnd.Float64()*10 - 5, rnd.Float64() * 2 * math.Pi}
			to := State{rnd.Float64()*10 - 5, rnd.Float64()*10 - 5, rnd.Float64() * 2 * math.Pi}
			got := small.Steer(from, to, 1)
			if small.Distance(from, to) < 1 {
				test.That(t, got, test.ShouldResemble, to)
				continue
			}
			test.That(t, small.Distance(from, got), test.ShouldBeLessThanOrEqualTo, 1+1e-9)
		}
	})

	t.Run("straight steer", func(t *testing.T) {
		got := dd.Steer(State{0, 0, 0}, State{10, 0, 0}, 2)
		test.That(t, got[0], test.ShouldAlmostEqual, 2, 1e-9)
		test.That(t, got[1], test.ShouldAlmostEqual, 0, 1e-9)
	})
}

func TestDubinsFeasible(t *testing.T) {
	dd, err := NewDubinsDynamics(1)
	test.That(t, err, test.ShouldBeNil)

	wall := func(x0, y0, x1, y1 float64) *spatialmath.Obstacles {
		obs, err := spatialmath.NewObstacles([]spatialmath.Segment{spatialmath.NewSegment(x0, y0, x1, y1)})
		test.That(t, err, test.ShouldBeNil)
		return obs
	}

	t.Run("straight", func(t *testing.T) {
		test.That(t, dd.Feasible(wall(2, -1, 2, 1), State{0, 0, 0}, State{4, 0, 0}), test.ShouldBeFalse)
		test.That(t, dd.Feasible(wall(2, 1, 3, 1), State{0, 0, 0}, State{4, 0, 0}), test.ShouldBeTrue)
	})

	t.Run("half circle", func(t *testing.T) {
		// The path is the left half circle centered at (0, 1), reaching x = 1 at (1, 1).
		from, to := State{0, 0, 0}, State{0, 2, math.Pi}
		test.That(t, dd.Feasible(wall(0.9, 0.5, 0.9, 1.5), from, to), test.ShouldBeFalse)
		test.That(t, dd.Feasible(wall(1.05, 0.5, 1.05, 1.5), from, to), test.ShouldBeTrue)
		// The straight chord would pass a wall that the curve runs into.
		test.That(t, NewEuclideanDynamics().Feasible(wall(0.9, 0.5, 0.9, 1.5), from, to), test.ShouldBeTrue)
	})

	t.Run("interpolate", func(t *testing.T) {
		pts := dd.Interpolate(State{0, 0, 0}, State{0, 2, math.Pi}, math.Pi/4)
		test.That(t, len(pts), test.ShouldEqual, 5)
		test.That(t, pts[0], test.ShouldResemble, State{0, 0, 0})
		test.That(t, pts[2][0], test.ShouldAlmostEqual, 1, 1e-9)
		test.That(t, pts[2][1], test.ShouldAlmostEqual, 1, 1e-9)
		test.That(t, pts[4], test.ShouldResemble, State{0, 2, math.Pi})
	})
}

func TestState(t *testing.T) {
	s := State{1, 2, 3}
	test.That(t, s.Equal(State{1, 2, 3}), test.ShouldBeTrue)
	test.That(t, s.Equal(State{1, 2, 3.0000001}), test.ShouldBeFalse)
	test.That(t, s.Equal(State{1, 2}), test.ShouldBeFalse)
	test.That(t, s.Dim(), test.ShouldEqual, 3)
	test.That(t, s.Point().X, test.ShouldEqual, 1.)
	test.That(t, s.Point().Y, test.ShouldEqual, 2.)
	var nilState State
	test.That(t, nilState.Clone(), test.ShouldBeNil)
}
