package spatialmath

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestSegmentsIntersect(t *testing.T) {
	for _, tc := range []struct {
		name     string
		a, b     Segment
		expected bool
	}{
		{"crossing", NewSegment(0, 0, 2, 2), NewSegment(0, 2, 2, 0), true},
		{"disjoint parallel", NewSegment(0, 0, 2, 0), NewSegment(0, 1, 2, 1), false},
		{"disjoint skew", NewSegment(0, 0, 1, 1), NewSegment(2, 0, 3, -5), false},
		{"t junction", NewSegment(0, 0, 2, 0), NewSegment(1, 0, 1, 3), true},
		{"shared endpoint", NewSegment(0, 0, 1, 1), NewSegment(1, 1, 2, 0), true},
		{"identical", NewSegment(0, 0, 1, 1), NewSegment(0, 0, 1, 1), true},
		{"collinear overlap", NewSegment(0, 0, 3, 0), NewSegment(2, 0, 5, 0), true},
		{"collinear touching", NewSegment(0, 0, 2, 0), NewSegment(2, 0, 4, 0), true},
		{"collinear apart", NewSegment(0, 0, 1, 0), NewSegment(2, 0, 4, 0), false},
		{"corner graze", NewSegment(-1, 1, 1, -1), NewSegment(0, 0, 0, 5), true},
		{"near miss", NewSegment(-1, 1, 1, -1), NewSegment(0.001, 0.001, 0, 5), false},
		{"point on segment", NewSegment(1, 1, 1, 1), NewSegment(0, 0, 2, 2), true},
		{"point off segment", NewSegment(1, 2, 1, 2), NewSegment(0, 0, 2, 2), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, SegmentsIntersect(tc.a, tc.b), test.ShouldEqual, tc.expected)
			test.That(t, SegmentsIntersect(tc.b, tc.a), test.ShouldEqual, tc.expected)
		})
	}
}

func TestSegment(t *testing.T) {
	s := NewSegment(0, 0, 3, 4)
	test.That(t, s.Length(), test.ShouldAlmostEqual, 5.)
	test.That(t, s.Degenerate(), test.ShouldBeFalse)
	test.That(t, Segment{r2.Point{X: 1, Y: 1}, r2.Point{X: 1, Y: 1}}.Degenerate(), test.ShouldBeTrue)
	test.That(t, s.String(), test.ShouldEqual, "[(0, 0) (3, 4)]")
}
