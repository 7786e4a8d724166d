// Package spatialmath holds the planar geometry used by the planner: wall segments, the
// segment/segment intersection test, and an indexed obstacle set.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Segment is a closed line segment in the plane. Obstacles ("walls") and straight-line motions are
// both represented as segments.
type Segment struct {
	Start r2.Point
	End   r2.Point
}

// NewSegment returns the segment from (x0, y0) to (x1, y1).
func NewSegment(x0, y0, x1, y1 float64) Segment {
	return Segment{Start: r2.Point{X: x0, Y: y0}, End: r2.Point{X: x1, Y: y1}}
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.End.Sub(s.Start).Norm()
}

// Degenerate returns true if both endpoints are the same point.
func (s Segment) Degenerate() bool {
	return s.Start == s.End
}

func (s Segment) String() string {
	return fmt.Sprintf("[(%g, %g) (%g, %g)]", s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}

// SegmentsIntersect returns true if the two closed segments share at least one point. Crossing,
// touching at an endpoint, and collinear overlap all count as intersecting, so a motion that grazes
// the corner of a wall is rejected.
func SegmentsIntersect(a, b Segment) bool {
	p1, p2 := a.Start, a.End
	p3, p4 := b.Start, b.End

	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear and endpoint cases.
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// orientation is the z component of (q-p)x(r-p): positive when r is left of p->q, negative when
// right, zero when the three points are collinear.
func orientation(p, q, r r2.Point) float64 {
	return q.Sub(p).Cross(r.Sub(p))
}

// onSegment reports whether q, already known to be collinear with p and r, lies within the bounding
// box of segment pr.
func onSegment(p, r, q r2.Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}
