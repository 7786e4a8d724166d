package spatialmath

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const (
	// R-tree branching, 2D with min 25 and max 50 entries per node.
	indexMinChildren = 25
	indexMaxChildren = 50

	// rtreego rejects rectangles with a zero side, which every axis-aligned wall has. Boxes are grown
	// by this much (relative to the coordinate magnitude) on every side, for both stored walls and
	// queries, so that touching boxes still overlap.
	boundsPadding = 1e-9
)

// segmentEntry wraps a wall for R-tree storage.
type segmentEntry struct {
	segment Segment
	bounds  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *segmentEntry) Bounds() rtreego.Rect {
	return e.bounds
}

// Obstacles is an immutable set of wall segments with a spatial index used as a broad phase for
// intersection queries. A nil *Obstacles is an empty set.
type Obstacles struct {
	segments []Segment
	index    *rtreego.Rtree
}

// NewObstacles indexes the given walls. The slice is copied.
func NewObstacles(segments []Segment) (*Obstacles, error) {
	obs := &Obstacles{
		segments: append([]Segment(nil), segments...),
		index:    rtreego.NewTree(2, indexMinChildren, indexMaxChildren),
	}
	for i, seg := range obs.segments {
		bounds, err := segmentBounds(seg)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot index obstacle %d %v", i, seg)
		}
		obs.index.Insert(&segmentEntry{segment: seg, bounds: bounds})
	}
	return obs, nil
}

// Segments returns a copy of the walls in the order they were given.
func (o *Obstacles) Segments() []Segment {
	if o == nil {
		return nil
	}
	return append([]Segment(nil), o.segments...)
}

// Len returns the number of walls.
func (o *Obstacles) Len() int {
	if o == nil {
		return 0
	}
	return len(o.segments)
}

// IntersectsSegment returns true if the segment touches any wall.
func (o *Obstacles) IntersectsSegment(seg Segment) bool {
	if o.Len() == 0 {
		return false
	}
	query, err := segmentBounds(seg)
	if err != nil {
		// Non-finite motion; fall back to testing every wall.
		for _, wall := range o.segments {
			if SegmentsIntersect(seg, wall) {
				return true
			}
		}
		return false
	}
	for _, candidate := range o.index.SearchIntersect(query) {
		if SegmentsIntersect(seg, candidate.(*segmentEntry).segment) {
			return true
		}
	}
	return false
}

// IntersectsPolyline returns true if any consecutive pair of points forms a segment that touches a
// wall. A polyline with fewer than two points is tested as a single point.
func (o *Obstacles) IntersectsPolyline(points []r2.Point) bool {
	switch len(points) {
	case 0:
		return false
	case 1:
		return o.IntersectsSegment(Segment{points[0], points[0]})
	}
	for i := 0; i < len(points)-1; i++ {
		if o.IntersectsSegment(Segment{points[i], points[i+1]}) {
			return true
		}
	}
	return false
}

func segmentBounds(seg Segment) (rtreego.Rect, error) {
	minX, maxX := math.Min(seg.Start.X, seg.End.X), math.Max(seg.Start.X, seg.End.X)
	minY, maxY := math.Min(seg.Start.Y, seg.End.Y), math.Max(seg.Start.Y, seg.End.Y)
	if math.IsInf(minX, 0) || math.IsInf(maxX, 0) || math.IsNaN(minX) || math.IsNaN(maxX) ||
		math.IsInf(minY, 0) || math.IsInf(maxY, 0) || math.IsNaN(minY) || math.IsNaN(maxY) {
		return rtreego.Rect{}, errors.Errorf("non-finite segment %v", seg)
	}
	pad := boundsPadding * (1 + math.Max(math.Max(math.Abs(minX), math.Abs(maxX)), math.Max(math.Abs(minY), math.Abs(maxY))))
	return rtreego.NewRect(
		rtreego.Point{minX - pad, minY - pad},
		[]float64{maxX - minX + 2*pad, maxY - minY + 2*pad},
	)
}
