package spatialmath

import (
	"encoding/json"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// ReadGeoJSONSegments reads a GeoJSON file and converts its geometries to wall segments.
func ReadGeoJSONSegments(path string) ([]Segment, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read obstacle file %q", path)
	}
	segments, err := SegmentsFromGeoJSON(data)
	if err != nil {
		return nil, errors.Wrapf(err, "obstacle file %q", path)
	}
	return segments, nil
}

// SegmentsFromGeoJSON converts a GeoJSON FeatureCollection, Feature, or bare geometry into wall
// segments. Every pair of consecutive vertices of a LineString or polygon ring becomes one wall;
// unclosed rings are closed. Point geometries are rejected.
func SegmentsFromGeoJSON(data []byte) ([]Segment, error) {
	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, errors.Wrap(err, "failed to decode GeoJSON")
	}

	var geometries []orb.Geometry
	switch header.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode GeoJSON feature collection")
		}
		for _, f := range fc.Features {
			geometries = append(geometries, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode GeoJSON feature")
		}
		geometries = append(geometries, f.Geometry)
	case "":
		return nil, errors.New("GeoJSON object has no type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode GeoJSON geometry")
		}
		geometries = append(geometries, g.Geometry())
	}

	var segments []Segment
	for i, g := range geometries {
		converted, err := geometryToSegments(g)
		if err != nil {
			return nil, errors.Wrapf(err, "geometry %d", i)
		}
		segments = append(segments, converted...)
	}
	return segments, nil
}

func geometryToSegments(g orb.Geometry) ([]Segment, error) {
	switch geom := g.(type) {
	case orb.LineString:
		return lineToSegments(geom), nil
	case orb.MultiLineString:
		var out []Segment
		for _, ls := range geom {
			out = append(out, lineToSegments(ls)...)
		}
		return out, nil
	case orb.Ring:
		return ringToSegments(geom), nil
	case orb.Polygon:
		var out []Segment
		for _, ring := range geom {
			out = append(out, ringToSegments(ring)...)
		}
		return out, nil
	case orb.MultiPolygon:
		var out []Segment
		for _, poly := range geom {
			for _, ring := range poly {
				out = append(out, ringToSegments(ring)...)
			}
		}
		return out, nil
	case orb.Collection:
		var out []Segment
		for _, member := range geom {
			converted, err := geometryToSegments(member)
			if err != nil {
				return nil, err
			}
			out = append(out, converted...)
		}
		return out, nil
	case nil:
		return nil, errors.New("missing geometry")
	default:
		return nil, errors.Errorf("unsupported obstacle geometry %q", g.GeoJSONType())
	}
}

func lineToSegments(ls orb.LineString) []Segment {
	if len(ls) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(ls)-1)
	for i := 0; i < len(ls)-1; i++ {
		out = append(out, NewSegment(ls[i].X(), ls[i].Y(), ls[i+1].X(), ls[i+1].Y()))
	}
	return out
}

func ringToSegments(ring orb.Ring) []Segment {
	if len(ring) > 1 && !ring.Closed() {
		ring = append(append(orb.Ring(nil), ring...), ring[0])
	}
	return lineToSegments(orb.LineString(ring))
}

// SegmentsToMultiLineString converts walls to an orb geometry, one two-point line per wall.
func SegmentsToMultiLineString(segments []Segment) orb.MultiLineString {
	out := make(orb.MultiLineString, 0, len(segments))
	for _, s := range segments {
		out = append(out, orb.LineString{{s.Start.X, s.Start.Y}, {s.End.X, s.End.Y}})
	}
	return out
}
