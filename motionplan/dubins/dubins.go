// Package dubins computes shortest paths for a vehicle that only drives forward with a bounded
// turning radius. Every such path is one of six words built from left turns (L), right turns (R)
// and straight lines (S).
//
// Configurations are [x, y, heading] with heading in radians, measured counter-clockwise from +x.
// See http://planning.cs.uiuc.edu/node821.html.
package dubins

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrBadRadius is returned for a turning radius that is not positive.
	ErrBadRadius = errors.New("turning radius must be positive")
	// ErrNoPath is returned when no word connects the two configurations.
	ErrNoPath = errors.New("no dubins path between configurations")
	// ErrParam is returned when sampling outside of [0, Length()] or with a bad step.
	ErrParam = errors.New("path parameter out of range")
)

// PathType is one of the six dubins words.
type PathType int

// The six dubins words.
const (
	LSL PathType = iota
	LSR
	RSL
	RSR
	RLR
	LRL
)

// PathTypes lists every word in evaluation order.
var PathTypes = []PathType{LSL, LSR, RSL, RSR, RLR, LRL}

func (pt PathType) String() string {
	switch pt {
	case LSL:
		return "LSL"
	case LSR:
		return "LSR"
	case RSL:
		return "RSL"
	case RSR:
		return "RSR"
	case RLR:
		return "RLR"
	case LRL:
		return "LRL"
	}
	return fmt.Sprintf("PathType(%d)", int(pt))
}

type segmentType int

const (
	leftSegment segmentType = iota
	straightSegment
	rightSegment
)

var wordSegments = [6][3]segmentType{
	LSL: {leftSegment, straightSegment, leftSegment},
	LSR: {leftSegment, straightSegment, rightSegment},
	RSL: {rightSegment, straightSegment, leftSegment},
	RSR: {rightSegment, straightSegment, rightSegment},
	RLR: {rightSegment, leftSegment, rightSegment},
	LRL: {leftSegment, rightSegment, leftSegment},
}

// Path is a dubins path from an initial configuration. Segment lengths are stored normalized by
// the turning radius.
type Path struct {
	qi       [3]float64
	param    [3]float64
	rho      float64
	pathType PathType
}

// intermediate holds the quantities shared by every word, computed in the frame where the goal lies
// on the +x axis at distance d (in units of the turning radius).
type intermediate struct {
	alpha, beta, d    float64
	sa, sb, ca, cb    float64
	cosAlphaBeta, dSq float64
}

func newIntermediate(q0, q1 [3]float64, rho float64) (*intermediate, error) {
	if !(rho > 0) {
		return nil, ErrBadRadius
	}
	dx, dy := q1[0]-q0[0], q1[1]-q0[1]
	d := math.Hypot(dx, dy) / rho

	// Heading of the chord is undefined for colocated configurations.
	var theta float64
	if d > 0 {
		theta = mod2pi(math.Atan2(dy, dx))
	}
	alpha, beta := mod2pi(q0[2]-theta), mod2pi(q1[2]-theta)

	return &intermediate{
		alpha:        alpha,
		beta:         beta,
		d:            d,
		sa:           math.Sin(alpha),
		sb:           math.Sin(beta),
		ca:           math.Cos(alpha),
		cb:           math.Cos(beta),
		cosAlphaBeta: math.Cos(alpha - beta),
		dSq:          d * d,
	}, nil
}

// ShortestPath returns the shortest dubins path from q0 to q1 for turning radius rho.
func ShortestPath(q0, q1 [3]float64, rho float64) (*Path, error) {
	in, err := newIntermediate(q0, q1, rho)
	if err != nil {
		return nil, err
	}

	var best *Path
	bestCost := math.Inf(1)
	for _, pt := range PathTypes {
		params, ok := in.word(pt)
		if !ok {
			continue
		}
		if cost := params[0] + params[1] + params[2]; cost < bestCost {
			bestCost = cost
			best = &Path{qi: q0, param: params, rho: rho, pathType: pt}
		}
	}
	if best == nil {
		return nil, ErrNoPath
	}
	return best, nil
}

// NewPath returns the path from q0 to q1 using a specific word.
func NewPath(q0, q1 [3]float64, rho float64, pathType PathType) (*Path, error) {
	in, err := newIntermediate(q0, q1, rho)
	if err != nil {
		return nil, err
	}
	params, ok := in.word(pathType)
	if !ok {
		return nil, errors.Wrapf(ErrNoPath, "word %v", pathType)
	}
	return &Path{qi: q0, param: params, rho: rho, pathType: pathType}, nil
}

// PathLength is the length of the shortest path from q0 to q1.
func PathLength(q0, q1 [3]float64, rho float64) (float64, error) {
	p, err := ShortestPath(q0, q1, rho)
	if err != nil {
		return 0, err
	}
	return p.Length(), nil
}

// Length returns the total length of the path.
func (p *Path) Length() float64 {
	return (p.param[0] + p.param[1] + p.param[2]) * p.rho
}

// SegmentLength returns the length of segment i in [0, 2].
func (p *Path) SegmentLength(i int) float64 {
	if i < 0 || i > 2 {
		return math.Inf(1)
	}
	return p.param[i] * p.rho
}

// Type returns the word of the path.
func (p *Path) Type() PathType {
	return p.pathType
}

// Radius returns the turning radius the path was built for.
func (p *Path) Radius() float64 {
	return p.rho
}

// Start returns the initial configuration.
func (p *Path) Start() [3]float64 {
	return p.qi
}

// Sample returns the configuration at distance t along the path. The heading is in [0, 2π).
func (p *Path) Sample(t float64) ([3]float64, error) {
	if t < 0 || t > p.Length() {
		return [3]float64{}, errors.Wrapf(ErrParam, "t=%v outside [0, %v]", t, p.Length())
	}
	tPrime := t / p.rho
	types := wordSegments[p.pathType]

	// Work at unit radius from the origin, then scale and translate.
	qi := [3]float64{0, 0, p.qi[2]}
	p1, p2 := p.param[0], p.param[1]
	q1 := segment(p1, qi, types[0])
	q2 := segment(p2, q1, types[1])

	var q [3]float64
	switch {
	case tPrime < p1:
		q = segment(tPrime, qi, types[0])
	case tPrime < p1+p2:
		q = segment(tPrime-p1, q1, types[1])
	default:
		q = segment(tPrime-p1-p2, q2, types[2])
	}

	q[0] = q[0]*p.rho + p.qi[0]
	q[1] = q[1]*p.rho + p.qi[1]
	q[2] = mod2pi(q[2])
	return q, nil
}

// SampleMany returns configurations at 0, step, 2*step, ... strictly before the end of the path.
// The end configuration itself is not included.
func (p *Path) SampleMany(step float64) ([][3]float64, error) {
	if !(step > 0) {
		return nil, errors.Wrapf(ErrParam, "step %v must be positive", step)
	}
	length := p.Length()
	out := make([][3]float64, 0, int(length/step)+1)
	for i := 0; ; i++ {
		t := float64(i) * step
		if t >= length {
			break
		}
		q, err := p.Sample(t)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// EndPoint returns the configuration at the end of the path.
func (p *Path) EndPoint() [3]float64 {
	// Length() is always in range.
	q, _ := p.Sample(p.Length()) //nolint:errcheck
	return q
}

// Subpath returns the first t units of the path.
func (p *Path) Subpath(t float64) (*Path, error) {
	if t < 0 || t > p.Length() {
		return nil, errors.Wrapf(ErrParam, "t=%v outside [0, %v]", t, p.Length())
	}
	tPrime := t / p.rho
	sub := &Path{qi: p.qi, rho: p.rho, pathType: p.pathType}
	sub.param[0] = math.Min(p.param[0], tPrime)
	sub.param[1] = math.Max(0, math.Min(p.param[1], tPrime-sub.param[0]))
	sub.param[2] = math.Max(0, math.Min(p.param[2], tPrime-sub.param[0]-sub.param[1]))
	return sub, nil
}

// segment advances a unit radius configuration qi by t along a segment of the given type.
func segment(t float64, qi [3]float64, st segmentType) [3]float64 {
	sinT, cosT := math.Sin(qi[2]), math.Cos(qi[2])
	var qt [3]float64
	switch st {
	case leftSegment:
		qt = [3]float64{math.Sin(qi[2]+t) - sinT, -math.Cos(qi[2]+t) + cosT, t}
	case rightSegment:
		qt = [3]float64{-math.Sin(qi[2]-t) + sinT, math.Cos(qi[2]-t) - cosT, -t}
	case straightSegment:
		qt = [3]float64{cosT * t, sinT * t, 0}
	}
	return [3]float64{qt[0] + qi[0], qt[1] + qi[1], qt[2] + qi[2]}
}

func (in *intermediate) word(pt PathType) ([3]float64, bool) {
	switch pt {
	case LSL:
		return in.lsl()
	case LSR:
		return in.lsr()
	case RSL:
		return in.rsl()
	case RSR:
		return in.rsr()
	case RLR:
		return in.rlr()
	case LRL:
		return in.lrl()
	}
	return [3]float64{}, false
}

func (in *intermediate) lsl() ([3]float64, bool) {
	tmp0 := in.d + in.sa - in.sb
	pSq := 2 + in.dSq - 2*in.cosAlphaBeta + 2*in.d*(in.sa-in.sb)
	if pSq < 0 {
		return [3]float64{}, false
	}
	tmp1 := math.Atan2(in.cb-in.ca, tmp0)
	return [3]float64{mod2pi(tmp1 - in.alpha), math.Sqrt(pSq), mod2pi(in.beta - tmp1)}, true
}

func (in *intermediate) rsr() ([3]float64, bool) {
	tmp0 := in.d - in.sa + in.sb
	pSq := 2 + in.dSq - 2*in.cosAlphaBeta + 2*in.d*(in.sb-in.sa)
	if pSq < 0 {
		return [3]float64{}, false
	}
	tmp1 := math.Atan2(in.ca-in.cb, tmp0)
	return [3]float64{mod2pi(in.alpha - tmp1), math.Sqrt(pSq), mod2pi(tmp1 - in.beta)}, true
}

func (in *intermediate) lsr() ([3]float64, bool) {
	pSq := -2 + in.dSq + 2*in.cosAlphaBeta + 2*in.d*(in.sa+in.sb)
	if pSq < 0 {
		return [3]float64{}, false
	}
	p := math.Sqrt(pSq)
	tmp0 := math.Atan2(-in.ca-in.cb, in.d+in.sa+in.sb) - math.Atan2(-2, p)
	return [3]float64{mod2pi(tmp0 - in.alpha), p, mod2pi(tmp0 - in.beta)}, true
}

func (in *intermediate) rsl() ([3]float64, bool) {
	pSq := -2 + in.dSq + 2*in.cosAlphaBeta - 2*in.d*(in.sa+in.sb)
	if pSq < 0 {
		return [3]float64{}, false
	}
	p := math.Sqrt(pSq)
	tmp0 := math.Atan2(in.ca+in.cb, in.d-in.sa-in.sb) - math.Atan2(2, p)
	return [3]float64{mod2pi(in.alpha - tmp0), p, mod2pi(in.beta - tmp0)}, true
}

func (in *intermediate) rlr() ([3]float64, bool) {
	tmp0 := (6 - in.dSq + 2*in.cosAlphaBeta + 2*in.d*(in.sa-in.sb)) / 8
	if math.Abs(tmp0) > 1 {
		return [3]float64{}, false
	}
	phi := math.Atan2(in.ca-in.cb, in.d-in.sa+in.sb)
	p := mod2pi(2*math.Pi - math.Acos(tmp0))
	t := mod2pi(in.alpha - phi + mod2pi(p/2))
	return [3]float64{t, p, mod2pi(in.alpha - in.beta - t + mod2pi(p))}, true
}

func (in *intermediate) lrl() ([3]float64, bool) {
	tmp0 := (6 - in.dSq + 2*in.cosAlphaBeta + 2*in.d*(in.sb-in.sa)) / 8
	if math.Abs(tmp0) > 1 {
		return [3]float64{}, false
	}
	phi := math.Atan2(in.ca-in.cb, in.d+in.sa-in.sb)
	p := mod2pi(2*math.Pi - math.Acos(tmp0))
	t := mod2pi(-in.alpha - phi + p/2)
	return [3]float64{t, p, mod2pi(mod2pi(in.beta) - in.alpha - t + mod2pi(p))}, true
}

// mod2pi maps an angle onto [0, 2π).
func mod2pi(theta float64) float64 {
	return theta - 2*math.Pi*math.Floor(theta/(2*math.Pi))
}
