package wordpath

import (
	"math"

	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
)

type segment struct {
	start, end geom.Point
	length     float64
}

// segments returns the legs of the polyline, skipping legs shorter than
// geom.Epsilon.
func segments(pts []geom.Point) []segment {
	segs := make([]segment, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		l := pts[i-1].Distance(pts[i])
		if l < geom.Epsilon {
			continue
		}
		segs = append(segs, segment{start: pts[i-1], end: pts[i], length: l})
	}
	return segs
}

// Resample walks the waypoint polyline and returns evenly spaced points
// according to p. The result always starts with the first waypoint and ends
// with the last one.
//
// Both policies share one walk. Each leg is split into
// floor(length/spacing + carry) sections, where carry is the fractional
// section left over from the previous leg, so spacing stays uniform across
// key boundaries. A leg emits its start point plus one interior point per
// section boundary.
//
// For a density policy the spacing is the density itself and a short leg may
// get zero sections. For a count policy of n points the spacing is
// length/(n-1); every leg gets at least one section and the final leg takes
// whatever is left of the n-1 section budget, so exactly n points come out.
//
// When all waypoints coincide the density policy returns the single point
// and the count policy returns n copies of it.
func Resample(w Waypoints, p Policy) ([]geom.Point, error) {
	if len(w.Points) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyWord, "no waypoints to resample")
	}
	if err := p.validate(len(w.Points), w.Length); err != nil {
		return nil, err
	}

	segs := segments(w.Points)
	if len(segs) == 0 || w.Degenerate() {
		return degenerate(w.Points[0], p), nil
	}

	var spacing float64
	budget := 0
	if p.kind == byCount {
		budget = p.count - 1
		spacing = w.Length / float64(budget)
	} else {
		spacing = p.density
	}

	out := make([]geom.Point, 0, estimate(w.Length, spacing, len(w.Points)))
	carry := 0.0
	for i, s := range segs {
		raw := s.length/spacing + carry
		n := int(math.Floor(raw))
		if p.kind == byCount {
			n = clampSections(n, budget, len(segs)-i-1)
			budget -= n
		}
		carry = raw - float64(n)

		out = append(out, s.start)
		for k := 1; k < n; k++ {
			out = append(out, s.start.Lerp(s.end, float64(k)/float64(n)))
		}
	}
	out = append(out, segs[len(segs)-1].end)
	return out, nil
}

// clampSections keeps a count-policy leg within the remaining budget: at
// least one section, enough left for one section per remaining leg, and the
// last leg takes all that is left.
func clampSections(n, budget, legsAfter int) int {
	switch {
	case legsAfter == 0:
		return budget
	case n < 1:
		return 1
	case n > budget-legsAfter:
		return budget - legsAfter
	}
	return n
}

func degenerate(p geom.Point, policy Policy) []geom.Point {
	n := 1
	if policy.kind == byCount {
		n = policy.count
	}
	out := make([]geom.Point, n)
	for i := range out {
		out[i] = p
	}
	return out
}

// estimate sizes the output slice; it is only a capacity hint.
func estimate(length, spacing float64, waypoints int) int {
	n := length/spacing + float64(waypoints) + 1
	if n > MaxPoints+1 || math.IsNaN(n) {
		return MaxPoints + 1
	}
	return int(n)
}
