package wordpath

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/keytrace/swipepath/pkg/errors"
)

// MaxPoints bounds the number of points a single resampled path may hold.
const MaxPoints = 1 << 20

type policyKind int

const (
	byDensity policyKind = iota + 1
	byCount
)

// Policy selects how a waypoint polyline is resampled. The zero Policy is
// invalid; build one with [Density] or [Count].
type Policy struct {
	kind    policyKind
	density float64
	count   int
}

// Density resamples with a target spacing of d between consecutive points.
// The number of output points follows from the path length.
func Density(d float64) Policy {
	return Policy{kind: byDensity, density: d}
}

// Count resamples to exactly n points, spaced as evenly as the waypoints
// allow.
func Count(n int) Policy {
	return Policy{kind: byCount, count: n}
}

// IsDensity reports whether p is a density policy.
func (p Policy) IsDensity() bool { return p.kind == byDensity }

// IsCount reports whether p is a fixed-count policy.
func (p Policy) IsCount() bool { return p.kind == byCount }

// Spacing returns the target spacing of a density policy.
func (p Policy) Spacing() float64 { return p.density }

// Points returns the requested point count of a count policy.
func (p Policy) Points() int { return p.count }

// String renders p as "density=<d>" or "count=<n>", the form accepted by
// ParsePolicy.
func (p Policy) String() string {
	switch p.kind {
	case byDensity:
		return "density=" + strconv.FormatFloat(p.density, 'g', -1, 64)
	case byCount:
		return "count=" + strconv.Itoa(p.count)
	default:
		return "invalid"
	}
}

// ParsePolicy parses "density=<float>" or "count=<int>".
func ParsePolicy(s string) (Policy, error) {
	name, value, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return Policy{}, errors.New(errors.ErrCodeInvalidPolicy, "policy %q is not of the form name=value", s)
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "density":
		d, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return Policy{}, errors.Wrap(errors.ErrCodeInvalidPolicy, err, "parse density %q", value)
		}
		return Density(d), nil
	case "count":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Policy{}, errors.Wrap(errors.ErrCodeInvalidPolicy, err, "parse count %q", value)
		}
		return Count(n), nil
	default:
		return Policy{}, errors.New(errors.ErrCodeInvalidPolicy, "unknown policy %q (want density or count)", name)
	}
}

// validate checks p against the path it will be applied to: the number of
// waypoints and the polyline length.
func (p Policy) validate(waypoints int, length float64) error {
	switch p.kind {
	case byDensity:
		if p.density <= 0 || math.IsNaN(p.density) || math.IsInf(p.density, 0) {
			return errors.New(errors.ErrCodeInvalidPolicy, "density must be a positive finite number, got %v", p.density)
		}
		if n := length/p.density + float64(waypoints); n > MaxPoints {
			return errors.New(errors.ErrCodeInvalidPolicy, "density %v yields about %.0f points (max %d)", p.density, n, MaxPoints)
		}
	case byCount:
		if p.count < 1 || p.count < waypoints {
			return errors.New(errors.ErrCodeInvalidPolicy, "count %d is less than the %d waypoints of the path", p.count, waypoints)
		}
		if p.count > MaxPoints {
			return errors.New(errors.ErrCodeInvalidPolicy, "count %d exceeds the maximum of %d points", p.count, MaxPoints)
		}
	default:
		return errors.New(errors.ErrCodeInvalidPolicy, "no resampling policy set")
	}
	return nil
}

// Validate checks p on its own, without a path. Count policies are checked
// for range; density policies only for being positive and finite, since the
// point bound depends on the path length.
func (p Policy) Validate() error {
	return p.validate(1, 0)
}

// GoString makes policies readable in test failure output.
func (p Policy) GoString() string {
	return fmt.Sprintf("wordpath.Policy(%s)", p)
}
