// Package geom provides the 2-D point type shared by layouts and paths.
//
// Coordinates are conventionally normalized to the unit square, with (0,0)
// at the top-left corner of the keyboard and (1,1) at the bottom-right, but
// nothing in this package enforces that range.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the distance below which two points are treated as the same
// key position.
const Epsilon = 1e-7

// Point is an immutable 2-D coordinate.
type Point struct {
	X float64 `json:"x" toml:"x" cbor:"1,keyasint"`
	Y float64 `json:"y" toml:"y" cbor:"2,keyasint"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the Euclidean norm of p seen as a vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Near reports whether q lies within Epsilon of p.
func (p Point) Near(q Point) bool {
	return p.Distance(q) < Epsilon
}

// Lerp interpolates linearly: t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// PolylineLength sums the distances between consecutive points.
func PolylineLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Distance(pts[i])
	}
	return total
}
