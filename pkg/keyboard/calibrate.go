package keyboard

import (
	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
)

// Calibrate averages the samples of every key into its center. Keys that
// occupy several cells end up at the centroid of those cells, which is the
// visual center as long as the cells are contiguous.
func Calibrate(name string, samples []Sample) (*Layout, error) {
	if len(samples) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "no samples to calibrate")
	}

	type sum struct {
		x, y float64
		n    int
	}
	sums := make(map[string]*sum)
	for _, s := range samples {
		if !s.At.IsFinite() {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "sample for key %q is not finite", s.Key)
		}
		acc, ok := sums[s.Key]
		if !ok {
			acc = &sum{}
			sums[s.Key] = acc
		}
		acc.x += s.At.X
		acc.y += s.At.Y
		acc.n++
	}

	centers := make(map[string]geom.Point, len(sums))
	for k, acc := range sums {
		centers[k] = geom.Pt(acc.x/float64(acc.n), acc.y/float64(acc.n))
	}
	return New(name, centers)
}
