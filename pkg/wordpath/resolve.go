package wordpath

import (
	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
	"github.com/keytrace/swipepath/pkg/keyboard"
)

// Waypoints is the ideal path of a word: the key centers it passes through,
// with consecutive coincident centers merged, and the total polyline length.
type Waypoints struct {
	Points []geom.Point
	Length float64
}

// Len returns the number of retained waypoints.
func (w Waypoints) Len() int { return len(w.Points) }

// Degenerate reports whether all waypoints coincide.
func (w Waypoints) Degenerate() bool { return w.Length < geom.Epsilon }

// Resolve maps every rune of a normalized word to its key center.
//
// Resolution is all-or-nothing: the first rune without a key fails the word.
// A point within geom.Epsilon of the previously retained point is not added
// and contributes no length, so keys that produce several characters, or a
// lowercased repeat such as the "lL" in "HeLlo", become a single waypoint.
func Resolve(word []rune, layout *keyboard.Layout) (Waypoints, error) {
	if len(word) == 0 {
		return Waypoints{}, errors.New(errors.ErrCodeEmptyWord, "word is empty")
	}

	wp := Waypoints{Points: make([]geom.Point, 0, len(word))}
	for i, r := range word {
		p, ok := layout.LookupRune(r)
		if !ok {
			return Waypoints{}, errors.New(errors.ErrCodeUnknownKey, "no key for %q at position %d on layout %q", r, i, layout.Name())
		}
		if n := len(wp.Points); n > 0 {
			prev := wp.Points[n-1]
			if prev.Near(p) {
				continue
			}
			wp.Length += prev.Distance(p)
		}
		wp.Points = append(wp.Points, p)
	}
	return wp, nil
}
