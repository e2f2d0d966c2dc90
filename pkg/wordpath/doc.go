// Package wordpath turns a typed word into the ideal swipe trajectory over a
// keyboard layout.
//
// # Pipeline
//
// A path is built in three steps:
//
//  1. [Normalize]: drop consecutive repeated characters, then lowercase
//  2. [Resolve]: look every character up in the layout and merge waypoints
//     that land on the same key center
//  3. [Resample]: walk the waypoint polyline and emit evenly spaced points
//     according to a [Policy]
//
// [WordPath] bundles the three steps for one word:
//
//	wp := wordpath.New(keyboard.Default(), "hello")
//	pts, err := wp.Path(wordpath.Density(0.1))
//	if err != nil {
//	    // the word cannot be typed on this layout
//	}
//
// # Failures
//
// All failures are explicit: a nil result with a coded error from
// [github.com/keytrace/swipepath/pkg/errors]. A word that is empty after
// normalization fails with EMPTY_WORD, a character without a key fails the
// whole word with UNKNOWN_KEY, and an unusable policy fails with
// INVALID_POLICY. A path whose waypoints all coincide is not an error.
//
// # Concurrency
//
// Every function here is pure. A [WordPath] is immutable after [New] and may
// be used from several goroutines.
package wordpath
