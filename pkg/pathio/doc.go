// Package pathio provides JSON and CBOR import and export of generated
// swipe paths.
//
// # Format
//
// A document is a list of [Path] records, one per requested word:
//
//	[
//	  {
//	    "word": "Hello",
//	    "normalized": "helo",
//	    "layout": "compact",
//	    "policy": "density=0.1",
//	    "first": {"x": 0.6, "y": 0.15},
//	    "last": {"x": 0.85, "y": 0.05},
//	    "waypoints": [{"x": 0.6, "y": 0.15}, ...],
//	    "length": 1.1334,
//	    "points": [{"x": 0.6, "y": 0.15}, ...]
//	  }
//	]
//
// A word without a path keeps its record with an "error" object holding the
// error code and message, so batch output stays aligned with its input.
//
// CBOR output uses the same records with small integer keys and core
// deterministic encoding: identical paths always encode to identical bytes.
//
// Paths are exported for consumers; nothing in swipepath reads them back
// except tests and tooling that round-trips files.
package pathio
