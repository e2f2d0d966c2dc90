// Package keyboard defines keyboard layouts: immutable mappings from key
// identifiers to key-center coordinates.
//
// # Key Identifiers
//
// A key identifier is a case-sensitive string. Letter keys use the lowercase
// letter ("q", "ü"); other keys use descriptive tokens such as "space",
// "BackSpace", "Return" or ":)". Path construction looks keys up by the
// string form of each rune of a normalized word, so only single-rune
// identifiers are ever reached from words; named keys exist for callers that
// address them directly.
//
// # Sources
//
// Layouts come from three places:
//
//   - [Default]: the built-in compact layout
//   - TOML files: explicit key centers, see [ReadTOML]
//   - Grid files: a cell grid in which wide keys span several cells; the
//     samples from [ParseGrid] are averaged into centers by [Calibrate]
//
// [Load] picks the decoder from the file extension.
//
// # Concurrency
//
// A [Layout] is never modified after construction and may be shared by any
// number of goroutines without synchronization.
package keyboard
