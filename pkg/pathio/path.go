package pathio

import (
	"context"
	"time"

	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
	"github.com/keytrace/swipepath/pkg/keyboard"
	"github.com/keytrace/swipepath/pkg/observability"
	"github.com/keytrace/swipepath/pkg/wordpath"
)

// Path is the exported record of one word.
type Path struct {
	Word       string       `json:"word" cbor:"1,keyasint"`
	Normalized string       `json:"normalized" cbor:"2,keyasint"`
	Layout     string       `json:"layout,omitempty" cbor:"3,keyasint,omitempty"`
	Policy     string       `json:"policy" cbor:"4,keyasint"`
	First      *geom.Point  `json:"first,omitempty" cbor:"5,keyasint,omitempty"`
	Last       *geom.Point  `json:"last,omitempty" cbor:"6,keyasint,omitempty"`
	Waypoints  []geom.Point `json:"waypoints,omitempty" cbor:"7,keyasint,omitempty"`
	Length     float64      `json:"length,omitempty" cbor:"8,keyasint,omitempty"`
	Points     []geom.Point `json:"points,omitempty" cbor:"9,keyasint,omitempty"`
	Error      *Error       `json:"error,omitempty" cbor:"10,keyasint,omitempty"`
}

// Error is the serialized form of a per-word failure.
type Error struct {
	Code    string `json:"code" cbor:"1,keyasint"`
	Message string `json:"message" cbor:"2,keyasint"`
}

// OK reports whether the record carries a path.
func (p Path) OK() bool {
	return p.Error == nil
}

// Build generates the record for word on layout. Failures are recorded in
// the returned Path rather than returned, so a batch never aborts on one
// bad word. Path hooks observe every call.
func Build(ctx context.Context, layout *keyboard.Layout, word string, policy wordpath.Policy, opts ...wordpath.Option) Path {
	hooks := observability.Path()
	hooks.OnPathStart(ctx, word, policy.String())
	start := time.Now()

	wp := wordpath.New(layout, word, opts...)
	out := Path{
		Word:       word,
		Normalized: string(wp.Runes()),
		Layout:     layout.Name(),
		Policy:     policy.String(),
	}
	out.First, out.Last = wp.FirstLast()

	pts, err := wp.Path(policy)
	if err != nil {
		out.Error = NewError(err)
		hooks.OnPathComplete(ctx, word, 0, time.Since(start), err)
		return out
	}

	// Waypoints cannot fail once Path succeeded.
	w, _ := wp.Waypoints()
	out.Waypoints = w.Points
	out.Length = w.Length
	out.Points = pts
	hooks.OnPathComplete(ctx, word, len(pts), time.Since(start), nil)
	return out
}

// NewError converts err into its serialized form.
func NewError(err error) *Error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return &Error{Code: string(code), Message: errors.UserMessage(err)}
}
