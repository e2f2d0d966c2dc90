package keyboard

import (
	"encoding/json"
	"sort"

	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
)

// Layout maps key identifiers to their center coordinates.
type Layout struct {
	name string
	keys map[string]geom.Point
}

// New builds a layout from a name and a key → center mapping. The map is
// copied, so later changes by the caller do not affect the layout.
//
// Key names must pass [errors.ValidateKeyName] and every center must be
// finite.
func New(name string, keys map[string]geom.Point) (*Layout, error) {
	copied := make(map[string]geom.Point, len(keys))
	for k, p := range keys {
		if err := errors.ValidateKeyName(k); err != nil {
			return nil, err
		}
		if !p.IsFinite() {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "key %q has non-finite center %v", k, p)
		}
		copied[k] = p
	}
	return &Layout{name: name, keys: copied}, nil
}

// MustNew is like New but panics on invalid input. Intended for layouts
// built from literals.
func MustNew(name string, keys map[string]geom.Point) *Layout {
	l, err := New(name, keys)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the layout's display name.
func (l *Layout) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}

// Lookup returns the center of key. A nil layout has no keys.
func (l *Layout) Lookup(key string) (geom.Point, bool) {
	if l == nil {
		return geom.Point{}, false
	}
	p, ok := l.keys[key]
	return p, ok
}

// LookupRune looks up the key whose identifier is the string form of r.
func (l *Layout) LookupRune(r rune) (geom.Point, bool) {
	return l.Lookup(string(r))
}

// Len returns the number of keys.
func (l *Layout) Len() int {
	if l == nil {
		return 0
	}
	return len(l.keys)
}

// Keys returns all key identifiers in sorted order.
func (l *Layout) Keys() []string {
	if l == nil {
		return nil
	}
	keys := make([]string, 0, len(l.keys))
	for k := range l.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Centers returns a copy of the key → center mapping.
func (l *Layout) Centers() map[string]geom.Point {
	out := make(map[string]geom.Point, l.Len())
	if l == nil {
		return out
	}
	for k, p := range l.keys {
		out[k] = p
	}
	return out
}

// document is the serialized form shared by the JSON and TOML codecs.
type document struct {
	Name string                `json:"name,omitempty" toml:"name,omitempty"`
	Keys map[string]geom.Point `json:"keys" toml:"keys"`
}

func (l *Layout) document() document {
	return document{Name: l.Name(), Keys: l.Centers()}
}

// MarshalJSON encodes the layout as {"name": ..., "keys": {"q": {"x":..,"y":..}}}.
func (l *Layout) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.document())
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode layout JSON")
	}
	decoded, err := New(doc.Name, doc.Keys)
	if err != nil {
		return err
	}
	*l = *decoded
	return nil
}
