package keyboard

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/keytrace/swipepath/pkg/errors"
)

// ReadTOML decodes a layout file of the form:
//
//	name = "compact"
//
//	[keys]
//	q = { x = 0.05, y = 0.05 }
//	"." = { x = 0.75, y = 0.35 }
//
// Unknown fields are rejected.
func ReadTOML(r io.Reader) (*Layout, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode layout TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		names := make([]string, len(undecoded))
		for i, k := range undecoded {
			names[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidLayout, "unknown fields in layout: %s", strings.Join(names, ", "))
	}
	if len(doc.Keys) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "layout defines no keys")
	}
	return New(doc.Name, doc.Keys)
}

// WriteTOML encodes l in the format read by ReadTOML.
func (l *Layout) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(l.document())
}
