package pathio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/keytrace/swipepath/pkg/errors"
)

// Format is a serialization format for path documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatCBOR}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want json or cbor)", s)
}

// FormatFromPath infers the format from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		return FormatCBOR
	}
	return FormatJSON
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// WriteJSON encodes paths as indented JSON and writes them to w.
func WriteJSON(w io.Writer, paths []Path) error {
	if paths == nil {
		paths = []Path{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(paths); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON path document from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]Path, error) {
	var paths []Path
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&paths); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON paths")
	}
	return paths, nil
}

// WriteCBOR encodes paths with core deterministic CBOR and writes them to w.
func WriteCBOR(w io.Writer, paths []Path) error {
	if paths == nil {
		paths = []Path{}
	}
	b, err := encMode.Marshal(paths)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// ReadCBOR decodes a CBOR path document from r. Unknown fields are rejected.
func ReadCBOR(r io.Reader) ([]Path, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var paths []Path
	if err := decMode.Unmarshal(data, &paths); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode CBOR paths")
	}
	return paths, nil
}

// Write encodes paths in format f.
func Write(w io.Writer, f Format, paths []Path) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, paths)
	case FormatCBOR:
		return WriteCBOR(w, paths)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}

// Read decodes a document in format f.
func Read(r io.Reader, f Format) ([]Path, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCBOR:
		return ReadCBOR(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}

// ExportFile writes paths to path, choosing the format from its extension.
func ExportFile(path string, paths []Path) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, FormatFromPath(path), paths); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportFile reads a path document, choosing the format from its extension.
func ImportFile(path string) ([]Path, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "paths %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, FormatFromPath(path))
}
