package keyboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/keytrace/swipepath/pkg/errors"
)

// Supported layout file extensions.
const (
	ExtTOML = ".toml"
	ExtGrid = ".grid"
)

// Load reads a layout file, choosing the decoder from its extension.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "read layout %s", path)
	}
	return Parse(path, data)
}

// Parse decodes layout data that was read from filename. TOML files keep
// their declared name; grid files are calibrated and named after the file.
// A TOML layout without a name is also named after the file.
func Parse(filename string, data []byte) (*Layout, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	switch ext {
	case ExtTOML:
		l, err := ReadTOML(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if l.name == "" {
			l.name = base
		}
		return l, nil
	case ExtGrid:
		samples, err := ParseGrid(filename, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return Calibrate(base, samples)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported layout file %q (want %s or %s)", filename, ExtTOML, ExtGrid)
	}
}

// NeedsCalibration reports whether loading filename runs calibration, which
// is the only layout source worth caching.
func NeedsCalibration(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ExtGrid)
}
