package wordpath

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/keytrace/swipepath/pkg/geom"
	"github.com/keytrace/swipepath/pkg/keyboard"
)

// WordPath builds paths for one word on one layout. The word is normalized
// and resolved once, at construction; every method is then safe for
// concurrent use.
type WordPath struct {
	word   string
	runes  []rune
	layout *keyboard.Layout
	logger *log.Logger

	waypoints Waypoints
	err       error
}

// Option configures a WordPath.
type Option func(*WordPath)

// WithLogger routes diagnostics to logger. Without it nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(w *WordPath) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New normalizes word and resolves it against layout. Resolution failures
// are not returned here; they surface from Waypoints and Path.
func New(layout *keyboard.Layout, word string, opts ...Option) *WordPath {
	w := &WordPath{
		word:   word,
		layout: layout,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.runes = Normalize(word)
	w.waypoints, w.err = Resolve(w.runes, layout)
	if w.err != nil {
		w.logger.Debug("word has no path", "word", word, "layout", layout.Name(), "err", w.err)
	} else if w.waypoints.Degenerate() {
		w.logger.Debug("degenerate path", "word", word, "waypoints", w.waypoints.Len())
	}
	return w
}

// Word returns the word as given to New.
func (w *WordPath) Word() string { return w.word }

// Runes returns the normalized word.
func (w *WordPath) Runes() []rune {
	return append([]rune(nil), w.runes...)
}

// FirstLast returns the centers of the keys under the first and last
// normalized runes. Either is nil when its rune has no key; both are nil for
// an empty word. Interior runes are not inspected, so a word with an
// untypeable middle still has endpoints.
func (w *WordPath) FirstLast() (first, last *geom.Point) {
	if len(w.runes) == 0 {
		return nil, nil
	}
	if p, ok := w.layout.LookupRune(w.runes[0]); ok {
		first = &p
	}
	if len(w.runes) == 1 {
		if first == nil {
			return nil, nil
		}
		p := *first
		return first, &p
	}
	if p, ok := w.layout.LookupRune(w.runes[len(w.runes)-1]); ok {
		last = &p
	}
	return first, last
}

// Waypoints returns the resolved key centers of the word.
func (w *WordPath) Waypoints() (Waypoints, error) {
	if w.err != nil {
		return Waypoints{}, w.err
	}
	pts := append([]geom.Point(nil), w.waypoints.Points...)
	return Waypoints{Points: pts, Length: w.waypoints.Length}, nil
}

// Path resamples the word's waypoints with p.
func (w *WordPath) Path(p Policy) ([]geom.Point, error) {
	if w.err != nil {
		return nil, w.err
	}
	pts, err := Resample(w.waypoints, p)
	if err != nil {
		w.logger.Debug("resample failed", "word", w.word, "policy", p, "err", err)
		return nil, err
	}
	return pts, nil
}
