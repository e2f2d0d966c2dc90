package wordpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
	"github.com/keytrace/swipepath/pkg/keyboard"
)

func TestResolve(t *testing.T) {
	l := keyboard.Default()

	t.Run("hello", func(t *testing.T) {
		wp, err := Resolve(Normalize("hello"), l)
		require.NoError(t, err)
		assert.Equal(t, []geom.Point{
			geom.Pt(0.6, 0.15),
			geom.Pt(0.25, 0.05),
			geom.Pt(0.9, 0.15),
			geom.Pt(0.85, 0.05),
		}, wp.Points)
		assert.InDelta(t, geom.PolylineLength(wp.Points), wp.Length, 1e-12)
	})

	t.Run("adjacent runes on one key merge", func(t *testing.T) {
		wp, err := Resolve(Normalize("hELlO"), l)
		require.NoError(t, err)
		assert.Len(t, wp.Points, 4)

		plain, err := Resolve(Normalize("hello"), l)
		require.NoError(t, err)
		assert.Equal(t, plain, wp)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Resolve(nil, l)
		assert.True(t, errors.Is(err, errors.ErrCodeEmptyWord))
	})

	t.Run("unknown key fails whole word", func(t *testing.T) {
		_, err := Resolve(Normalize("hÜo"), l)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeUnknownKey))
		assert.Contains(t, err.Error(), "position 1")
	})

	t.Run("nil layout", func(t *testing.T) {
		_, err := Resolve(Normalize("a"), nil)
		assert.True(t, errors.Is(err, errors.ErrCodeUnknownKey))
	})

	t.Run("coincident keys", func(t *testing.T) {
		stacked := keyboard.MustNew("stacked", map[string]geom.Point{
			"a": geom.Pt(0.5, 0.5),
			"b": geom.Pt(0.5, 0.5+geom.Epsilon/10),
			"c": geom.Pt(0.7, 0.5),
		})
		wp, err := Resolve([]rune("abc"), stacked)
		require.NoError(t, err)
		assert.Equal(t, []geom.Point{geom.Pt(0.5, 0.5), geom.Pt(0.7, 0.5)}, wp.Points)
		assert.InDelta(t, 0.2, wp.Length, 1e-12)
	})
}

func TestResolveWaypointCount(t *testing.T) {
	l := keyboard.Default()
	for _, word := range []string{"hello", "spaceship", "keyboard", "typing", "q"} {
		runes := Normalize(word)
		wp, err := Resolve(runes, l)
		require.NoError(t, err, word)
		assert.Len(t, wp.Points, len(runes), word)
	}
}
