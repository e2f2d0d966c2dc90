package wordpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/geom"
	"github.com/keytrace/swipepath/pkg/keyboard"
)

func assertPoints(t *testing.T, want, got []geom.Point) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-9, "point %d x", i)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-9, "point %d y", i)
	}
}

func mustResolve(t *testing.T, word string) Waypoints {
	t.Helper()
	wp, err := Resolve(Normalize(word), keyboard.Default())
	require.NoError(t, err)
	return wp
}

func TestResampleDensity(t *testing.T) {
	got, err := Resample(mustResolve(t, "hello"), Density(0.1))
	require.NoError(t, err)
	assertPoints(t, []geom.Point{
		geom.Pt(0.6, 0.15),
		geom.Pt(0.48333333333333334, 0.11666666666666667),
		geom.Pt(0.3666666666666667, 0.08333333333333333),
		geom.Pt(0.25, 0.05),
		geom.Pt(0.34285714285714286, 0.0642857142857143),
		geom.Pt(0.4357142857142857, 0.07857142857142857),
		geom.Pt(0.5285714285714286, 0.09285714285714286),
		geom.Pt(0.6214285714285714, 0.10714285714285715),
		geom.Pt(0.7142857142857143, 0.12142857142857143),
		geom.Pt(0.8071428571428572, 0.13571428571428573),
		geom.Pt(0.9, 0.15),
		geom.Pt(0.85, 0.05),
	}, got)
}

func TestResampleDensityCounts(t *testing.T) {
	tests := []struct {
		word    string
		density float64
		want    int
	}{
		{"hello", 0.1, 12},
		{"hello", 0.01, 114},
		{"spaceship", 0.1, 30},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			wp := mustResolve(t, tt.word)
			got, err := Resample(wp, Density(tt.density))
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			assert.Equal(t, wp.Points[0], got[0])
			assert.Equal(t, wp.Points[len(wp.Points)-1], got[len(got)-1])
		})
	}
}

func TestResampleCount(t *testing.T) {
	tests := []struct {
		name  string
		word  string
		count int
		want  []geom.Point
	}{
		{
			name:  "waypoints only",
			word:  "hello",
			count: 4,
			want: []geom.Point{
				geom.Pt(0.6, 0.15), geom.Pt(0.25, 0.05), geom.Pt(0.9, 0.15), geom.Pt(0.85, 0.05),
			},
		},
		{
			name:  "hello six",
			word:  "hello",
			count: 6,
			want: []geom.Point{
				geom.Pt(0.6, 0.15),
				geom.Pt(0.25, 0.05),
				geom.Pt(0.4666666666666667, 0.08333333333333333),
				geom.Pt(0.6833333333333333, 0.11666666666666667),
				geom.Pt(0.9, 0.15),
				geom.Pt(0.85, 0.05),
			},
		},
		{
			name:  "top five",
			word:  "top",
			count: 5,
			want: []geom.Point{
				geom.Pt(0.45, 0.05),
				geom.Pt(0.5833333333333333, 0.05),
				geom.Pt(0.7166666666666667, 0.05),
				geom.Pt(0.85, 0.05),
				geom.Pt(0.95, 0.05),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resample(mustResolve(t, tt.word), Count(tt.count))
			require.NoError(t, err)
			assertPoints(t, tt.want, got)
		})
	}
}

func TestResampleCountIsExact(t *testing.T) {
	for _, word := range []string{"hello", "spaceship", "top", "keyboard", "qp", "quiz"} {
		wp := mustResolve(t, word)
		for n := wp.Len(); n <= 250; n++ {
			got, err := Resample(wp, Count(n))
			require.NoError(t, err, "%s count=%d", word, n)
			require.Len(t, got, n, "%s count=%d", word, n)
			assert.Equal(t, wp.Points[0], got[0])
			assert.Equal(t, wp.Points[wp.Len()-1], got[n-1])
		}
	}
}

func TestResampleStaysOnPolyline(t *testing.T) {
	wp := mustResolve(t, "spaceship")
	got, err := Resample(wp, Density(0.02))
	require.NoError(t, err)
	// Resampling never lengthens the path.
	assert.LessOrEqual(t, geom.PolylineLength(got), wp.Length+1e-9)
}

func TestResampleInvalidPolicy(t *testing.T) {
	wp := mustResolve(t, "hello")
	tests := []struct {
		name   string
		policy Policy
	}{
		{"zero policy", Policy{}},
		{"zero density", Density(0)},
		{"negative density", Density(-0.1)},
		{"nan density", Density(math.NaN())},
		{"inf density", Density(math.Inf(1))},
		{"zero count", Count(0)},
		{"count below waypoints", Count(3)},
		{"count above max points", Count(MaxPoints + 1)},
		{"huge count", Count(math.MaxInt)},
		{"density too fine", Density(1e-9)},
		{"vanishing density", Density(1e-300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resample(wp, tt.policy)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidPolicy), "got %v", err)
		})
	}
}

func TestResampleDegenerateIgnoresPointBound(t *testing.T) {
	wp := mustResolve(t, "lL")
	got, err := Resample(wp, Density(1e-300))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestResampleNoWaypoints(t *testing.T) {
	for _, p := range []Policy{Density(0.1), Count(3)} {
		got, err := Resample(Waypoints{}, p)
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, errors.ErrCodeEmptyWord))
	}
}

func TestResampleDegenerate(t *testing.T) {
	wp := mustResolve(t, "lL")
	require.Equal(t, 1, wp.Len())
	center := geom.Pt(0.9, 0.15)

	got, err := Resample(wp, Density(0.1))
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{center}, got)

	got, err = Resample(wp, Count(1))
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{center}, got)

	got, err = Resample(wp, Count(5))
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{center, center, center, center, center}, got)
}

func TestResampleSkipsTinySegments(t *testing.T) {
	wp := Waypoints{
		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(0, 0), geom.Pt(1, 0)},
		Length: 1,
	}
	got, err := Resample(wp, Count(3))
	require.NoError(t, err)
	assertPoints(t, []geom.Point{geom.Pt(0, 0), geom.Pt(0.5, 0), geom.Pt(1, 0)}, got)
}
