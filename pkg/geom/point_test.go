package geom

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p := Pt(0.25, 0.05)
	q := Pt(0.9, 0.15)

	if got := p.Add(q); got != Pt(1.15, 0.2) {
		t.Errorf("Add = %v", got)
	}
	if got := q.Sub(p).Mul(2); math.Abs(got.X-1.3) > 1e-12 || math.Abs(got.Y-0.2) > 1e-12 {
		t.Errorf("Sub.Mul = %v", got)
	}
}

func TestDistance(t *testing.T) {
	if d := Pt(0, 0).Distance(Pt(3, 4)); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if !Pt(0.5, 0.5).Near(Pt(0.5, 0.5+Epsilon/2)) {
		t.Error("points closer than Epsilon should be near")
	}
	if Pt(0.5, 0.5).Near(Pt(0.5, 0.5+2*Epsilon)) {
		t.Error("points farther than Epsilon should not be near")
	}
}

func TestLerp(t *testing.T) {
	p, q := Pt(0.6, 0.15), Pt(0.25, 0.05)
	tests := []struct {
		t    float64
		want Point
	}{
		{0, p},
		{1, q},
		{0.5, Pt(0.425, 0.1)},
	}
	for _, tt := range tests {
		got := p.Lerp(q, tt.t)
		if got.Distance(tt.want) > 1e-12 {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !Pt(1, 2).IsFinite() {
		t.Error("finite point reported as non-finite")
	}
	if Pt(math.NaN(), 0).IsFinite() || Pt(0, math.Inf(1)).IsFinite() {
		t.Error("non-finite point reported as finite")
	}
}

func TestPolylineLength(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(3, 4), Pt(3, 0)}
	if got := PolylineLength(pts); got != 9 {
		t.Errorf("PolylineLength = %v, want 9", got)
	}
	if got := PolylineLength(pts[:1]); got != 0 {
		t.Errorf("single point length = %v, want 0", got)
	}
}
