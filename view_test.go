package main

import (
	"math"
	"testing"

	"github.com/milk9111/mococo/common"
	"github.com/milk9111/mococo/prefabs"
)

func TestViewRoundTrip(t *testing.T) {
	v := newView(prefabs.DefaultTuning())
	points := [][2]float64{{0, 0}, {-4.2, 0}, {4.2, 10}, {1.25, 7.2}}
	for _, p := range points {
		sx, sy := v.toScreen(p[0], p[1])
		x, y := v.toWorld(float64(sx), float64(sy))
		if math.Abs(x-p[0]) > 1e-3 || math.Abs(y-p[1]) > 1e-3 {
			t.Fatalf("round trip of %v gave (%v, %v)", p, x, y)
		}
	}
}

func TestViewFitsScreen(t *testing.T) {
	v := newView(prefabs.DefaultTuning())
	well := v.well()
	screen := Rect{Width: common.BaseWidth, Height: common.BaseHeight}

	if !screen.Contains(well.X, well.Y) || !screen.Contains(well.X+well.Width, well.Y+well.Height) {
		t.Fatalf("well %+v does not fit the screen", well)
	}
	if _, y := v.toScreen(0, 1); float64(y) >= v.floorY {
		t.Fatalf("world y up should map to screen y down")
	}
}

func TestRect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"inside", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"touching edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"apart", Rect{X: 20, Y: 20, Width: 1, Height: 1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := a.Intersects(c.b); got != c.want {
				t.Fatalf("Intersects = %v, want %v", got, c.want)
			}
		})
	}
}
