package main

import (
	"math"

	"github.com/milk9111/mococo/common"
	"github.com/milk9111/mococo/prefabs"
)

const (
	screenMargin    = 20.0
	hudHeight       = 120.0
	wallThicknessPx = 6.0
)

// view maps world units (y up, floor at 0, well centered on x = 0) to screen
// pixels (y down).
type view struct {
	ppu     float64
	originX float64
	floorY  float64
	wellW   float64
	wellH   float64
}

func newView(t prefabs.Tuning) view {
	w, h := t.Well.Width, t.Well.Height
	ppu := math.Min(
		(common.BaseWidth-2*screenMargin-2*wallThicknessPx)/w,
		(common.BaseHeight-hudHeight-screenMargin-wallThicknessPx)/h,
	)
	return view{
		ppu:     ppu,
		originX: common.BaseWidth / 2,
		floorY:  common.BaseHeight - screenMargin - wallThicknessPx,
		wellW:   w,
		wellH:   h,
	}
}

func (v view) toScreen(x, y float64) (float32, float32) {
	return float32(v.originX + x*v.ppu), float32(v.floorY - y*v.ppu)
}

func (v view) toWorld(sx, sy float64) (float64, float64) {
	return (sx - v.originX) / v.ppu, (v.floorY - sy) / v.ppu
}

// well is the inside of the well in screen pixels.
func (v view) well() Rect {
	return Rect{
		X:      v.originX - v.wellW/2*v.ppu,
		Y:      v.floorY - v.wellH*v.ppu,
		Width:  v.wellW * v.ppu,
		Height: v.wellH * v.ppu,
	}
}
