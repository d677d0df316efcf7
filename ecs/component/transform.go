package component

// Transform is the world-space placement of a piece. Y grows upward; Scale is
// the rendered diameter.
type Transform struct {
	X     float64
	Y     float64
	Scale float64
}

var TransformComponent = NewComponent[Transform]()
