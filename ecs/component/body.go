package component

// Body holds the requests a piece makes of the physics adapter. The adapter
// owns the actual Chipmunk body.
type Body struct {
	// Simulated lets the physics step move this piece.
	Simulated bool
	// ZeroVelocity asks the adapter to halt linear and angular motion on the
	// next step. The adapter clears it.
	ZeroVelocity bool
}

var BodyComponent = NewComponent[Body]()
