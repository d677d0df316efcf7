package component

// Dwell tracks how long a piece has stayed inside the danger zone.
type Dwell struct {
	Seconds float64
	Warning bool
}

var DwellComponent = NewComponent[Dwell]()
