package component

// Session is the singleton play-session state. Only the session system writes
// Score and MaxLevel; pieces report through the world event queue.
type Session struct {
	Score     int
	MaxLevel  int
	HighScore int
	Over      bool
	Started   bool
	// Active is the piece under input control (ecs.Entity is uint64); zero
	// when none.
	Active uint64
	// Ticks counts played ticks for the end summary.
	Ticks int
}

var SessionComponent = NewComponent[Session]()

// Pointer is the latest pointer sample in world space.
type Pointer struct {
	X    float64
	Y    float64
	Held bool
}

var PointerComponent = NewComponent[Pointer]()
