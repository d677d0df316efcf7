package component

// MaxLevel is the highest level a piece can reach. Two pieces at MaxLevel
// vanish instead of promoting.
const MaxLevel = 7

type PieceState int

const (
	PieceIdle PieceState = iota
	PieceDragging
	PieceFalling
	PieceMerging
	PieceHidden
)

func (s PieceState) String() string {
	switch s {
	case PieceIdle:
		return "idle"
	case PieceDragging:
		return "dragging"
	case PieceFalling:
		return "falling"
	case PieceMerging:
		return "merging"
	case PieceHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// MergeRole says which side of a merge a Merging piece is on.
type MergeRole int

const (
	MergeNone MergeRole = iota
	MergePromote
	MergeRemove
)

// Promotion runs in two steps: settle, then commit.
const (
	PromoteSettle = iota
	PromoteCommit
)

// Piece is the merge state of one pooled entity. A piece is in play while
// Active is set; everything else is reset when it is deactivated.
type Piece struct {
	// Slot is the index in the pool and survives resets.
	Slot   int
	Active bool

	Level       int
	VisualLevel int
	State       PieceState

	Role   MergeRole
	Step   int
	Frames int

	// Removal target. Shrink scales toward zero instead of moving.
	TargetX float64
	TargetY float64
	Shrink  bool

	// EffectFrames delays an effect request; zero means none pending.
	EffectFrames int
	// AttachFrames is the attach cue cooldown.
	AttachFrames int
}

// Merging reports whether the piece is locked in a merge.
func (p *Piece) Merging() bool {
	return p != nil && p.State == PieceMerging
}

var PieceComponent = NewComponent[Piece]()
