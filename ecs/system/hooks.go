package system

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/milk9111/mococo/ecs"
)

// Cue names a sound request.
type Cue int

const (
	CueLevelUp Cue = iota
	CueNext
	CueAttach
	CueButton
	CueOver
)

func (c Cue) String() string {
	switch c {
	case CueLevelUp:
		return "level_up"
	case CueNext:
		return "next"
	case CueAttach:
		return "attach"
	case CueButton:
		return "button"
	case CueOver:
		return "over"
	default:
		return "unknown"
	}
}

// Presenter receives everything the core wants shown or played. It never
// feeds state back.
type Presenter interface {
	LevelChanged(e ecs.Entity, level int)
	ScoreChanged(score int)
	HighScoreChanged(score int)
	Warning(e ecs.Entity, on bool)
	Effect(x, y, scale float64)
	Cue(c Cue)
	Music(on bool)
	GameOver(s Summary)
}

// Store is durable integer storage for the high score.
type Store interface {
	GetInt(key string, def int) int
	SetInt(key string, value int) error
}

// Scene restarts or leaves the game.
type Scene interface {
	Restart()
	Quit()
}

// HighScoreKey is the Store key of the best score.
const HighScoreKey = "MaxScore"

// NopPresenter discards every request.
type NopPresenter struct{}

func (NopPresenter) LevelChanged(ecs.Entity, int)     {}
func (NopPresenter) ScoreChanged(int)                 {}
func (NopPresenter) HighScoreChanged(int)             {}
func (NopPresenter) Warning(ecs.Entity, bool)         {}
func (NopPresenter) Effect(float64, float64, float64) {}
func (NopPresenter) Cue(Cue)                          {}
func (NopPresenter) Music(bool)                       {}
func (NopPresenter) GameOver(Summary)                 {}

// Summary is shown on the end screen.
type Summary struct {
	Score     int
	HighScore int
	MaxLevel  int
	Played    time.Duration
}

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

func (s Summary) String() string {
	played := durafmt.Parse(s.Played.Round(time.Second)).LimitFirstN(2).Format(shortUnits)
	return fmt.Sprintf("score %s  best %s  level %d  played %s",
		humanize.Comma(int64(s.Score)), humanize.Comma(int64(s.HighScore)), s.MaxLevel, played)
}
