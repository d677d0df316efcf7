package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// PieceLevels is the number of entries the level table must carry.
const PieceLevels = 8

var ErrLevelTable = errors.New("prefabs: level table must have 8 entries")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	return LoadSpecOver(filename, zero)
}

// LoadSpecOver decodes filename on top of base. Keys missing from the file keep
// the base value; keys present always win, zero included.
func LoadSpecOver[T any](filename string, base T) (T, error) {
	data, err := Load(filename)
	if err != nil {
		return base, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := base
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return base, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Tuning holds every gameplay constant. Durations are in seconds and are
// converted to ticks with Frames.
type Tuning struct {
	TPS      int         `yaml:"tps"`
	PoolSize int         `yaml:"pool_size"`
	Gravity  float64     `yaml:"gravity"`
	Well     WellSpec    `yaml:"well"`
	Timing   TimingSpec  `yaml:"timing"`
	Levels   []LevelSpec `yaml:"levels"`
}

type WellSpec struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SpawnHeight float64 `yaml:"spawn_height"`
	DangerLine  float64 `yaml:"danger_line"`
	Friction    float64 `yaml:"friction"`
	Elasticity  float64 `yaml:"elasticity"`
}

type TimingSpec struct {
	StartDelay      float64 `yaml:"start_delay"`
	SpawnDelay      float64 `yaml:"spawn_delay"`
	Settle          float64 `yaml:"settle"`
	Promote         float64 `yaml:"promote"`
	PairEffectDelay float64 `yaml:"pair_effect_delay"`
	AttachCooldown  float64 `yaml:"attach_cooldown"`
	DwellWarn       float64 `yaml:"dwell_warn"`
	DwellOver       float64 `yaml:"dwell_over"`
	GameOverStagger float64 `yaml:"game_over_stagger"`
	GameOverWait    float64 `yaml:"game_over_wait"`
	ResetDelay      float64 `yaml:"reset_delay"`
	HideFrames      int     `yaml:"hide_frames"`
	HideLerp        float64 `yaml:"hide_lerp"`
	ShrinkLerp      float64 `yaml:"shrink_lerp"`
	DragSmoothing   float64 `yaml:"drag_smoothing"`
}

type LevelSpec struct {
	Diameter float64    `yaml:"diameter"`
	Color    *YAMLColor `yaml:"color"`
}

// DefaultTuning mirrors prefabs/tuning.yaml so the game still runs when the
// file is missing or broken.
func DefaultTuning() Tuning {
	return Tuning{
		TPS:      60,
		PoolSize: 10,
		Gravity:  -9.81,
		Well: WellSpec{
			Width:       8.4,
			Height:      10,
			SpawnHeight: 9,
			DangerLine:  7.2,
			Friction:    0.4,
			Elasticity:  0.1,
		},
		Timing: TimingSpec{
			StartDelay:      1.5,
			SpawnDelay:      1.5,
			Settle:          0.2,
			Promote:         0.3,
			PairEffectDelay: 0.3,
			AttachCooldown:  1,
			DwellWarn:       1.5,
			DwellOver:       3,
			GameOverStagger: 0.1,
			GameOverWait:    1,
			ResetDelay:      1,
			HideFrames:      20,
			HideLerp:        0.5,
			ShrinkLerp:      0.2,
			DragSmoothing:   0.2,
		},
		Levels: []LevelSpec{
			{Diameter: 0.6}, {Diameter: 0.8}, {Diameter: 1.05}, {Diameter: 1.3},
			{Diameter: 1.6}, {Diameter: 1.95}, {Diameter: 2.35}, {Diameter: 2.8},
		},
	}
}

// LoadTuning reads a tuning file over DefaultTuning, so the file only needs
// the keys it changes.
func LoadTuning(name string) (Tuning, error) {
	spec, err := LoadSpecOver(name, DefaultTuning())
	if err != nil {
		return DefaultTuning(), err
	}
	if len(spec.Levels) != PieceLevels {
		return DefaultTuning(), fmt.Errorf("prefabs: %s: %w", name, ErrLevelTable)
	}
	return spec, nil
}

// Frames converts seconds to whole ticks, never less than one.
func (t Tuning) Frames(seconds float64) int {
	n := int(math.Round(seconds * float64(t.tps())))
	if n < 1 {
		return 1
	}
	return n
}

// TickSeconds is the duration of one tick.
func (t Tuning) TickSeconds() float64 {
	return 1 / float64(t.tps())
}

func (t Tuning) tps() int {
	if t.TPS <= 0 {
		return 60
	}
	return t.TPS
}

// Diameter returns the piece diameter for a level, clamped to the table.
func (t Tuning) Diameter(level int) float64 {
	if len(t.Levels) == 0 {
		return 1
	}
	if level < 0 {
		level = 0
	}
	if level >= len(t.Levels) {
		level = len(t.Levels) - 1
	}
	return t.Levels[level].Diameter
}

// LevelColor returns the display color for a level.
func (t Tuning) LevelColor(level int) color.Color {
	if level >= 0 && level < len(t.Levels) && t.Levels[level].Color != nil && t.Levels[level].Color.Color != nil {
		return t.Levels[level].Color.Color
	}
	return color.White
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
