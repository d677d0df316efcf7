package system

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/mococo/ecs/component"
)

var ErrBadSpawnLevels = errors.New("spawn: script returned no usable levels")

// SpawnRule lists the levels a new piece may start at.
type SpawnRule interface {
	Levels(maxLevel int) ([]int, error)
}

// BuiltinRule keeps early play easy: {0,1} until a level 3 piece exists, then
// {0,1,2}.
type BuiltinRule struct{}

func (BuiltinRule) Levels(maxLevel int) ([]int, error) {
	if maxLevel < 3 {
		return []int{0, 1}, nil
	}
	return []int{0, 1, 2}, nil
}

// ScriptRule evaluates a tengo script that reads `max_level` and assigns the
// candidate list to `levels`.
type ScriptRule struct {
	compiled *tengo.Compiled
}

// NewScriptRule compiles src and runs it once for max_level 0. Globals only
// exist after a run, so a script that never assigns `levels` is rejected here.
// The list itself is validated on every Levels call.
func NewScriptRule(src []byte) (*ScriptRule, error) {
	script := tengo.NewScript(src)
	if err := script.Add("max_level", 0); err != nil {
		return nil, fmt.Errorf("spawn: declare max_level: %w", err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("spawn: compile rule: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("spawn: run rule: %w", err)
	}
	if !compiled.IsDefined("levels") {
		return nil, fmt.Errorf("%w: levels is not defined", ErrBadSpawnLevels)
	}
	return &ScriptRule{compiled: compiled}, nil
}

func (r *ScriptRule) Levels(maxLevel int) ([]int, error) {
	if err := r.compiled.Set("max_level", maxLevel); err != nil {
		return nil, fmt.Errorf("spawn: set max_level: %w", err)
	}
	if err := r.compiled.Run(); err != nil {
		return nil, fmt.Errorf("spawn: run rule: %w", err)
	}
	if !r.compiled.IsDefined("levels") {
		return nil, fmt.Errorf("%w: levels is not defined", ErrBadSpawnLevels)
	}

	raw := r.compiled.Get("levels").Array()
	levels := make([]int, 0, len(raw))
	for _, v := range raw {
		var n int
		switch x := v.(type) {
		case int64:
			n = int(x)
		case int:
			n = x
		default:
			return nil, fmt.Errorf("%w: %v", ErrBadSpawnLevels, v)
		}
		if n < 0 || n > component.MaxLevel {
			return nil, fmt.Errorf("%w: level %d", ErrBadSpawnLevels, n)
		}
		levels = append(levels, n)
	}
	if len(levels) == 0 {
		return nil, ErrBadSpawnLevels
	}
	return levels, nil
}
