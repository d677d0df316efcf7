package system

import "github.com/milk9111/mococo/ecs"

// ResetSystem restarts the scene a short delay after the player asks for it.
type ResetSystem struct {
	scene     Scene
	presenter Presenter
	delay     int

	armed  bool
	frames int
	fired  bool
}

func NewResetSystem(scene Scene, presenter Presenter, delay int) *ResetSystem {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &ResetSystem{scene: scene, presenter: presenter, delay: delay}
}

// Arm starts the reset countdown. Only the first call counts.
func (s *ResetSystem) Arm() {
	if s.armed {
		return
	}
	s.armed = true
	s.frames = s.delay
	s.presenter.Cue(CueButton)
}

// Armed reports whether a reset is pending or done.
func (s *ResetSystem) Armed() bool {
	return s.armed
}

func (s *ResetSystem) Update(w *ecs.World) {
	if !s.armed || s.fired {
		return
	}
	s.frames--
	if s.frames > 0 {
		return
	}
	s.fired = true
	if s.scene != nil {
		s.scene.Restart()
	}
}
