package system

import "time"

// Phase orders systems within a single frame.
type Phase int

const (
	PhaseInput     Phase = iota // 0: drain window and terminal events
	PhasePreUpdate              // 1: dispatch last frame's events
	PhaseUpdate                 // 2: scene logic (scripts)
	PhaseRender                 // 3: draw active drawables
	PhaseCleanup                // 4: flush queued entity deletions
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhaseRender:
		return "render"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every frame-loop system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
