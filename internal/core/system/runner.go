package system

import (
	"cmp"
	"slices"
	"time"
)

// Runner executes systems in phase order each frame. Systems sharing a phase
// run in registration order.
type Runner struct {
	systems []System
	sorted  bool
	frame   uint64
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs one full frame.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
	r.frame++
}

// TickPhase runs only the systems registered for phase. It does not advance
// the frame counter.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// Frame is the number of completed Ticks.
func (r *Runner) Frame() uint64 { return r.frame }

func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		slices.SortStableFunc(r.systems, func(a, b System) int {
			return cmp.Compare(a.Phase(), b.Phase())
		})
		r.sorted = true
	}
}
