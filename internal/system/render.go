package system

import (
	"fmt"
	"time"

	"github.com/ignitiongo/ignition/internal/component"
	"github.com/ignitiongo/ignition/internal/core/ecs"
	"github.com/ignitiongo/ignition/internal/core/event"
	coresys "github.com/ignitiongo/ignition/internal/core/system"
	"github.com/ignitiongo/ignition/internal/render"
)

// RenderSystem draws every active Drawable once per frame, in packed order.
// Phase 3 (Render).
type RenderSystem struct {
	scene     *ecs.Scene
	presenter *render.Presenter
	title     string
	frame     uint64
	drawn     int
}

func NewRenderSystem(scene *ecs.Scene, presenter *render.Presenter, bus *event.Bus, title string) *RenderSystem {
	s := &RenderSystem{scene: scene, presenter: presenter, title: title}
	event.Subscribe(bus, func(event.Resized) { presenter.Resize() })
	return s
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseRender }

func (s *RenderSystem) Update(_ time.Duration) {
	s.presenter.Begin()
	s.drawn = 0
	for d := range ecs.Active[component.Drawable](s.scene) {
		s.presenter.DrawShape(d)
		s.drawn++
	}
	total := 0
	if pool, ok := ecs.PoolOf[component.Drawable](s.scene); ok {
		total = pool.Len()
	}
	s.presenter.DrawStatus(fmt.Sprintf("%s │ frame %d │ drawables %d/%d │ entities %d",
		s.title, s.frame, s.drawn, total, s.scene.EntityCount()))
	s.presenter.Show()
	s.frame++
}

// Drawn is the number of drawables rendered in the last frame.
func (s *RenderSystem) Drawn() int { return s.drawn }
