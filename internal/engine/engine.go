package engine

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/ignitiongo/ignition/internal/config"
	"github.com/ignitiongo/ignition/internal/core/ecs"
	"github.com/ignitiongo/ignition/internal/core/event"
	coresys "github.com/ignitiongo/ignition/internal/core/system"
	"github.com/ignitiongo/ignition/internal/data"
	"github.com/ignitiongo/ignition/internal/render"
	"github.com/ignitiongo/ignition/internal/scripting"
	"github.com/ignitiongo/ignition/internal/system"
	"go.uber.org/zap"
)

// Engine owns the scene and everything that drives it: the system runner,
// the event bus and the terminal presenter. The scene is only touched from
// the goroutine calling Run or Step.
type Engine struct {
	cfg       *config.Config
	scene     *ecs.Scene
	runner    *coresys.Runner
	bus       *event.Bus
	presenter *render.Presenter
	scripts   *system.ScriptSystem
	renderer  *system.RenderSystem
	events    chan tcell.Event
	closing   string
	log       *zap.Logger
}

func New(cfg *config.Config, screen tcell.Screen, shapes *data.ShapeTable, lua *scripting.Engine, log *zap.Logger) *Engine {
	e := &Engine{
		cfg:       cfg,
		scene:     ecs.NewScene(log.Named("scene")),
		runner:    coresys.NewRunner(),
		bus:       event.NewBus(),
		presenter: render.NewPresenter(screen, cfg.Window.Background, cfg.Window.ShowStatus),
		events:    make(chan tcell.Event, 64),
		log:       log,
	}
	e.scripts = system.NewScriptSystem(e.scene, shapes, lua, e.presenter, log.Named("script"))
	e.renderer = system.NewRenderSystem(e.scene, e.presenter, e.bus, cfg.Window.Title)

	e.runner.Register(system.NewInputSystem(e.events, e.bus, log))
	e.runner.Register(system.NewEventDispatchSystem(e.bus))
	e.runner.Register(e.scripts)
	e.runner.Register(e.renderer)
	e.runner.Register(system.NewCleanupSystem(e.scene, log))

	event.Subscribe(e.bus, func(ev event.CloseRequested) {
		if e.closing == "" {
			e.closing = ev.Reason
		}
	})
	return e
}

func (e *Engine) Scene() *ecs.Scene              { return e.scene }
func (e *Engine) Renderer() *system.RenderSystem { return e.renderer }
func (e *Engine) Events() chan<- tcell.Event     { return e.events }
func (e *Engine) Frame() uint64                  { return e.runner.Frame() }

// Step runs a single frame.
func (e *Engine) Step(dt time.Duration) {
	e.runner.Tick(dt)
}

// Closing reports whether a close was requested, and why.
func (e *Engine) Closing() (string, bool) {
	return e.closing, e.closing != ""
}

// Run pumps terminal events and ticks the frame loop until ctx is done, a
// close is requested, or engine.max_frames frames have run.
func (e *Engine) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go render.PumpEvents(e.presenter.Screen(), e.events, done)

	rate := e.cfg.Engine.FrameRate
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	e.log.Info("frame loop started", zap.Duration("frame_rate", rate))
	for {
		select {
		case <-ctx.Done():
			e.log.Info("frame loop stopped", zap.Error(ctx.Err()))
			return nil
		case <-ticker.C:
			e.Step(rate)
			if reason, ok := e.Closing(); ok {
				e.log.Info("close requested", zap.String("reason", reason))
				return nil
			}
			if limit := e.cfg.Engine.MaxFrames; limit > 0 && e.Frame() >= limit {
				e.log.Info("frame budget reached", zap.Uint64("frames", e.Frame()))
				return nil
			}
		}
	}
}
