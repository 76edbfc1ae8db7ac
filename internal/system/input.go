package system

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/ignitiongo/ignition/internal/core/event"
	coresys "github.com/ignitiongo/ignition/internal/core/system"
	"github.com/ignitiongo/ignition/internal/render"
	"go.uber.org/zap"
)

// InputSystem drains terminal events forwarded by the pump goroutine and
// turns them into window lifecycle events on the bus. Phase 0 (Input).
type InputSystem struct {
	events <-chan tcell.Event
	bus    *event.Bus
	log    *zap.Logger
}

func NewInputSystem(events <-chan tcell.Event, bus *event.Bus, log *zap.Logger) *InputSystem {
	return &InputSystem{events: events, bus: bus, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return
			}
			s.handle(ev)
		default:
			return
		}
	}
}

func (s *InputSystem) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		s.log.Debug("window resized", zap.Int("width", w), zap.Int("height", h))
		event.Emit(s.bus, event.Resized{Width: w, Height: h})
	case *tcell.EventKey:
		if render.IsCloseKey(ev.Key(), ev.Rune(), ev.Modifiers()) {
			event.Emit(s.bus, event.CloseRequested{Reason: ev.Name()})
		}
	case *tcell.EventInterrupt:
		event.Emit(s.bus, event.CloseRequested{Reason: "interrupt"})
	}
}
