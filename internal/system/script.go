package system

import (
	"sort"
	"time"

	"github.com/ignitiongo/ignition/internal/component"
	"github.com/ignitiongo/ignition/internal/core/ecs"
	coresys "github.com/ignitiongo/ignition/internal/core/system"
	"github.com/ignitiongo/ignition/internal/data"
	"github.com/ignitiongo/ignition/internal/scripting"
	"go.uber.org/zap"
)

// Sizer reports the current drawable area in cells.
type Sizer interface {
	Size() (int, int)
}

// ScriptSystem runs the Lua hooks and applies the commands they return to
// the scene. Commands are applied after the hook returns, never while a
// pool is being iterated. Phase 2 (Update).
type ScriptSystem struct {
	scene   *ecs.Scene
	shapes  *data.ShapeTable
	lua     *scripting.Engine
	size    Sizer
	log     *zap.Logger
	names   map[string]ecs.Entity
	started bool
	frame   uint64
	elapsed time.Duration
}

func NewScriptSystem(scene *ecs.Scene, shapes *data.ShapeTable, lua *scripting.Engine, size Sizer, log *zap.Logger) *ScriptSystem {
	return &ScriptSystem{
		scene:  scene,
		shapes: shapes,
		lua:    lua,
		size:   size,
		log:    log,
		names:  make(map[string]ecs.Entity, 32),
	}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScriptSystem) Update(dt time.Duration) {
	if !s.started {
		s.started = true
		s.Apply(s.lua.OnStart(s.context()))
	} else {
		s.elapsed += dt
	}
	s.Apply(s.lua.OnFrame(s.context()))
	s.frame++
}

// Lookup returns the entity a script spawned under name.
func (s *ScriptSystem) Lookup(name string) (ecs.Entity, bool) {
	e, ok := s.names[name]
	return e, ok
}

func (s *ScriptSystem) context() scripting.FrameContext {
	w, h := s.size.Size()
	ctx := scripting.FrameContext{
		Frame:     s.frame,
		ElapsedMS: s.elapsed.Milliseconds(),
		Width:     w,
		Height:    h,
		Entities:  make([]scripting.EntityInfo, 0, len(s.names)),
	}
	pool, _ := ecs.PoolOf[component.Drawable](s.scene)
	for name, e := range s.names {
		info := scripting.EntityInfo{Name: name, ID: uint32(e)}
		if pool != nil {
			info.Enabled = pool.Enabled(e)
		}
		ctx.Entities = append(ctx.Entities, info)
	}
	sort.Slice(ctx.Entities, func(i, j int) bool { return ctx.Entities[i].Name < ctx.Entities[j].Name })
	return ctx
}

// Apply executes script commands against the scene. Bad commands are logged
// and skipped.
func (s *ScriptSystem) Apply(cmds []scripting.Command) {
	for _, c := range cmds {
		switch c.Type {
		case "spawn":
			s.spawn(c)
		case "attach":
			s.attach(c)
		case "enable":
			if e, ok := s.target(c); ok {
				s.scene.EnableAll(e)
			}
		case "disable":
			if e, ok := s.target(c); ok {
				s.scene.DisableAll(e)
			}
		case "delete":
			if e, ok := s.target(c); ok {
				s.scene.MarkForDeletion(e)
				delete(s.names, c.Name)
			}
		case "log":
			s.log.Info("script", zap.String("message", c.Message))
		default:
			s.log.Warn("unknown script command", zap.String("type", c.Type))
		}
	}
}

func (s *ScriptSystem) spawn(c scripting.Command) {
	if _, dup := s.names[c.Name]; dup {
		s.log.Warn("spawn: name already in use", zap.String("name", c.Name))
		return
	}
	b := s.scene.NewEntity()
	ecs.With(b, component.Label{Name: c.Name})
	if c.Shape != "" {
		shape := s.shapes.Get(c.Shape)
		if shape == nil {
			s.log.Warn("spawn: unknown shape", zap.String("name", c.Name), zap.String("shape", c.Shape))
		} else {
			ecs.With(b, shape.Drawable(component.Vec2{X: c.X, Y: c.Y}))
		}
	}
	e := b.Build()
	s.names[c.Name] = e
	s.log.Debug("spawned", zap.String("name", c.Name), zap.Stringer("entity", e))
}

func (s *ScriptSystem) attach(c scripting.Command) {
	e, ok := s.target(c)
	if !ok {
		return
	}
	shape := s.shapes.Get(c.Shape)
	if shape == nil {
		s.log.Warn("attach: unknown shape", zap.String("name", c.Name), zap.String("shape", c.Shape))
		return
	}
	ecs.Attach(s.scene, e, shape.Drawable(component.Vec2{X: c.X, Y: c.Y}))
}

func (s *ScriptSystem) target(c scripting.Command) (ecs.Entity, bool) {
	e, ok := s.names[c.Name]
	if !ok {
		s.log.Warn("script command for unknown entity", zap.String("type", c.Type), zap.String("name", c.Name))
	}
	return e, ok
}
