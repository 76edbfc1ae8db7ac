package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/ignitiongo/ignition/internal/component"
	"github.com/ignitiongo/ignition/internal/core/ecs"
	"github.com/ignitiongo/ignition/internal/core/event"
	"github.com/ignitiongo/ignition/internal/data"
	"github.com/ignitiongo/ignition/internal/render"
	"github.com/ignitiongo/ignition/internal/scripting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testShapes = `
- name: left
  glyph: "L"
  vertices: [[-1, -1], [0, -1], [-1, 1]]
- name: right
  glyph: "R"
  vertices: [[1, -1], [1, 1], [0, 1]]
`

type fixedSize struct{ w, h int }

func (f fixedSize) Size() (int, int) { return f.w, f.h }

func newLua(t *testing.T, src string) *scripting.Engine {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scene"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene", "test.lua"), []byte(src), 0o644))
	e, err := scripting.NewEngine(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func newShapes(t *testing.T) *data.ShapeTable {
	t.Helper()
	tbl, err := data.ParseShapeTable([]byte(testShapes))
	require.NoError(t, err)
	return tbl
}

func activeShapes(s *ecs.Scene) []string {
	var out []string
	for d := range ecs.Active[component.Drawable](s) {
		out = append(out, d.Shape)
	}
	return out
}

func TestScriptSystemAppliesCommands(t *testing.T) {
	lua := newLua(t, `
function on_start(ctx)
  return {
    { type = "spawn", name = "a", shape = "left" },
    { type = "spawn", name = "b", shape = "right", x = 0.5 },
    { type = "spawn", name = "a", shape = "right" },
    { type = "spawn", name = "ghost", shape = "nope" },
  }
end

function on_frame(ctx)
  if ctx.frame == 1 then
    return { { type = "disable", name = "a" } }
  elseif ctx.frame == 2 then
    return { { type = "delete", name = "b" }, { type = "enable", name = "missing" } }
  elseif ctx.frame == 3 then
    return { { type = "enable", name = "a" }, { type = "attach", name = "ghost", shape = "left" } }
  end
  return {}
end`)
	scene := ecs.NewScene(zaptest.NewLogger(t))
	s := NewScriptSystem(scene, newShapes(t), lua, fixedSize{80, 24}, zaptest.NewLogger(t))
	cleanup := NewCleanupSystem(scene, zaptest.NewLogger(t))

	s.Update(0)
	assert.Equal(t, []string{"left", "right"}, activeShapes(scene))
	ghost, ok := s.Lookup("ghost")
	require.True(t, ok, "spawn with an unknown shape still creates the entity")
	_, hasDrawable := ecs.Get[component.Drawable](scene, ghost)
	assert.False(t, hasDrawable)

	b, _ := s.Lookup("b")
	d, ok := ecs.Get[component.Drawable](scene, b)
	require.True(t, ok)
	assert.Equal(t, component.Vec2{X: 0.5}, d.Offset)

	s.Update(time.Millisecond)
	assert.Equal(t, []string{"right"}, activeShapes(scene))

	s.Update(time.Millisecond)
	assert.True(t, scene.Alive(b), "deletes wait for the cleanup phase")
	cleanup.Update(0)
	assert.False(t, scene.Alive(b))
	assert.Empty(t, activeShapes(scene))
	_, ok = s.Lookup("b")
	assert.False(t, ok)

	s.Update(time.Millisecond)
	assert.ElementsMatch(t, []string{"left", "left"}, activeShapes(scene))
}

func TestScriptSystemContext(t *testing.T) {
	lua := newLua(t, `
seen = {}
function on_start(ctx)
  return { { type = "spawn", name = "z", shape = "left" }, { type = "spawn", name = "y", shape = "right" } }
end
function on_frame(ctx)
  seen = ctx
  return { { type = "disable", name = "y" } }
end`)
	scene := ecs.NewScene(nil)
	s := NewScriptSystem(scene, newShapes(t), lua, fixedSize{40, 12}, zaptest.NewLogger(t))

	s.Update(0)
	s.Update(50 * time.Millisecond)
	s.Update(50 * time.Millisecond)

	ctx := s.context()
	assert.Equal(t, uint64(3), ctx.Frame)
	assert.Equal(t, int64(100), ctx.ElapsedMS)
	assert.Equal(t, 40, ctx.Width)
	assert.Equal(t, []scripting.EntityInfo{
		{Name: "y", ID: 1, Enabled: false},
		{Name: "z", ID: 0, Enabled: true},
	}, ctx.Entities)
}

func TestRenderSystemDrawsActiveOnly(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(20, 10)
	t.Cleanup(screen.Fini)

	scene := ecs.NewScene(nil)
	shapes := newShapes(t)
	left := ecs.With(scene.NewEntity(), shapes.Get("left").Drawable(component.Vec2{})).Build()
	ecs.With(scene.NewEntity(), shapes.Get("right").Drawable(component.Vec2{})).Build()
	require.NoError(t, ecs.Disable[component.Drawable](scene, left))

	bus := event.NewBus()
	r := NewRenderSystem(scene, render.NewPresenter(screen, "black", true), bus, "test")
	r.Update(0)

	assert.Equal(t, 1, r.Drawn())
	var glyphs = map[rune]int{}
	for y := 0; y < 9; y++ {
		for x := 0; x < 20; x++ {
			ch, _, _, _ := screen.GetContent(x, y)
			glyphs[ch]++
		}
	}
	assert.Zero(t, glyphs['L'])
	assert.Positive(t, glyphs['R'])

	status, _, _, _ := screen.GetContent(0, 9)
	assert.Equal(t, 't', status)
}

func TestInputSystemEmitsLifecycleEvents(t *testing.T) {
	bus := event.NewBus()
	events := make(chan tcell.Event, 4)
	s := NewInputSystem(events, bus, zaptest.NewLogger(t))

	var resized []event.Resized
	var closes []event.CloseRequested
	event.Subscribe(bus, func(ev event.Resized) { resized = append(resized, ev) })
	event.Subscribe(bus, func(ev event.CloseRequested) { closes = append(closes, ev) })

	events <- tcell.NewEventResize(100, 40)
	events <- tcell.NewEventInterrupt(nil)
	s.Update(0)
	s.Update(0)

	dispatch := NewEventDispatchSystem(bus)
	dispatch.Update(0)

	assert.Equal(t, []event.Resized{{Width: 100, Height: 40}}, resized)
	assert.Equal(t, []event.CloseRequested{{Reason: "interrupt"}}, closes)
}

func TestCleanupSystemFlushesQueue(t *testing.T) {
	scene := ecs.NewScene(nil)
	e := scene.Spawn()
	ecs.Attach(scene, e, component.Label{Name: "x"})
	scene.MarkForDeletion(e)

	NewCleanupSystem(scene, zaptest.NewLogger(t)).Update(0)

	assert.False(t, scene.Alive(e))
	assert.Zero(t, scene.Pending())
	assert.False(t, ecs.HasComponent[component.Drawable](scene))
}
