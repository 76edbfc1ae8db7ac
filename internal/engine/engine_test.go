package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/ignitiongo/ignition/internal/component"
	"github.com/ignitiongo/ignition/internal/config"
	"github.com/ignitiongo/ignition/internal/core/ecs"
	"github.com/ignitiongo/ignition/internal/data"
	"github.com/ignitiongo/ignition/internal/scripting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newEngine(t *testing.T, cfgText string) *Engine {
	t.Helper()
	cfg, err := config.Parse([]byte(cfgText), "test")
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cfg.Window.Width, cfg.Window.Height)
	t.Cleanup(screen.Fini)

	root := filepath.Join("..", "..")
	shapes, err := data.LoadShapeTable(filepath.Join(root, "data", "yaml", "shapes.yaml"))
	require.NoError(t, err)
	lua, err := scripting.NewEngine(filepath.Join(root, "scripts"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(lua.Close)

	return New(cfg, screen, shapes, lua, zaptest.NewLogger(t))
}

func drawnShapes(e *Engine) []string {
	var out []string
	for d := range ecs.Active[component.Drawable](e.Scene()) {
		out = append(out, d.Shape)
	}
	return out
}

func TestTrianglesAlternate(t *testing.T) {
	e := newEngine(t, `[engine]
frame_rate = "50ms"`)

	e.Step(50 * time.Millisecond)
	assert.Equal(t, []string{"triangle_one", "triangle_two"}, drawnShapes(e))
	assert.Equal(t, 2, e.Renderer().Drawn())

	for i := 0; i < 4; i++ {
		e.Step(50 * time.Millisecond)
	}
	assert.Equal(t, []string{"triangle_two"}, drawnShapes(e))

	for i := 0; i < 4; i++ {
		e.Step(50 * time.Millisecond)
	}
	assert.Equal(t, []string{"triangle_one"}, drawnShapes(e))
	assert.Equal(t, uint64(9), e.Frame())

	pool, ok := ecs.PoolOf[component.Drawable](e.Scene())
	require.True(t, ok)
	assert.Equal(t, 2, pool.Len(), "disabled triangles stay stored")
}

func TestRunStopsAtFrameBudget(t *testing.T) {
	e := newEngine(t, `[engine]
frame_rate = "1ms"
max_frames = 5`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Run(ctx))
	assert.Equal(t, uint64(5), e.Frame())
}

func TestRunStopsOnClose(t *testing.T) {
	e := newEngine(t, `[engine]
frame_rate = "1ms"`)
	e.Events() <- tcell.NewEventInterrupt(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Run(ctx))

	reason, ok := e.Closing()
	assert.True(t, ok)
	assert.Equal(t, "interrupt", reason)
	assert.NoError(t, ctx.Err())
}

func TestRunStopsOnContext(t *testing.T) {
	e := newEngine(t, `[engine]
frame_rate = "1ms"`)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	require.NoError(t, e.Run(ctx))
	_, closing := e.Closing()
	assert.False(t, closing)
}
