package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM driving scene logic.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads scripts from scriptsDir: core
// helpers first, then scene scripts.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "scene"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory. Missing directories are skipped.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// EntityInfo is what scripts see of a named entity.
type EntityInfo struct {
	Name    string
	ID      uint32
	Enabled bool
}

// FrameContext holds pre-packed data handed to on_start / on_frame.
type FrameContext struct {
	Frame     uint64
	ElapsedMS int64
	Width     int
	Height    int
	Entities  []EntityInfo
}

// Command is a single scene mutation returned by a Lua hook.
type Command struct {
	Type    string // "spawn", "attach", "enable", "disable", "delete", "log"
	Name    string // entity name the command targets
	Shape   string // shape catalog name for spawn / attach
	X, Y    float64
	Message string
}

// HasHook reports whether a global Lua function with the given name exists.
func (e *Engine) HasHook(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// OnStart calls Lua on_start(ctx) once before the first frame.
func (e *Engine) OnStart(ctx FrameContext) []Command {
	return e.callHook("on_start", ctx)
}

// OnFrame calls Lua on_frame(ctx) once per frame.
func (e *Engine) OnFrame(ctx FrameContext) []Command {
	return e.callHook("on_frame", ctx)
}

func (e *Engine) callHook(name string, ctx FrameContext) []Command {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return nil
	}

	t := e.vm.NewTable()
	t.RawSetString("frame", lua.LNumber(ctx.Frame))
	t.RawSetString("elapsed_ms", lua.LNumber(ctx.ElapsedMS))
	t.RawSetString("width", lua.LNumber(ctx.Width))
	t.RawSetString("height", lua.LNumber(ctx.Height))

	ents := e.vm.NewTable()
	for _, info := range ctx.Entities {
		row := e.vm.NewTable()
		row.RawSetString("id", lua.LNumber(info.ID))
		row.RawSetString("enabled", lua.LBool(info.Enabled))
		ents.RawSetString(info.Name, row)
	}
	t.RawSetString("entities", ents)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua hook error", zap.String("hook", name), zap.Error(err))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}

	var cmds []Command
	rt.ForEach(func(_, v lua.LValue) {
		if row, ok := v.(*lua.LTable); ok {
			cmds = append(cmds, Command{
				Type:    lStr(row, "type"),
				Name:    lStr(row, "name"),
				Shape:   lStr(row, "shape"),
				X:       lFloat(row, "x"),
				Y:       lFloat(row, "y"),
				Message: lStr(row, "message"),
			})
		}
	})
	return cmds
}

// lStr reads a string field from a Lua table; absent fields read as "".
func lStr(t *lua.LTable, key string) string {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return ""
	}
	return lua.LVAsString(v)
}

func lFloat(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
