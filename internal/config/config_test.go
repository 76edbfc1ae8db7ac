package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[engine]
frame_rate = "200ms"
max_frames = 10

[window]
title = "triangles"

[logging]
level = "debug"
`), "test")
	require.NoError(t, err)

	assert.Equal(t, 200*time.Millisecond, cfg.Engine.FrameRate)
	assert.Equal(t, uint64(10), cfg.Engine.MaxFrames)
	assert.Equal(t, "triangles", cfg.Window.Title)
	assert.Equal(t, 80, cfg.Window.Width, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "data/yaml/shapes.yaml", cfg.Assets.Shapes)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte(`[engine]
frame_rate = "0s"`), "zero")
	assert.ErrorContains(t, err, "frame_rate")

	_, err = Parse([]byte(`[window]
width = -1`), "width")
	assert.ErrorContains(t, err, "window size")

	_, err = Parse([]byte(`engine = [`), "broken")
	assert.ErrorContains(t, err, "parse config broken")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nname = \"demo\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Engine.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
