package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ignitiongo/ignition/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 6, displayWidth("shapes"))
	assert.Equal(t, 4, displayWidth("資料"))
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignition.log")
	log, err := newLogger(config.LoggingConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	log.Debug("hello")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"hello"`)
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignition.log")
	log, err := newLogger(config.LoggingConfig{Level: "loud", File: path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), "shown")
}
