package system

import (
	"time"

	"github.com/ignitiongo/ignition/internal/core/ecs"
	coresys "github.com/ignitiongo/ignition/internal/core/system"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity deletion queue at frame end.
// Phase 4 (Cleanup).
type CleanupSystem struct {
	scene *ecs.Scene
	log   *zap.Logger
}

func NewCleanupSystem(scene *ecs.Scene, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{scene: scene, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if s.scene.Pending() == 0 {
		return
	}
	if n := s.scene.FlushDeleteQueue(); n > 0 {
		s.log.Debug("flushed deleted entities", zap.Int("count", n))
	}
}
