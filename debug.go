package yuletree

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime time.Duration
	submitTime time.Duration
	particles  int
	surfaces   int
}

// debugLogInterval throttles debug output to one line pair per this many
// frames so a 60 Hz loop does not flood stderr.
const debugLogInterval = 60

// debugLog prints timing and population stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || s.frames%debugLogInterval != 0 {
		return
	}
	total := stats.updateTime + stats.submitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[yuletree] update: %v | submit: %v | total: %v\n",
		stats.updateTime, stats.submitTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[yuletree] state: %v | foliage mix: %.3f | particles: %d | surfaces: %d\n",
		s.controller.State(), s.foliage.Mix(), stats.particles, stats.surfaces)
}
