package glitch

import "time"

// frameStats holds per-frame timing and size metrics.
// Only logged when the engine was mounted with Debug.
type frameStats struct {
	update   time.Duration
	link     time.Duration
	draw     time.Duration
	interval time.Duration
	entities int
	links    int
}

func (s frameStats) total() time.Duration {
	return s.update + s.link + s.draw
}

// debugLog writes timing and size stats at debug level.
func (e *Engine) debugLog(stats frameStats) {
	if !e.debug {
		return
	}
	e.log.Debug().
		Uint64("frame", e.state.Frame).
		Dur("update", stats.update).
		Dur("link", stats.link).
		Dur("draw", stats.draw).
		Dur("total", stats.total()).
		Dur("interval", stats.interval).
		Int("entities", stats.entities).
		Int("links", stats.links).
		Msg("frame")
	if budget := nominalFrame; stats.total() > budget {
		e.log.Warn().Dur("total", stats.total()).Dur("budget", budget).Msg("frame over budget")
	}
}
