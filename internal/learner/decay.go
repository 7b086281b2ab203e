package learner

import (
	"math"
	"time"

	"github.com/rcliao/chat-memory/internal/model"
)

const msPerDay = 86_400_000

// Decay returns a copy of patterns with frequencies reduced for staleness:
// a pattern loses rate*100 percentage points of its frequency per day since
// last use, floored at zero. Pure transform; the input is not mutated and no
// store is touched. Callers decide whether and when to apply it.
func Decay(patterns []model.Pattern, now time.Time, rate float64) []model.Pattern {
	out := make([]model.Pattern, len(patterns))
	for i, p := range patterns {
		daysSinceUse := float64(now.Sub(p.LastUsed).Milliseconds()) / msPerDay
		factor := 1 - daysSinceUse*rate
		if factor < 0 {
			factor = 0
		}
		p.Frequency = int(math.Round(float64(p.Frequency) * factor))
		out[i] = p
	}
	return out
}

// DecayNow applies Decay with the learner's configured rate and the current
// time.
func (l *Learner) DecayNow(patterns []model.Pattern) []model.Pattern {
	return Decay(patterns, time.Now(), l.cfg.DecayRate)
}
