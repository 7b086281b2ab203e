package learner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/chat-memory/internal/model"
)

func TestDecay_Partial(t *testing.T) {
	now := time.Now()
	patterns := []model.Pattern{{
		Pattern:   "weather today",
		Frequency: 10,
		LastUsed:  now.Add(-5 * 24 * time.Hour),
	}}

	// 5 days at 0.1/day: factor 0.5.
	got := Decay(patterns, now, 0.1)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Frequency)
}

func TestDecay_FloorAtZero(t *testing.T) {
	now := time.Now()
	patterns := []model.Pattern{
		{Pattern: "a", Frequency: 10, LastUsed: now.Add(-10 * 24 * time.Hour)},
		{Pattern: "b", Frequency: 10, LastUsed: now.Add(-30 * 24 * time.Hour)},
	}

	// Unused for 1/rate days or more decays to zero, never negative.
	got := Decay(patterns, now, 0.1)
	assert.Equal(t, 0, got[0].Frequency)
	assert.Equal(t, 0, got[1].Frequency)
}

func TestDecay_FreshPatternUntouched(t *testing.T) {
	now := time.Now()
	patterns := []model.Pattern{{Pattern: "a", Frequency: 7, LastUsed: now}}

	got := Decay(patterns, now, 0.1)
	assert.Equal(t, 7, got[0].Frequency)
}

func TestDecay_Rounds(t *testing.T) {
	now := time.Now()
	patterns := []model.Pattern{{
		Pattern:   "a",
		Frequency: 3,
		LastUsed:  now.Add(-time.Duration(2.5 * 24 * float64(time.Hour))),
	}}

	// factor 0.75, 3*0.75 = 2.25 rounds to 2.
	got := Decay(patterns, now, 0.1)
	assert.Equal(t, 2, got[0].Frequency)
}

func TestDecay_PureTransform(t *testing.T) {
	now := time.Now()
	patterns := []model.Pattern{{Pattern: "a", Frequency: 10, LastUsed: now.Add(-5 * 24 * time.Hour)}}

	Decay(patterns, now, 0.1)
	assert.Equal(t, 10, patterns[0].Frequency, "input must not be mutated")
}
