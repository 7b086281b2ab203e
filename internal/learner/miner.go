package learner

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/chat-memory/internal/keywords"
	"github.com/rcliao/chat-memory/internal/model"
)

// group accumulates the interactions sharing one signature during a mining
// pass.
type group struct {
	count         int
	firstResponse string
	lastUsed      time.Time
	tags          []string
	tagSet        map[string]bool
}

// LearnFromMemory recomputes the pattern set from scratch over all
// interactions tagged "chat". Document-request and error turns are excluded:
// they have different response shapes and would pollute templates.
//
// The pass is stateless and idempotent; pattern ids are fresh each call and
// carry no identity across calls. Failures degrade to an empty result.
func (l *Learner) LearnFromMemory(ctx context.Context) []model.Pattern {
	interactions, err := l.store.ByTags(ctx, []string{model.TagChat})
	if err != nil {
		l.logger.Warn("failed to load chat interactions for mining", zap.Error(err))
		return nil
	}

	groups := map[string]*group{}
	var order []string
	for _, in := range interactions {
		sig := keywords.Signature(in.Prompt)
		if sig == "" {
			// No keywords survived filtering: contributes to nothing.
			continue
		}

		g, ok := groups[sig]
		if !ok {
			g = &group{firstResponse: in.Response, tagSet: map[string]bool{}}
			groups[sig] = g
			order = append(order, sig)
		}
		g.count++
		if in.Timestamp.After(g.lastUsed) {
			g.lastUsed = in.Timestamp
		}
		for _, tag := range in.Tags {
			if !g.tagSet[tag] {
				g.tagSet[tag] = true
				g.tags = append(g.tags, tag)
			}
		}
	}

	var patterns []model.Pattern
	for _, sig := range order {
		g := groups[sig]
		if g.count < l.cfg.MinFrequency {
			continue
		}
		patterns = append(patterns, model.Pattern{
			ID:               l.newID(),
			Pattern:          sig,
			ResponseTemplate: GeneralizeResponse(g.firstResponse),
			Frequency:        g.count,
			LastUsed:         g.lastUsed,
			Tags:             g.tags,
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Frequency != patterns[j].Frequency {
			return patterns[i].Frequency > patterns[j].Frequency
		}
		return patterns[i].Pattern < patterns[j].Pattern
	})

	if len(patterns) > l.cfg.MaxPatterns {
		patterns = patterns[:l.cfg.MaxPatterns]
	}
	return patterns
}
