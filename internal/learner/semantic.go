package learner

import (
	"context"
	"fmt"
	"sort"

	"github.com/rcliao/chat-memory/internal/embedding"
	"github.com/rcliao/chat-memory/internal/model"
)

// SemanticSuggestions ranks patterns against the prompt by cosine similarity
// of embeddings instead of lexical overlap. This is a separate, opt-in
// alternative to FindSimilar; the default matching path stays lexical.
// Unlike the lexical path this one returns errors: it talks to an external
// embedding provider and the caller opted in.
func SemanticSuggestions(ctx context.Context, e embedding.Embedder, prompt string, patterns []model.Pattern, limit int) ([]model.Pattern, error) {
	if e == nil {
		return nil, fmt.Errorf("no embedder configured")
	}
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	promptVec, err := e.Embed(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("embed prompt: %w", err)
	}

	type scored struct {
		pattern model.Pattern
		score   float64
	}
	ranked := make([]scored, 0, len(patterns))
	for _, p := range patterns {
		vec, err := e.Embed(ctx, p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("embed pattern %q: %w", p.Pattern, err)
		}
		ranked = append(ranked, scored{pattern: p, score: embedding.CosineSimilarity(promptVec, vec)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]model.Pattern, len(ranked))
	for i, r := range ranked {
		out[i] = r.pattern
	}
	return out, nil
}
