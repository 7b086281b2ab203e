package learner

import (
	"context"
	"sort"

	"github.com/rcliao/chat-memory/internal/keywords"
	"github.com/rcliao/chat-memory/internal/model"
)

const defaultSuggestionLimit = 5

// FindSimilar returns the patterns whose signature has Jaccard similarity of
// at least threshold with the query, ranked by descending frequency.
//
// Similarity is over whitespace-split lowercased token sets: no stemming and
// no stopword removal here (length filtering only happens during signature
// extraction).
func FindSimilar(query string, patterns []model.Pattern, threshold float64) []model.Pattern {
	var matches []model.Pattern
	for _, p := range patterns {
		if keywords.Jaccard(query, p.Pattern) >= threshold {
			matches = append(matches, p)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Frequency > matches[j].Frequency
	})
	return matches
}

// LearnedResponse mines the current history and returns the response template
// of the highest-frequency pattern similar to the prompt. The second return
// is false when nothing qualifies.
//
// The template is advisory output: placeholders like {number} are the
// caller's responsibility to fill before display.
func (l *Learner) LearnedResponse(ctx context.Context, prompt string) (string, bool) {
	matches := FindSimilar(prompt, l.LearnFromMemory(ctx), l.cfg.SimilarityThreshold)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].ResponseTemplate, true
}

// Suggestions returns up to limit patterns similar to the prompt for display
// of "similar past patterns". A non-positive limit defaults to 5.
func (l *Learner) Suggestions(ctx context.Context, prompt string, limit int) []model.Pattern {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	matches := FindSimilar(prompt, l.LearnFromMemory(ctx), l.cfg.SimilarityThreshold)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
