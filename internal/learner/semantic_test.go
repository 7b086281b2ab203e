package learner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/chat-memory/internal/embedding"
	"github.com/rcliao/chat-memory/internal/model"
)

// fakeEmbedder maps known strings to fixed vectors.
type fakeEmbedder struct {
	vectors map[string]embedding.Vector
}

func (f fakeEmbedder) Embed(_ context.Context, text string) (embedding.Vector, error) {
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return embedding.Vector{0, 0, 1}, nil
}

func TestSemanticSuggestions(t *testing.T) {
	ctx := context.Background()
	e := fakeEmbedder{vectors: map[string]embedding.Vector{
		"weather forecast": {1, 0, 0},
		"weather today":    {0.9, 0.1, 0},
		"deploy new build": {0, 1, 0},
	}}
	patterns := []model.Pattern{
		pat("deploy new build", 9),
		pat("weather today", 3),
	}

	got, err := SemanticSuggestions(ctx, e, "weather forecast", patterns, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ranked by cosine similarity, not frequency.
	assert.Equal(t, "weather today", got[0].Pattern)
	assert.Equal(t, "deploy new build", got[1].Pattern)
}

func TestSemanticSuggestions_Limit(t *testing.T) {
	ctx := context.Background()
	e := fakeEmbedder{}
	patterns := []model.Pattern{pat("a", 1), pat("b", 1), pat("c", 1)}

	got, err := SemanticSuggestions(ctx, e, "query", patterns, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSemanticSuggestions_NilEmbedder(t *testing.T) {
	_, err := SemanticSuggestions(context.Background(), nil, "query", nil, 5)
	assert.Error(t, err)
}

func TestSemanticSuggestions_NoPatterns(t *testing.T) {
	got, err := SemanticSuggestions(context.Background(), fakeEmbedder{}, "query", nil, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
