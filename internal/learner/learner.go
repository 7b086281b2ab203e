// Package learner mines response patterns from the interaction history and
// answers new prompts from them.
//
// Everything here is advisory, best-effort enhancement of the chat flow:
// no method propagates internal failures to the caller. Storage or mining
// errors are logged and degrade to the documented empty/zero results.
package learner

import (
	"context"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/rcliao/chat-memory/internal/model"
	"github.com/rcliao/chat-memory/internal/store"
)

// Config holds the mining and matching thresholds.
type Config struct {
	// MinFrequency is the minimum number of interactions sharing a
	// signature before a pattern is emitted.
	MinFrequency int `koanf:"min_frequency"`

	// MaxPatterns caps the pattern set returned by a mining pass.
	MaxPatterns int `koanf:"max_patterns"`

	// SimilarityThreshold is the minimum Jaccard similarity for a pattern
	// to match a prompt. Deliberately strict: near-exact phrasing only.
	SimilarityThreshold float64 `koanf:"similarity_threshold"`

	// DecayRate is the per-day frequency loss applied by Decay.
	DecayRate float64 `koanf:"decay_rate"`
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		MinFrequency:        3,
		MaxPatterns:         50,
		SimilarityThreshold: 0.8,
		DecayRate:           0.1,
	}
}

// Learner mines patterns from an interaction store.
type Learner struct {
	store   store.Store
	logger  *zap.Logger
	cfg     Config
	entropy *rand.Rand
}

// New creates a Learner over the given store. A nil logger is replaced with
// a no-op logger.
func New(s store.Store, logger *zap.Logger, cfg Config) *Learner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinFrequency <= 0 {
		cfg.MinFrequency = DefaultConfig().MinFrequency
	}
	if cfg.MaxPatterns <= 0 {
		cfg.MaxPatterns = DefaultConfig().MaxPatterns
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = DefaultConfig().SimilarityThreshold
	}
	if cfg.DecayRate <= 0 {
		cfg.DecayRate = DefaultConfig().DecayRate
	}
	return &Learner{
		store:   s,
		logger:  logger,
		cfg:     cfg,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Config returns the active thresholds.
func (l *Learner) Config() Config {
	return l.cfg
}

func (l *Learner) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), l.entropy).String()
}

// Record logs one completed chat turn. Storage failures are logged and
// swallowed: memory logging must never block the chat path.
func (l *Learner) Record(ctx context.Context, sessionID, prompt, response string, tags []string) {
	_, err := l.store.Save(ctx, store.SaveParams{
		SessionID: sessionID,
		Prompt:    prompt,
		Response:  response,
		Tags:      tags,
	})
	if err != nil {
		l.logger.Warn("failed to record interaction",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

// Stats aggregates memory and pattern counts. It never fails: any internal
// error is logged and an all-zero result returned.
func (l *Learner) Stats(ctx context.Context) model.LearningStats {
	total, err := l.store.Count(ctx)
	if err != nil {
		l.logger.Warn("failed to count interactions", zap.Error(err))
		return model.LearningStats{}
	}
	docs, err := l.store.CountByTag(ctx, model.TagDocumentRequest)
	if err != nil {
		l.logger.Warn("failed to count document requests", zap.Error(err))
		return model.LearningStats{}
	}
	errs, err := l.store.CountByTag(ctx, model.TagError)
	if err != nil {
		l.logger.Warn("failed to count error responses", zap.Error(err))
		return model.LearningStats{}
	}

	return model.LearningStats{
		TotalInteractions: total,
		LearnedPatterns:   len(l.LearnFromMemory(ctx)),
		DocumentRequests:  docs,
		ErrorResponses:    errs,
	}
}
