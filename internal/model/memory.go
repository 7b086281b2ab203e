// Package model defines the core chat-memory data types.
package model

import "time"

// Well-known interaction tags used by the chat flow.
const (
	TagChat            = "chat"
	TagDocumentRequest = "document-request"
	TagError           = "error"
)

// Interaction is one logged prompt/response pair. Interactions are immutable
// after insert; the only mutation is whole-record deletion.
type Interaction struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	Tags      []string  `json:"tags,omitempty"`
}

// Pattern is a mined, generalized template for a recurring prompt signature.
// Patterns are ephemeral projections over the interaction history: ids are
// regenerated on every mining pass and must not be treated as durable.
type Pattern struct {
	ID               string    `json:"id"`
	Pattern          string    `json:"pattern"`
	ResponseTemplate string    `json:"response_template"`
	Frequency        int       `json:"frequency"`
	LastUsed         time.Time `json:"last_used"`
	Tags             []string  `json:"tags,omitempty"`
}

// DocumentContext is a stored summary of an uploaded document. It shares the
// save/list/remove/clear shape of Interaction but lives in its own store.
type DocumentContext struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"key_points,omitempty"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// LearningStats aggregates memory and pattern counts for observability.
type LearningStats struct {
	TotalInteractions int `json:"total_interactions"`
	LearnedPatterns   int `json:"learned_patterns"`
	DocumentRequests  int `json:"document_requests"`
	ErrorResponses    int `json:"error_responses"`
}
