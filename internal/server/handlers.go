package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rcliao/chat-memory/internal/model"
	"github.com/rcliao/chat-memory/internal/store"
)

// RecordRequest is the body for POST /api/v1/interactions, sent by the chat
// transport after each completed turn.
type RecordRequest struct {
	SessionID string   `json:"session_id"`
	Prompt    string   `json:"prompt"`
	Response  string   `json:"response"`
	Tags      []string `json:"tags"`
}

// OKResponse acknowledges a mutation.
type OKResponse struct {
	OK bool `json:"ok"`
}

// handleRecord logs a chat turn. Storage failures are swallowed by the
// learner so this endpoint only rejects malformed requests: the chat path
// must never be blocked by memory logging.
func (s *Server) handleRecord(c echo.Context) error {
	var req RecordRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid record request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	s.learner.Record(c.Request().Context(), req.SessionID, req.Prompt, req.Response, req.Tags)
	return c.JSON(http.StatusAccepted, OKResponse{OK: true})
}

// InteractionsResponse is the body for GET /api/v1/interactions.
type InteractionsResponse struct {
	Interactions []model.Interaction `json:"interactions"`
	Total        int                 `json:"total"`
}

// handleListInteractions lists interactions for the admin UI. Filters are
// mutually exclusive, checked in order: session, tags, q (substring search),
// recent (limit). With no filter, everything is returned.
func (s *Server) handleListInteractions(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		interactions []model.Interaction
		err          error
	)
	switch {
	case c.QueryParam("session") != "":
		interactions, err = s.store.BySession(ctx, c.QueryParam("session"))
	case c.QueryParam("tags") != "":
		interactions, err = s.store.ByTags(ctx, splitTags(c.QueryParam("tags")))
	case c.QueryParam("q") != "":
		interactions, err = s.store.Search(ctx, c.QueryParam("q"))
	case c.QueryParam("recent") != "":
		limit, convErr := strconv.Atoi(c.QueryParam("recent"))
		if convErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "recent must be an integer")
		}
		interactions, err = s.store.Recent(ctx, limit)
	default:
		interactions, err = s.store.All(ctx)
	}
	if err != nil {
		s.logger.Error("failed to list interactions", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list interactions")
	}

	if interactions == nil {
		interactions = []model.Interaction{}
	}
	return c.JSON(http.StatusOK, InteractionsResponse{
		Interactions: interactions,
		Total:        len(interactions),
	})
}

func (s *Server) handleRemoveInteraction(c echo.Context) error {
	if err := s.store.Remove(c.Request().Context(), c.Param("id")); err != nil {
		s.logger.Error("failed to remove interaction", zap.String("id", c.Param("id")), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to remove interaction")
	}
	return c.JSON(http.StatusOK, OKResponse{OK: true})
}

func (s *Server) handleClearInteractions(c echo.Context) error {
	if err := s.store.Clear(c.Request().Context()); err != nil {
		s.logger.Error("failed to clear interactions", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to clear interactions")
	}
	return c.JSON(http.StatusOK, OKResponse{OK: true})
}

// PatternsResponse is the body for GET /api/v1/patterns.
type PatternsResponse struct {
	Patterns []model.Pattern `json:"patterns"`
}

// handlePatterns mines the current pattern set. With ?decayed=true the
// time-decayed view is returned; the store is never mutated either way.
func (s *Server) handlePatterns(c echo.Context) error {
	patterns := s.learner.LearnFromMemory(c.Request().Context())
	if c.QueryParam("decayed") == "true" {
		patterns = s.learner.DecayNow(patterns)
	}
	if patterns == nil {
		patterns = []model.Pattern{}
	}
	return c.JSON(http.StatusOK, PatternsResponse{Patterns: patterns})
}

// PromptRequest is the body for POST /api/v1/respond and /api/v1/suggest.
type PromptRequest struct {
	Prompt string `json:"prompt"`
	Limit  int    `json:"limit,omitempty"`
}

// RespondResponse carries a learned response template, or null when no
// pattern qualifies.
type RespondResponse struct {
	Response *string `json:"response"`
}

func (s *Server) handleRespond(c echo.Context) error {
	var req PromptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt field is required")
	}

	resp, ok := s.learner.LearnedResponse(c.Request().Context(), req.Prompt)
	if !ok {
		return c.JSON(http.StatusOK, RespondResponse{Response: nil})
	}
	return c.JSON(http.StatusOK, RespondResponse{Response: &resp})
}

func (s *Server) handleSuggest(c echo.Context) error {
	var req PromptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt field is required")
	}

	patterns := s.learner.Suggestions(c.Request().Context(), req.Prompt, req.Limit)
	if patterns == nil {
		patterns = []model.Pattern{}
	}
	return c.JSON(http.StatusOK, PatternsResponse{Patterns: patterns})
}

// StatsResponse is the body for GET /api/v1/stats.
type StatsResponse struct {
	Learning model.LearningStats `json:"learning"`
	Store    *store.Stats        `json:"store,omitempty"`
}

func (s *Server) handleStats(c echo.Context) error {
	ctx := c.Request().Context()
	resp := StatsResponse{Learning: s.learner.Stats(ctx)}

	if st, err := s.store.Stats(ctx, s.dbPath); err == nil {
		resp.Store = st
	} else {
		s.logger.Warn("failed to collect store stats", zap.Error(err))
	}
	return c.JSON(http.StatusOK, resp)
}

// AddDocumentRequest is the body for POST /api/v1/documents.
type AddDocumentRequest struct {
	FileName  string   `json:"file_name"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Content   string   `json:"content"`
}

func (s *Server) handleAddDocument(c echo.Context) error {
	var req AddDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.FileName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "file_name field is required")
	}

	doc, err := s.store.SaveDocument(c.Request().Context(), store.SaveDocumentParams{
		FileName:  req.FileName,
		Summary:   req.Summary,
		KeyPoints: req.KeyPoints,
		Content:   req.Content,
	})
	if err != nil {
		s.logger.Error("failed to save document context", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save document context")
	}
	return c.JSON(http.StatusCreated, doc)
}

// DocumentsResponse is the body for GET /api/v1/documents.
type DocumentsResponse struct {
	Documents []model.DocumentContext `json:"documents"`
	Total     int                     `json:"total"`
}

func (s *Server) handleListDocuments(c echo.Context) error {
	docs, err := s.store.Documents(c.Request().Context())
	if err != nil {
		s.logger.Error("failed to list document contexts", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list document contexts")
	}
	if docs == nil {
		docs = []model.DocumentContext{}
	}
	return c.JSON(http.StatusOK, DocumentsResponse{Documents: docs, Total: len(docs)})
}

func (s *Server) handleRemoveDocument(c echo.Context) error {
	if err := s.store.RemoveDocument(c.Request().Context(), c.Param("id")); err != nil {
		s.logger.Error("failed to remove document context", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to remove document context")
	}
	return c.JSON(http.StatusOK, OKResponse{OK: true})
}

func (s *Server) handleClearDocuments(c echo.Context) error {
	if err := s.store.ClearDocuments(c.Request().Context()); err != nil {
		s.logger.Error("failed to clear document contexts", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to clear document contexts")
	}
	return c.JSON(http.StatusOK, OKResponse{OK: true})
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
