package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/blog-content-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// EditorHandler handles the structured content editor endpoints
type EditorHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewEditorHandler creates a new EditorHandler
func NewEditorHandler(services *service.Services, log zerolog.Logger) *EditorHandler {
	return &EditorHandler{
		services: services,
		log:      log.With().Str("handler", "editor").Logger(),
	}
}

// OpenSession handles POST /v1/editor/sessions. An empty or missing
// article_id opens a new document.
func (h *EditorHandler) OpenSession(c *gin.Context) {
	var req struct {
		ArticleID string `json:"article_id"`
	}
	// Body is optional for new documents.
	_ = c.ShouldBindJSON(&req)

	session, err := h.services.Editor.OpenSession(c.Request.Context(), req.ArticleID)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", req.ArticleID).Msg("Failed to open session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open editing session"})
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /v1/editor/sessions/:session_id
func (h *EditorHandler) GetSession(c *gin.Context) {
	session := h.services.Editor.GetSession(c.Param("session_id"))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// CloseSession handles DELETE /v1/editor/sessions/:session_id
func (h *EditorHandler) CloseSession(c *gin.Context) {
	h.services.Editor.CloseSession(c.Param("session_id"))
	c.Status(http.StatusNoContent)
}

// InsertSection handles POST /v1/editor/sessions/:session_id/sections
func (h *EditorHandler) InsertSection(c *gin.Context) {
	var req struct {
		Type  string `json:"type" binding:"required"`
		After int    `json:"after_local_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type is required (heading, paragraph, image)"})
		return
	}

	session, err := h.services.Editor.InsertSection(c.Param("session_id"), req.After, models.SectionType(req.Type))
	if h.respondSessionError(c, err) {
		return
	}
	c.JSON(http.StatusOK, session)
}

// RemoveSection handles DELETE /v1/editor/sessions/:session_id/sections/:local_id
func (h *EditorHandler) RemoveSection(c *gin.Context) {
	localID, ok := h.localID(c)
	if !ok {
		return
	}
	session, err := h.services.Editor.RemoveSection(c.Param("session_id"), localID)
	if h.respondSessionError(c, err) {
		return
	}
	c.JSON(http.StatusOK, session)
}

// EditSection handles PATCH /v1/editor/sessions/:session_id/sections/:local_id
func (h *EditorHandler) EditSection(c *gin.Context) {
	localID, ok := h.localID(c)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := h.services.Editor.EditSection(c.Param("session_id"), localID, req.Content)
	if h.respondSessionError(c, err) {
		return
	}
	c.JSON(http.StatusOK, session)
}

// MoveSection handles POST /v1/editor/sessions/:session_id/sections/:local_id/move
func (h *EditorHandler) MoveSection(c *gin.Context) {
	localID, ok := h.localID(c)
	if !ok {
		return
	}
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta is required and must be non-zero"})
		return
	}

	session, err := h.services.Editor.MoveSection(c.Param("session_id"), localID, req.Delta)
	if h.respondSessionError(c, err) {
		return
	}
	c.JSON(http.StatusOK, session)
}

// SaveSession handles POST /v1/editor/sessions/:session_id/save
func (h *EditorHandler) SaveSession(c *gin.Context) {
	var meta service.ArticleMeta
	if err := c.ShouldBindJSON(&meta); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article metadata"})
		return
	}

	article, err := h.services.Editor.Save(c.Request.Context(), c.Param("session_id"), meta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, service.ErrInvalidRecord):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrDuplicateID):
			c.JSON(http.StatusConflict, gin.H{"error": "an article with this id already exists"})
		default:
			h.log.Error().Err(err).Msg("Failed to save article")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save article"})
		}
		return
	}

	c.JSON(http.StatusOK, article)
}

// CreateCategory handles POST /v1/categories
func (h *EditorHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category body"})
		return
	}

	if err := h.services.Editor.CreateCategory(c.Request.Context(), &category); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRecord):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrDuplicateID):
			c.JSON(http.StatusConflict, gin.H{"error": "a category with this id already exists"})
		default:
			h.log.Error().Err(err).Msg("Failed to create category")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		}
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdatePhase handles PUT /v1/timeline/:id
func (h *EditorHandler) UpdatePhase(c *gin.Context) {
	var phase models.TimelinePhase
	if err := c.ShouldBindJSON(&phase); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phase body"})
		return
	}
	phase.ID = c.Param("id")

	if err := h.services.Editor.UpdatePhase(c.Request.Context(), &phase); err != nil {
		if errors.Is(err, service.ErrInvalidRecord) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Str("phase_id", phase.ID).Msg("Failed to update phase")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update phase"})
		return
	}

	c.JSON(http.StatusOK, phase)
}

func (h *EditorHandler) localID(c *gin.Context) (int, bool) {
	localID, err := strconv.Atoi(c.Param("local_id"))
	if err != nil || localID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "local_id must be a positive integer"})
		return 0, false
	}
	return localID, true
}

func (h *EditorHandler) respondSessionError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, service.ErrInvalidRecord):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("Editor operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "editor operation failed"})
	}
	return true
}
