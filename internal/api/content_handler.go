package api

import (
	"net/http"
	"strconv"

	"github.com/blog-content-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ContentHandler handles the reader endpoints
type ContentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services: services,
		log:      log.With().Str("handler", "content").Logger(),
	}
}

// ListArticles handles GET /v1/articles
func (h *ContentHandler) ListArticles(c *gin.Context) {
	articles := h.services.Content.Articles(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"count":    len(articles),
		"articles": articles,
	})
}

// GetArticle handles GET /v1/articles/:id and returns the full reader view:
// the article plus category, phase, related articles, rendered HTML and
// heading anchors.
func (h *ContentHandler) GetArticle(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	view, err := h.services.Content.ArticleView(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", id).Msg("Failed to build article view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render article"})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetRelatedArticles handles GET /v1/articles/:id/related
func (h *ContentHandler) GetRelatedArticles(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	count := 0
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
		count = parsed
	}

	related := h.services.Content.RelatedArticles(ctx, id, count)
	c.JSON(http.StatusOK, gin.H{
		"count":    len(related),
		"articles": related,
	})
}

// ListCategories handles GET /v1/categories
func (h *ContentHandler) ListCategories(c *gin.Context) {
	categories := h.services.Content.Categories(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"count":      len(categories),
		"categories": categories,
	})
}

// GetCategory handles GET /v1/categories/:id and includes the category's
// articles in store order.
func (h *ContentHandler) GetCategory(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	view, err := h.services.Content.CategoryView(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Str("category_id", id).Msg("Failed to build category view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load category"})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListTimeline handles GET /v1/timeline
func (h *ContentHandler) ListTimeline(c *gin.Context) {
	phases := h.services.Content.Timeline(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"count":  len(phases),
		"phases": phases,
	})
}

// GetPhaseArticles handles GET /v1/timeline/:id/articles. Unknown phase ids
// and dangling article ids both come back as an empty list.
func (h *ContentHandler) GetPhaseArticles(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	articles := h.services.Content.PhaseArticles(ctx, id)
	c.JSON(http.StatusOK, gin.H{
		"phase_id": id,
		"count":    len(articles),
		"articles": articles,
	})
}

// Refresh handles POST /v1/refresh and re-runs the joint load. On failure the
// previous snapshot keeps serving and the error is surfaced to the caller.
func (h *ContentHandler) Refresh(c *gin.Context) {
	if err := h.services.Content.Refresh(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Msg("Refresh failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "blog data load failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}
