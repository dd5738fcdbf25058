package api

import (
	"net/http"
	"time"

	"github.com/blog-content-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	contentHandler := NewContentHandler(services, log)
	editorHandler := NewEditorHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(services))
	router.GET("/metrics", metricsHandler(services))

	// API v1
	v1 := router.Group("/v1")
	{
		// Reader endpoints
		articles := v1.Group("/articles")
		{
			articles.GET("", contentHandler.ListArticles)
			articles.GET("/:id", contentHandler.GetArticle)
			articles.GET("/:id/related", contentHandler.GetRelatedArticles)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", contentHandler.ListCategories)
			categories.GET("/:id", contentHandler.GetCategory)
			categories.POST("", editorHandler.CreateCategory)
		}

		timeline := v1.Group("/timeline")
		{
			timeline.GET("", contentHandler.ListTimeline)
			timeline.GET("/:id/articles", contentHandler.GetPhaseArticles)
			timeline.PUT("/:id", editorHandler.UpdatePhase)
		}

		v1.POST("/refresh", contentHandler.Refresh)

		// Editor endpoints
		sessions := v1.Group("/editor/sessions")
		{
			sessions.POST("", editorHandler.OpenSession)
			sessions.GET("/:session_id", editorHandler.GetSession)
			sessions.DELETE("/:session_id", editorHandler.CloseSession)
			sessions.POST("/:session_id/sections", editorHandler.InsertSection)
			sessions.DELETE("/:session_id/sections/:local_id", editorHandler.RemoveSection)
			sessions.PATCH("/:session_id/sections/:local_id", editorHandler.EditSection)
			sessions.POST("/:session_id/sections/:local_id/move", editorHandler.MoveSection)
			sessions.POST("/:session_id/save", editorHandler.SaveSession)
		}
	}

	return router
}

// healthCheck returns the health status, including whether the content store
// has completed its initial load.
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"loaded":    services.Store.Ready(),
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "blog-content-api",
		})
	}
}

// metricsHandler returns collection counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		articles, categories, phases := services.Content.Counts(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"store": gin.H{
				"articles":   articles,
				"categories": categories,
				"phases":     phases,
				"loaded":     services.Store.Ready(),
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
