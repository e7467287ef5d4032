package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gdugdh24/opportunity-matcher/internal/delivery/http/handler"
	"github.com/gdugdh24/opportunity-matcher/internal/delivery/http/middleware"
)

type Router struct {
	matchingHandler *handler.MatchingHandler
	authMiddleware  *middleware.AuthMiddleware
	logger          *zap.Logger
}

func NewRouter(
	matchingHandler *handler.MatchingHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *zap.Logger,
) *Router {
	return &Router{
		matchingHandler: matchingHandler,
		authMiddleware:  authMiddleware,
		logger:          logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.logger))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireAuth())
	{
		matching := v1.Group("/matching")
		{
			matching.POST("/run", r.matchingHandler.RunMatching)
			matching.GET("/:student_id/matches", r.matchingHandler.ListMatches)
			matching.GET("/:student_id/completion", r.matchingHandler.GetCompletion)
		}
	}

	return router
}
