package http

import (
	"github.com/gin-gonic/gin"

	"github.com/livraria-app/livraria/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Session middleware must run before anything touching session state
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Login/logout endpoints when local auth is configured
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewController(cfg.AuthService, cfg.SessionManager)
		authController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Lister, cfg.Reconciler)
	tasksController := NewTasksController(cfg.TaskClient)

	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Listing stays anonymous regardless of auth mode
	api.GET("/books/:take/:skip", booksController.List)

	// Writes require a session when auth mode is "local"
	writes := api.Group("")
	if cfg.AuthMiddleware != nil {
		writes.Use(cfg.AuthMiddleware.RequireUser())
	}
	writes.PUT("/books", booksController.Upsert)
	writes.POST("/tasks/cleanup", tasksController.EnqueueCleanup)

	return router
}
