package http

import (
	"github.com/livraria-app/livraria/internal/auth"
	"github.com/livraria-app/livraria/internal/config"
	"github.com/livraria-app/livraria/internal/database"
	"github.com/livraria-app/livraria/internal/tasks"
)

// RouterConfig holds all dependencies needed by the HTTP router.
// Using a config struct instead of positional parameters keeps the router
// constructor stable as dependencies grow.
type RouterConfig struct {
	// Core dependencies
	Database   *database.Database
	Lister     BookLister
	Reconciler BookReconciler
	Version    string

	// Task queue (optional)
	TaskClient *tasks.Client

	// Authentication (optional)
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
}
