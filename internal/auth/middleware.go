package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/livraria-app/livraria/internal/config"
	"github.com/livraria-app/livraria/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID     = "auth_user_id"
	ContextKeyLogin      = "auth_login"
	ContextKeyPermission = "auth_permission"
)

// DefaultUserID is used when authentication is disabled.
const DefaultUserID = uint(0)

// Middleware handles authentication for HTTP requests.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	config         config.Auth
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager, cfg config.Auth) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		config:         cfg,
	}
}

// RequireUser returns a handler that rejects unauthenticated requests on the
// routes it guards. When auth mode is "none" every request passes through
// with the default user identity.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	if m.config.Mode == config.AuthModeNone {
		return func(c *gin.Context) {
			c.Set(ContextKeyUserID, DefaultUserID)
			c.Next()
		}
	}

	return func(c *gin.Context) {
		user := m.trySessionAuth(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrAuthRequired.Error()})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyLogin, user.Login)
		c.Set(ContextKeyPermission, user.Permission)
		c.Next()
	}
}

// trySessionAuth resolves the session's user, verifying the account still
// exists.
func (m *Middleware) trySessionAuth(c *gin.Context) *entities.User {
	if m.sessionManager == nil {
		return nil
	}

	userID := m.sessionManager.GetUserID(c.Request)
	if userID == 0 {
		return nil
	}

	user, err := m.service.GetUserByID(userID)
	if err != nil {
		return nil
	}
	return user
}

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns DefaultUserID when auth is disabled or no user is authenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return DefaultUserID
}
