package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Controller exposes the login and logout endpoints.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
}

// NewController creates a new auth controller.
func NewController(service *Service, sessionManager *SessionManager) *Controller {
	return &Controller{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterRoutes attaches the auth endpoints to the router.
func (ac *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/login", ac.Login)
	router.POST("/auth/logout", ac.Logout)
}

// Login authenticates credentials and establishes a session.
// POST /auth/login
func (ac *Controller) Login(c *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login and password are required"})
		return
	}

	user, err := ac.service.Authenticate(req.Login, req.Password)
	if err != nil {
		// Same response for unknown login and wrong password
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"login":      user.Login,
		"permission": user.Permission,
	})
}

// Logout destroys the current session.
// POST /auth/logout
func (ac *Controller) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to destroy session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
