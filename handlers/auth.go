package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/go-services/internal/models"
	"github.com/recipebook/go-services/internal/users"
	"github.com/recipebook/go-services/pkg/logger"
	"github.com/recipebook/go-services/pkg/metrics"
	"github.com/recipebook/go-services/pkg/middleware"
)

// RegisterRequest is the payload for /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is the profile plus a fresh bearer token, returned by both
// identity operations.
type SessionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// AuthHandler exposes the identity operations.
type AuthHandler struct {
	usersSvc *users.Service
}

func NewAuthHandler(u *users.Service) *AuthHandler {
	return &AuthHandler{usersSvc: u}
}

// Register routes under /auth and /api/v1
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/register", h.RegisterUser)
	a.POST("/login", h.Login)

	api := rg.Group("/api/v1")
	api.GET("/users", h.ListUsers)
	api.GET("/me", h.Me)
}

// RegisterUser creates a new account and returns it with a session token.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, tok, err := h.usersSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			metrics.AuthRegistrations.WithLabelValues("conflict").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		metrics.AuthRegistrations.WithLabelValues("error").Inc()
		logger.Errorf("register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	metrics.AuthRegistrations.WithLabelValues("success").Inc()
	c.JSON(http.StatusCreated, sessionResponse(u, tok))
}

// Login verifies credentials and returns the account with a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, tok, err := h.usersSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			metrics.AuthLogins.WithLabelValues("unknown_email").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, users.ErrInvalidCredentials):
			metrics.AuthLogins.WithLabelValues("bad_password").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			metrics.AuthLogins.WithLabelValues("error").Inc()
			logger.Errorf("login failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}
	metrics.AuthLogins.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, sessionResponse(u, tok))
}

// ListUsers returns all registered profiles. Open read; password hashes are
// excluded by the model's JSON tags.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	us, err := h.usersSvc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("user list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user list failed"})
		return
	}
	c.JSON(http.StatusOK, us)
}

// Me returns the profile behind the caller's token.
func (h *AuthHandler) Me(c *gin.Context) {
	uid := middleware.CurrentUserID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	u, err := h.usersSvc.GetByID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			// valid token for an account that no longer exists
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		logger.Errorf("me lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func sessionResponse(u *models.User, token string) SessionResponse {
	return SessionResponse{ID: u.HexID(), Name: u.Name, Email: u.Email, Token: token}
}
