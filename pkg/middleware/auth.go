package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/go-services/internal/tokens"
)

// Context keys set by Identity when a request carries a valid token.
const (
	ContextUserID = "userID"
	ContextEmail  = "userEmail"
)

// Identity resolves the caller's identity from the Authorization header.
// A missing header, a missing Bearer prefix, or any verification failure
// leaves the request anonymous; nothing is rejected here. Handlers that need
// an identity decide for themselves whether anonymity is acceptable.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			c.Next()
			return
		}
		raw = strings.TrimPrefix(raw, "Bearer ")
		claims, err := tokens.Verify(secret, raw)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// RequireUser aborts with 401 when Identity resolved no caller. Used for
// route groups where every operation mutates owned records.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the resolved caller id, or "" for anonymous requests.
func CurrentUserID(c *gin.Context) string {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// CurrentEmail returns the resolved caller email, or "" for anonymous requests.
func CurrentEmail(c *gin.Context) string {
	v, ok := c.Get(ContextEmail)
	if !ok {
		return ""
	}
	email, _ := v.(string)
	return email
}
