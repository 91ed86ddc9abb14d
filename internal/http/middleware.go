package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sl-notes/internal/domain"
)

const currentUserKey = "currentUser"

func unauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}

// requireUser resolves the bearer token to a fresh user row. A missing or
// malformed header, a failed verification, and a deleted user all produce the
// same response.
func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthenticated(c)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			unauthenticated(c)
			return
		}

		claims, err := h.tokens.Verify(parts[1])
		if err != nil {
			unauthenticated(c)
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			// stale token for a deleted user lands here
			unauthenticated(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// requireActive allows only users with a verified email past this point.
func (h *Handler) requireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			unauthenticated(c)
			return
		}
		if !user.IsVerified {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "email not verified"})
			return
		}
		c.Next()
	}
}

// requireAdmin allows only admin users past this point.
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			unauthenticated(c)
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
