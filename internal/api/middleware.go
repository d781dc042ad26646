package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mboaimmo/server/internal/models"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "user_email"
	ctxRole   = "user_role"
)

// AuthRequired validates the bearer token and stores the claims on the
// request context.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": h.translator.T("error.unauthorized")})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": h.translator.T("error.unauthorized")})
			return
		}

		claims, err := h.sessions.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": h.translator.T("error.unauthorized")})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// AdminRequired allows only users holding a back-office role record.
func (h *Handler) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxRole)
		if !models.ValidRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": h.translator.T("error.forbidden")})
			return
		}
		c.Next()
	}
}
