// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/utils"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setClaims(c *gin.Context, claims *utils.JWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
}

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		if c.GetHeader("Authorization") == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthTokenExpired))
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireCapability rejects callers whose role lacks cap with a 403 pointing at the dashboard.
func RequireCapability(cap domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := utils.GetRoleFromContext(c)
		if !exists || !role.Can(cap) {
			logrus.WithFields(logrus.Fields{
				"role":       role,
				"capability": cap,
				"path":       c.Request.URL.Path,
			}).Info("Access denied")
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAnyCapability passes when the role holds at least one of caps.
func RequireAnyCapability(caps ...domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := utils.GetRoleFromContext(c)
		if exists {
			for _, cap := range caps {
				if role.Can(cap) {
					c.Next()
					return
				}
			}
		}
		utils.ForbiddenResponse(c, "")
		c.Abort()
	}
}

func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := utils.GetRoleFromContext(c)
		if !exists || role != domain.RoleAdmin {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.Next()
			return
		}

		// Set user info in context if token is valid
		setClaims(c, claims)
		c.Next()
	}
}
