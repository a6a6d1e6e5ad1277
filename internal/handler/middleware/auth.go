package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"engagement-scheduler/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ctxOperatorIDKey   = "operator_id"
	ctxOperatorRoleKey = "operator_role"

	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

var roleHierarchy = map[string]int{
	RoleOperator: 1,
	RoleAdmin:    2,
}

// TokenValidator validates an admin bearer token; satisfied by *jwt.Service.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware guards the administrative surface (manual re-runs, catalogue
// management). The periodic trigger uses the shared-secret middleware instead.
type AuthMiddleware struct {
	tokenValidator TokenValidator
}

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxOperatorIDKey, claims.UserID.String())
		c.Set(ctxOperatorRoleKey, claims.Role)
		c.Next()
	}
}

func hasMinimumRole(role, minRole string) bool {
	roleLevel, roleExists := roleHierarchy[role]
	minLevel, minExists := roleHierarchy[minRole]
	return roleExists && minExists && roleLevel >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetOperatorRole(c)
		if role == "" {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetOperatorID(c *gin.Context) string {
	if id, exists := c.Get(ctxOperatorIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

func GetOperatorRole(c *gin.Context) string {
	if role, exists := c.Get(ctxOperatorRoleKey); exists {
		if s, ok := role.(string); ok {
			return s
		}
	}
	return ""
}
