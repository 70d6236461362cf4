package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-api/internal/auth"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

const (
	ContextUserID     = "userID"
	ContextCompanyID  = "companyID"
	ContextEmployeeID = "employeeID"
	ContextUserRole   = "userRole"
)

func AuthMiddleware(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, httperr.CodeUnauthorized, "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, httperr.CodeUnauthorized, "Authorization header must be a Bearer token.")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, httperr.CodeUnauthorized, "Session token is invalid or expired.")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextCompanyID, claims.CompanyID)
		c.Set(ContextEmployeeID, claims.EmployeeID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RequireRole lets through only the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, httperr.CodeForbidden, "You are not allowed to perform this action.")
	}
}

// RequireOwner is RequireRole(owner) for company administration routes.
func RequireOwner() gin.HandlerFunc {
	return RequireRole(models.RoleOwner)
}
