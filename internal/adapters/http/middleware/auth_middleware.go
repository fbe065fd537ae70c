package middleware

import (
	"errors"
	"strings"

	"starwash-api/internal/adapters/persistence/repositories"
	"starwash-api/internal/config"
	"starwash-api/internal/core/domain"
	"starwash-api/internal/pkg/jwt"
	"starwash-api/internal/pkg/password"
	"starwash-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BearerToken extracts the access token from the Authorization header,
// falling back to the access_token cookie.
func BearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Cookies("access_token")
}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config, sessions repositories.AuthSessionRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := BearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// A valid signature is not enough: logout revokes the tracked
		// session row, and a revoked token must stop working right away.
		session, err := sessions.GetByTokenHash(c.Context(), password.HashToken(accessToken))
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Unauthorized(c, "Invalid access token")
		}
		if err == nil && session.IsRevoked() {
			return response.Unauthorized(c, "Access token revoked")
		}

		// Normalize at the boundary; handlers only ever see ADMIN or STAFF
		role, ok := domain.NormalizeRole(claims.Role)
		if !ok {
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// StaffOrAdmin middleware allows STAFF or ADMIN roles
func StaffOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleStaff, domain.RoleAdmin)
}
