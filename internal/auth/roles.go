package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/libenaigi/CUHIRE/internal/domain"
	apperrors "github.com/libenaigi/CUHIRE/pkg/util"
)

// RequireRole ensures the authenticated principal has one of the allowed roles.
// The role is read from the record loaded by AuthMiddleware, never from token claims.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[principal.Role()]; !exists {
			return apperrors.NewForbidden("access denied")
		}
		return c.Next()
	}
}

// RequireRecruiter restricts a route to recruiters.
func RequireRecruiter() fiber.Handler {
	return RequireRole(domain.RoleRecruiter)
}

// RequireJobSeeker restricts a route to job seekers.
func RequireJobSeeker() fiber.Handler {
	return RequireRole(domain.RoleJobSeeker)
}
