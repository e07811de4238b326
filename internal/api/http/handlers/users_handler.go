package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/libenaigi/CUHIRE/internal/api/dto"
	"github.com/libenaigi/CUHIRE/internal/auth"
	apperrors "github.com/libenaigi/CUHIRE/pkg/util"
)

// UsersHandler serves the authenticated user's own profile.
type UsersHandler struct{}

// NewUsersHandler constructs handler.
func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewProfileResponse(principal.User)})
}
