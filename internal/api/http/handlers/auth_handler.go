package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/libenaigi/CUHIRE/internal/api/dto"
	"github.com/libenaigi/CUHIRE/internal/service"
	apperrors "github.com/libenaigi/CUHIRE/pkg/util"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.ParsedRole(),
		Company:  req.Company,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "user registered successfully",
		"data":    fiber.Map{"user": dto.NewUserResponse(user)},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	user, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password, req.ParsedRole())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "login successful",
		"data": dto.AuthResponse{
			Token:     token.Value,
			ExpiresAt: token.ExpiresAt,
			User:      dto.NewUserResponse(user),
		},
	})
}
