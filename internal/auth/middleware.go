package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/libenaigi/CUHIRE/internal/domain"
	"github.com/libenaigi/CUHIRE/internal/repository"
	apperrors "github.com/libenaigi/CUHIRE/pkg/util"
)

const principalKey = "auth_principal"

// Rejection reasons recorded in logs. The HTTP body stays generic.
const (
	reasonMissingToken    = "missing_token"
	reasonMalformedHeader = "malformed_header"
	reasonExpired         = "expired"
	reasonMalformed       = "malformed"
	reasonBadSignature    = "bad_signature"
	reasonUnknownSubject  = "unknown_subject"
	reasonInactive        = "inactive"
)

// Principal represents the authenticated caller, as resolved from the store.
type Principal struct {
	User *domain.User
}

// ID returns the caller's user id.
func (p *Principal) ID() string {
	return p.User.ID
}

// Role returns the caller's current role from the stored record.
func (p *Principal) Role() domain.Role {
	return p.User.Role
}

// UserLookup resolves users by id.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	users  UserLookup
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users UserLookup, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return m.reject(c, reasonMissingToken, "token required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return m.reject(c, reasonMalformedHeader, "invalid token")
	}

	claims, err := m.tokens.Verify(strings.TrimSpace(parts[1]))
	switch {
	case errors.Is(err, ErrTokenExpired):
		return m.reject(c, reasonExpired, "token expired")
	case errors.Is(err, ErrTokenBadSignature):
		return m.reject(c, reasonBadSignature, "invalid token")
	case err != nil:
		return m.reject(c, reasonMalformed, "invalid token")
	}

	user, err := m.users.GetByID(c.UserContext(), claims.SubjectID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return m.reject(c, reasonUnknownSubject, "unauthorized")
		}
		return apperrors.NewInternalError(err)
	}
	if !user.IsActive {
		return m.reject(c, reasonInactive, "unauthorized")
	}

	c.Locals(principalKey, &Principal{User: user.WithoutSecrets()})
	return c.Next()
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, reason, message string) error {
	m.logger.Info("authentication rejected",
		zap.String("reason", reason),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("ip", c.IP()))
	return apperrors.NewUnauthorized(message)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal.User != nil
}
