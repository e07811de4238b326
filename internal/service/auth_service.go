package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/libenaigi/CUHIRE/internal/auth"
	"github.com/libenaigi/CUHIRE/internal/domain"
	"github.com/libenaigi/CUHIRE/internal/events"
	"github.com/libenaigi/CUHIRE/internal/repository"
	apperrors "github.com/libenaigi/CUHIRE/pkg/util"
)

// Login failure reasons. They are logged, never returned to the caller.
const (
	loginReasonUnknownEmail = "unknown_email"
	loginReasonBadPassword  = "password_mismatch"
	loginReasonRoleMismatch = "role_mismatch"
	loginReasonInactive     = "inactive"
)

var errInvalidCredentials = apperrors.NewUnauthorized("invalid credentials")

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	hasher     *auth.Hasher
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     *auth.Hasher
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Company  *string
	Phone    *string
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		hasher:     deps.Hasher,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Register creates a new active account. The returned user never carries the hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, apperrors.NewFieldValidationError("validation failed", map[string]string{"role": domain.ErrUnknownRole.Error()})
	}
	if in.Role == domain.RoleRecruiter && (in.Company == nil || *in.Company == "") {
		return nil, apperrors.NewFieldValidationError("validation failed", map[string]string{"company": "company is required for recruiters"})
	}

	email := domain.NormalizeEmail(in.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, duplicateEmail()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, apperrors.NewFieldValidationError("validation failed", map[string]string{"password": err.Error()})
		}
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		Company:      in.Company,
		Phone:        in.Phone,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, duplicateEmail()
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", user.Role.String()))
	s.publish(ctx, events.Event{
		Type:      events.EventUserRegistered,
		SubjectID: user.ID,
		Actor:     events.Actor{UserID: user.ID, Role: user.Role},
		Payload:   events.UserRegisteredPayload{Role: user.Role, Company: user.Company},
	})
	return user.WithoutSecrets(), nil
}

// Login verifies credentials and issues a token. Every rejection produces the
// same error; the real reason only reaches the server log.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (*domain.User, domain.Token, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// same bcrypt cost as a real mismatch
			s.hasher.Verify(password, s.dummy())
			return nil, domain.Token{}, s.loginFailed(email, loginReasonUnknownEmail)
		}
		return nil, domain.Token{}, apperrors.NewInternalError(err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.Token{}, s.loginFailed(email, loginReasonBadPassword,
			zap.String("user_id", user.ID))
	}
	if user.Role != role {
		return nil, domain.Token{}, s.loginFailed(email, loginReasonRoleMismatch,
			zap.String("user_id", user.ID),
			zap.String("requested_role", role.String()),
			zap.String("stored_role", user.Role.String()))
	}
	if !user.IsActive {
		return nil, domain.Token{}, s.loginFailed(email, loginReasonInactive, zap.String("user_id", user.ID))
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, domain.Token{}, apperrors.NewInternalError(err)
	}
	s.logger.Info("login succeeded", zap.String("user_id", user.ID), zap.String("role", user.Role.String()))
	return user.WithoutSecrets(), token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) loginFailed(email, reason string, fields ...zap.Field) error {
	fields = append([]zap.Field{zap.String("email", email), zap.String("reason", reason)}, fields...)
	s.logger.Info("login failed", fields...)
	return errInvalidCredentials
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("dummy-password-for-timing")
		if err != nil {
			s.logger.Error("build dummy hash", zap.Error(err))
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func duplicateEmail() error {
	return apperrors.NewConflict("user with this email already exists", nil)
}
