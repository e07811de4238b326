package dto

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/libenaigi/CUHIRE/internal/domain"
)

// UserRegisterRequest payload for new accounts.
type UserRegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Company  *string `json:"company"`
	Phone    *string `json:"phone"`
}

// Normalize trims free-form input before validation.
func (r *UserRegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = domain.NormalizeEmail(r.Email)
	trimPtr(r.Company)
	trimPtr(r.Phone)
}

// Validate checks the payload and returns a field-level validation error.
func (r UserRegisterRequest) Validate() error {
	role, roleErr := domain.ParseRole(r.Role)

	companyRules := []validation.Rule{validation.Length(0, 100)}
	if roleErr == nil && role == domain.RoleRecruiter {
		companyRules = append([]validation.Rule{validation.Required.Error("company is required for recruiters")}, companyRules...)
	}

	return toValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, is.Email.Error("invalid email")),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(6, 72).Error("password must be between 6 and 72 characters")),
		validation.Field(&r.Role, validation.By(func(interface{}) error { return roleErr })),
		validation.Field(&r.Company, companyRules...),
		validation.Field(&r.Phone, validation.Match(phonePattern).Error("invalid phone number")),
	))
}

// ParsedRole returns the validated role. Call after Validate.
func (r UserRegisterRequest) ParsedRole() domain.Role {
	role, _ := domain.ParseRole(r.Role)
	return role
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Normalize trims free-form input before validation.
func (r *UserLoginRequest) Normalize() {
	r.Email = domain.NormalizeEmail(r.Email)
}

// Validate checks the payload and returns a field-level validation error.
func (r UserLoginRequest) Validate() error {
	_, roleErr := domain.ParseRole(r.Role)
	return toValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email.Error("invalid email")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
		validation.Field(&r.Role, validation.By(func(interface{}) error { return roleErr })),
	))
}

// ParsedRole returns the validated role. Call after Validate.
func (r UserLoginRequest) ParsedRole() domain.Role {
	role, _ := domain.ParseRole(r.Role)
	return role
}

// UserResponse is the public shape of an account. It never carries the hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Company   *string     `json:"company,omitempty"`
	Phone     *string     `json:"phone,omitempty"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Company:   u.Company,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ProfileResponse is returned by GET /users/me.
type ProfileResponse struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
	Company *string     `json:"company,omitempty"`
}

// NewProfileResponse maps a domain user to its profile subset.
func NewProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Company: u.Company}
}

// AuthResponse standard response for login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
