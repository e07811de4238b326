package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the closed set of account roles. It is fixed at registration.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleRecruiter Role = "recruiter"
)

// ErrUnknownRole is returned by ParseRole for values outside the role set.
var ErrUnknownRole = errors.New("role must be either job_seeker or recruiter")

// ParseRole normalizes free-form input into a Role. Case and surrounding
// whitespace are ignored; "jobseeker" and "job-seeker" are accepted aliases.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "job_seeker", "jobseeker", "job-seeker":
		return RoleJobSeeker, nil
	case "recruiter":
		return RoleRecruiter, nil
	default:
		return "", ErrUnknownRole
	}
}

// Valid reports whether r is a member of the role set.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleRecruiter
}

func (r Role) String() string {
	return string(r)
}

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Company      *string
	Phone        *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WithoutSecrets returns a copy of the user with the password hash cleared.
func (u User) WithoutSecrets() *User {
	u.PasswordHash = ""
	return &u
}

// NormalizeEmail lower-cases and trims an email address; emails are
// compared case-insensitively everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
