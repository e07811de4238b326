package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is the work factor used when none is configured.
	DefaultBcryptCost = 12
	// MinPasswordLength is the shortest plaintext accepted for hashing.
	MinPasswordLength = 6
)

// ErrPasswordTooShort is returned when a plaintext is below MinPasswordLength.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

// Hasher hashes and verifies passwords with bcrypt at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher builds a hasher. Costs outside bcrypt's range fall back to
// DefaultBcryptCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the configured work factor.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash hashes a plaintext password with a random salt.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hashed. A malformed hash is a mismatch.
func (h *Hasher) Verify(password, hashed string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
