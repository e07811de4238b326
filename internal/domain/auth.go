package domain

import "time"

// Token describes an issued bearer token. Tokens are never persisted.
type Token struct {
	Value     string
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
