package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"recruiter":     RoleRecruiter,
		" Recruiter ":   RoleRecruiter,
		"jobseeker":     RoleJobSeeker,
		"job_seeker":    RoleJobSeeker,
		"JOB-SEEKER":    RoleJobSeeker,
		"\tjobseeker\n": RoleJobSeeker,
	}
	for raw, want := range cases {
		got, err := ParseRole(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseRole("admin")
	assert.ErrorIs(t, err, ErrUnknownRole)
	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestWithoutSecrets(t *testing.T) {
	u := User{ID: "u1", Email: "a@x.com", PasswordHash: "$2a$12$abc"}
	clean := u.WithoutSecrets()

	assert.Empty(t, clean.PasswordHash)
	assert.Equal(t, "u1", clean.ID)
	assert.Equal(t, "$2a$12$abc", u.PasswordHash, "original must be untouched")
}

func TestParseJobType(t *testing.T) {
	jt, err := ParseJobType(" Full-Time ")
	require.NoError(t, err)
	assert.Equal(t, JobTypeFullTime, jt)

	_, err = ParseJobType("contract")
	assert.ErrorIs(t, err, ErrUnknownJobType)
}

func TestJobFilterSearchTerms(t *testing.T) {
	f := JobFilter{Search: "  Go  Backend "}
	assert.Equal(t, []string{"go", "backend"}, f.SearchTerms())
	assert.Empty(t, JobFilter{}.SearchTerms())
}
