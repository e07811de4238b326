package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libenaigi/CUHIRE/internal/domain"
)

func TestBuildJobFilter_ActiveOnly(t *testing.T) {
	where, args := buildJobFilter(domain.JobFilter{})

	assert.Equal(t, "is_active = TRUE", where)
	assert.Empty(t, args)
}

func TestBuildJobFilter_AllClauses(t *testing.T) {
	internship := domain.JobTypeInternship
	where, args := buildJobFilter(domain.JobFilter{
		Search:   "Go  50%",
		Location: " new_york ",
		JobType:  &internship,
		Skills:   []string{"go", "sql"},
	})

	assert.Equal(t,
		"is_active = TRUE AND "+
			"((title ILIKE $1 OR description ILIKE $1 OR array_to_string(skills, ' ') ILIKE $1) OR "+
			"(title ILIKE $2 OR description ILIKE $2 OR array_to_string(skills, ' ') ILIKE $2)) AND "+
			"location ILIKE $3 AND job_type = $4 AND skills && $5::text[]",
		where)
	assert.Equal(t, []any{
		"%go%",
		`%50\%%`,
		`%new\_york%`,
		"internship",
		[]string{"go", "sql"},
	}, args)
}

func TestBuildJobFilter_PlaceholdersFollowPresentClauses(t *testing.T) {
	partTime := domain.JobTypePartTime
	where, args := buildJobFilter(domain.JobFilter{JobType: &partTime, Skills: []string{"figma"}})

	assert.Equal(t, "is_active = TRUE AND job_type = $1 AND skills && $2::text[]", where)
	assert.Equal(t, []any{"part-time", []string{"figma"}}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
}
