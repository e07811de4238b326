package domain

import (
	"errors"
	"strings"
	"time"
)

// JobType enumerates the kinds of position a job can advertise.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeInternship JobType = "internship"
)

// ErrUnknownJobType is returned by ParseJobType for unsupported values.
var ErrUnknownJobType = errors.New("invalid job type (must be full-time, part-time, or internship)")

// JobTypes lists every supported job type.
func JobTypes() []JobType {
	return []JobType{JobTypeFullTime, JobTypePartTime, JobTypeInternship}
}

// ParseJobType trims and lower-cases raw before matching it.
func ParseJobType(raw string) (JobType, error) {
	jt := JobType(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range JobTypes() {
		if jt == known {
			return jt, nil
		}
	}
	return "", ErrUnknownJobType
}

// Job is a posting owned by the recruiter who created it.
type Job struct {
	ID                  string
	Title               string
	Description         string
	Location            string
	JobType             JobType
	Salary              *float64
	Skills              []string
	Experience          *string
	ApplicationDeadline *time.Time
	IsActive            bool
	PostedBy            string
	Poster              *JobPoster
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// JobPoster is the public summary of the recruiter behind a job.
type JobPoster struct {
	ID      string
	Name    string
	Company *string
}

// JobFilter narrows job listings. Only active jobs are ever returned.
type JobFilter struct {
	Search   string
	Location string
	JobType  *JobType
	Skills   []string
}

// SearchTerms splits the free-text search into lower-cased terms.
func (f JobFilter) SearchTerms() []string {
	return strings.Fields(strings.ToLower(f.Search))
}
