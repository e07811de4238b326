package events

import (
	"time"

	"github.com/libenaigi/CUHIRE/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventJobCreated     EventType = "job_created"
	EventJobUpdated     EventType = "job_updated"
	EventJobDeactivated EventType = "job_deactivated"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Role    domain.Role `json:"role"`
	Company *string     `json:"company,omitempty"`
}

// JobPayload payload shared by job lifecycle events.
type JobPayload struct {
	Title    string         `json:"title"`
	Location string         `json:"location"`
	JobType  domain.JobType `json:"job_type"`
	Skills   []string       `json:"skills"`
	IsActive bool           `json:"is_active"`
}

// NewJobPayload snapshots the public fields of a job.
func NewJobPayload(job *domain.Job) JobPayload {
	return JobPayload{
		Title:    job.Title,
		Location: job.Location,
		JobType:  job.JobType,
		Skills:   job.Skills,
		IsActive: job.IsActive,
	}
}
