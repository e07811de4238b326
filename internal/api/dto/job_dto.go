package dto

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/libenaigi/CUHIRE/internal/domain"
)

func jobTypeValues() []interface{} {
	types := domain.JobTypes()
	values := make([]interface{}, 0, len(types))
	for _, jt := range types {
		values = append(values, string(jt))
	}
	return values
}

const jobTypeMessage = "invalid job type (must be full-time, part-time, or internship)"

// CreateJobRequest payload for POST /jobs.
type CreateJobRequest struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Location            string   `json:"location"`
	JobType             string   `json:"jobType"`
	Salary              *float64 `json:"salary"`
	Skills              []string `json:"skills"`
	Experience          *string  `json:"experience"`
	ApplicationDeadline *string  `json:"applicationDeadline"`
}

// Normalize trims free-form input before validation.
func (r *CreateJobRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.JobType = strings.ToLower(strings.TrimSpace(r.JobType))
	trimPtr(r.Experience)
	trimPtr(r.ApplicationDeadline)
	for i := range r.Skills {
		r.Skills[i] = strings.TrimSpace(r.Skills[i])
	}
}

// Validate checks the payload and returns a field-level validation error.
func (r CreateJobRequest) Validate() error {
	return toValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("job title is required"), validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Required.Error("job description is required"), validation.Length(1, 2000)),
		validation.Field(&r.Location, validation.Required.Error("location is required"), validation.Length(1, 100)),
		validation.Field(&r.JobType, validation.Required.Error("job type is required"), validation.In(jobTypeValues()...).Error(jobTypeMessage)),
		validation.Field(&r.Salary, validation.Min(0.0).Error("salary cannot be negative")),
		validation.Field(&r.Skills, skillsRule),
		validation.Field(&r.Experience, validation.Length(0, 50)),
		validation.Field(&r.ApplicationDeadline, deadlineRule),
	))
}

// ToDomain maps the request to a new job. Call after Validate.
func (r CreateJobRequest) ToDomain() *domain.Job {
	job := &domain.Job{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		JobType:     domain.JobType(r.JobType),
		Salary:      r.Salary,
		Skills:      r.Skills,
		Experience:  r.Experience,
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}
	if r.ApplicationDeadline != nil && *r.ApplicationDeadline != "" {
		if t, err := parseDeadline(*r.ApplicationDeadline); err == nil {
			job.ApplicationDeadline = &t
		}
	}
	return job
}

// UpdateJobRequest payload for PUT /jobs/:id. Absent fields are left unchanged.
type UpdateJobRequest struct {
	Title               *string   `json:"title"`
	Description         *string   `json:"description"`
	Location            *string   `json:"location"`
	JobType             *string   `json:"jobType"`
	Salary              *float64  `json:"salary"`
	Skills              *[]string `json:"skills"`
	Experience          *string   `json:"experience"`
	ApplicationDeadline *string   `json:"applicationDeadline"`
}

// Normalize trims free-form input before validation.
func (r *UpdateJobRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Description)
	trimPtr(r.Location)
	lowerPtr(r.JobType)
	trimPtr(r.Experience)
	trimPtr(r.ApplicationDeadline)
	if r.Skills != nil {
		for i := range *r.Skills {
			(*r.Skills)[i] = strings.TrimSpace((*r.Skills)[i])
		}
	}
}

// Validate checks the payload and returns a field-level validation error.
func (r UpdateJobRequest) Validate() error {
	return toValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty.Error("job title cannot be empty"), validation.Length(1, 100)),
		validation.Field(&r.Description, validation.NilOrNotEmpty.Error("job description cannot be empty"), validation.Length(1, 2000)),
		validation.Field(&r.Location, validation.NilOrNotEmpty.Error("location cannot be empty"), validation.Length(1, 100)),
		validation.Field(&r.JobType, validation.NilOrNotEmpty.Error(jobTypeMessage), validation.In(jobTypeValues()...).Error(jobTypeMessage)),
		validation.Field(&r.Salary, validation.Min(0.0).Error("salary cannot be negative")),
		validation.Field(&r.Skills, skillsRule),
		validation.Field(&r.Experience, validation.Length(0, 50)),
		validation.Field(&r.ApplicationDeadline, deadlineRule),
	))
}

// Apply copies the present fields onto job. Owner and activity are not
// reachable from an update payload.
func (r UpdateJobRequest) Apply(job *domain.Job) {
	if r.Title != nil {
		job.Title = *r.Title
	}
	if r.Description != nil {
		job.Description = *r.Description
	}
	if r.Location != nil {
		job.Location = *r.Location
	}
	if r.JobType != nil {
		job.JobType = domain.JobType(*r.JobType)
	}
	if r.Salary != nil {
		job.Salary = r.Salary
	}
	if r.Skills != nil {
		job.Skills = *r.Skills
	}
	if r.Experience != nil {
		job.Experience = r.Experience
	}
	if r.ApplicationDeadline != nil {
		if *r.ApplicationDeadline == "" {
			job.ApplicationDeadline = nil
		} else if t, err := parseDeadline(*r.ApplicationDeadline); err == nil {
			job.ApplicationDeadline = &t
		}
	}
}

// JobPosterResponse is the embedded recruiter summary.
type JobPosterResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Company *string `json:"company,omitempty"`
}

// JobResponse is the public shape of a job.
type JobResponse struct {
	ID                  string             `json:"id"`
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	Location            string             `json:"location"`
	JobType             domain.JobType     `json:"jobType"`
	Salary              *float64           `json:"salary,omitempty"`
	Skills              []string           `json:"skills"`
	Experience          *string            `json:"experience,omitempty"`
	ApplicationDeadline *time.Time         `json:"applicationDeadline,omitempty"`
	IsActive            bool               `json:"isActive"`
	PostedBy            string             `json:"postedBy"`
	Poster              *JobPosterResponse `json:"poster,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

// NewJobResponse maps a domain job.
func NewJobResponse(j *domain.Job) JobResponse {
	resp := JobResponse{
		ID:                  j.ID,
		Title:               j.Title,
		Description:         j.Description,
		Location:            j.Location,
		JobType:             j.JobType,
		Salary:              j.Salary,
		Skills:              j.Skills,
		Experience:          j.Experience,
		ApplicationDeadline: j.ApplicationDeadline,
		IsActive:            j.IsActive,
		PostedBy:            j.PostedBy,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if j.Poster != nil {
		resp.Poster = &JobPosterResponse{ID: j.Poster.ID, Name: j.Poster.Name, Company: j.Poster.Company}
	}
	return resp
}

// NewJobListResponse maps a slice of jobs.
func NewJobListResponse(jobs []domain.Job) []JobResponse {
	items := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, NewJobResponse(&jobs[i]))
	}
	return items
}
