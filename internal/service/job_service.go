package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/libenaigi/CUHIRE/internal/auth"
	"github.com/libenaigi/CUHIRE/internal/domain"
	"github.com/libenaigi/CUHIRE/internal/events"
	"github.com/libenaigi/CUHIRE/internal/repository"
	apperrors "github.com/libenaigi/CUHIRE/pkg/util"
)

// JobChanges applies a partial update to a job.
type JobChanges interface {
	Apply(job *domain.Job)
}

// JobService coordinates job postings.
type JobService struct {
	jobs       repository.JobRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// JobDependencies bundles repositories for the job service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{
		jobs:       deps.JobRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateJob stores a new active job owned by actor.
func (s *JobService) CreateJob(ctx context.Context, actor *domain.User, job *domain.Job) (*domain.Job, error) {
	if actor == nil || actor.ID == "" {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	job.PostedBy = actor.ID
	job.IsActive = true
	if job.Skills == nil {
		job.Skills = []string{}
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	job.Poster = posterOf(actor)

	s.publish(ctx, events.EventJobCreated, actor, job)
	return job, nil
}

// ListJobs returns active jobs matching filter, newest first.
func (s *JobService) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	jobs, err := s.jobs.ListActive(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.attachPosters(ctx, jobs); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return jobs, nil
}

// GetJob returns an active job. Soft-deleted jobs are reported as not found.
func (s *JobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.activeJob(ctx, id)
	if err != nil {
		return nil, err
	}
	jobs := []domain.Job{*job}
	if err := s.attachPosters(ctx, jobs); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &jobs[0], nil
}

// UpdateJob applies changes when actor owns the job.
func (s *JobService) UpdateJob(ctx context.Context, actor *domain.User, id string, changes JobChanges) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	postedBy, active := job.PostedBy, job.IsActive
	changes.Apply(job)
	job.PostedBy, job.IsActive = postedBy, active

	if err := s.jobs.Update(ctx, job); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	job.Poster = posterOf(actor)

	s.publish(ctx, events.EventJobUpdated, actor, job)
	return job, nil
}

// DeactivateJob soft-deletes a job owned by actor.
func (s *JobService) DeactivateJob(ctx context.Context, actor *domain.User, id string) error {
	job, err := s.ownedJob(ctx, actor, id)
	if err != nil {
		return err
	}

	job.IsActive = false
	if err := s.jobs.Update(ctx, job); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("job", nil)
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventJobDeactivated, actor, job)
	return nil
}

func (s *JobService) activeJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !job.IsActive {
		return nil, apperrors.NewNotFound("job", nil)
	}
	return job, nil
}

func (s *JobService) ownedJob(ctx context.Context, actor *domain.User, id string) (*domain.Job, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	job, err := s.activeJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckOwnership(actor.ID, job.PostedBy); err != nil {
		s.logger.Info("ownership check failed",
			zap.String("job_id", job.ID),
			zap.String("user_id", actor.ID))
		return nil, err
	}
	return job, nil
}

// attachPosters resolves the recruiter summary for each job with one lookup.
func (s *JobService) attachPosters(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 || s.users == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(jobs))
	ids := make([]string, 0, len(jobs))
	for _, job := range jobs {
		if _, ok := seen[job.PostedBy]; !ok {
			seen[job.PostedBy] = struct{}{}
			ids = append(ids, job.PostedBy)
		}
	}

	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*domain.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range jobs {
		if u, ok := byID[jobs[i].PostedBy]; ok {
			jobs[i].Poster = posterOf(u)
		}
	}
	return nil
}

func posterOf(u *domain.User) *domain.JobPoster {
	return &domain.JobPoster{ID: u.ID, Name: u.Name, Company: u.Company}
}

func (s *JobService) publish(ctx context.Context, eventType events.EventType, actor *domain.User, job *domain.Job) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		SubjectID: job.ID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload:   events.NewJobPayload(job),
	})
	if err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
