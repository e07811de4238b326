package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/libenaigi/CUHIRE/internal/domain"
	"github.com/libenaigi/CUHIRE/internal/events"
	"github.com/libenaigi/CUHIRE/internal/repository"
	apperrors "github.com/libenaigi/CUHIRE/pkg/util"
)

type titleChange string

func (c titleChange) Apply(job *domain.Job) {
	job.Title = string(c)
}

type hijack struct{}

func (hijack) Apply(job *domain.Job) {
	job.PostedBy = "someone-else"
	job.IsActive = false
	job.Location = "Remote"
}

type jobFixture struct {
	svc        *JobService
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

func newJobFixture(t *testing.T) *jobFixture {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewJobService(JobDependencies{
		JobRepo:    repository.NewMemoryJobRepository(),
		UserRepo:   users,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
	return &jobFixture{svc: svc, users: users, dispatcher: dispatcher}
}

func (f *jobFixture) recruiter(t *testing.T, email, company string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name: "Recruiter", Email: email, PasswordHash: "hash",
		Role: domain.RoleRecruiter, Company: strPtr(company), IsActive: true,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func newJob(title string) *domain.Job {
	return &domain.Job{
		Title:       title,
		Description: "Build things",
		Location:    "Berlin",
		JobType:     domain.JobTypeFullTime,
		Skills:      []string{"go", "sql"},
	}
}

func TestCreateJob_SetsOwnerAndPoster(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()
	owner := f.recruiter(t, "owner@example.com", "Acme")

	var seen []events.EventType
	f.dispatcher.Subscribe(events.EventJobCreated, func(_ context.Context, e events.Event) error {
		seen = append(seen, e.Type)
		return nil
	})

	job := newJob("Backend Engineer")
	job.PostedBy = "spoofed"
	job.IsActive = false
	created, err := f.svc.CreateJob(ctx, owner, job)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, owner.ID, created.PostedBy)
	assert.True(t, created.IsActive)
	require.NotNil(t, created.Poster)
	assert.Equal(t, "Acme", *created.Poster.Company)
	assert.Equal(t, []events.EventType{events.EventJobCreated}, seen)

	fetched, err := f.svc.GetJob(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Poster)
	assert.Equal(t, owner.ID, fetched.Poster.ID)
	assert.Equal(t, owner.Name, fetched.Poster.Name)
}

func TestUpdateJob_OnlyOwnerMayUpdate(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()
	owner := f.recruiter(t, "owner@example.com", "Acme")
	other := f.recruiter(t, "other@example.com", "Globex")

	created, err := f.svc.CreateJob(ctx, owner, newJob("Backend Engineer"))
	require.NoError(t, err)

	_, err = f.svc.UpdateJob(ctx, other, created.ID, titleChange("Stolen"))
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeForbidden, de.Code)
	assert.Equal(t, "user not authorized", de.Message)

	err = f.svc.DeactivateJob(ctx, other, created.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	updated, err := f.svc.UpdateJob(ctx, owner, created.ID, titleChange("Staff Engineer"))
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Title)

	fetched, err := f.svc.GetJob(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", fetched.Title)
}

func TestUpdateJob_OwnerAndStatusAreImmutable(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()
	owner := f.recruiter(t, "owner@example.com", "Acme")

	created, err := f.svc.CreateJob(ctx, owner, newJob("Backend Engineer"))
	require.NoError(t, err)

	updated, err := f.svc.UpdateJob(ctx, owner, created.ID, hijack{})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, updated.PostedBy)
	assert.True(t, updated.IsActive)
	assert.Equal(t, "Remote", updated.Location)
}

func TestDeactivateJob_HidesJob(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()
	owner := f.recruiter(t, "owner@example.com", "Acme")

	created, err := f.svc.CreateJob(ctx, owner, newJob("Backend Engineer"))
	require.NoError(t, err)
	require.NoError(t, f.svc.DeactivateJob(ctx, owner, created.ID))

	_, err = f.svc.GetJob(ctx, created.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	list, err := f.svc.ListJobs(ctx, domain.JobFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.svc.UpdateJob(ctx, owner, created.ID, titleChange("Again"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	err = f.svc.DeactivateJob(ctx, owner, created.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestListJobs_FiltersAndPosters(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()
	acme := f.recruiter(t, "acme@example.com", "Acme")
	globex := f.recruiter(t, "globex@example.com", "Globex")

	_, err := f.svc.CreateJob(ctx, acme, newJob("Backend Engineer"))
	require.NoError(t, err)
	intern := newJob("Design Intern")
	intern.JobType = domain.JobTypeInternship
	intern.Skills = []string{"figma"}
	intern.Location = "Paris"
	_, err = f.svc.CreateJob(ctx, globex, intern)
	require.NoError(t, err)

	all, err := f.svc.ListJobs(ctx, domain.JobFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, job := range all {
		require.NotNil(t, job.Poster)
		assert.Equal(t, job.PostedBy, job.Poster.ID)
	}

	internship := domain.JobTypeInternship
	filtered, err := f.svc.ListJobs(ctx, domain.JobFilter{JobType: &internship})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Design Intern", filtered[0].Title)

	filtered, err = f.svc.ListJobs(ctx, domain.JobFilter{Skills: []string{"sql"}})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Backend Engineer", filtered[0].Title)
}

func TestGetJob_Missing(t *testing.T) {
	f := newJobFixture(t)

	_, err := f.svc.GetJob(context.Background(), "6f1c1c9e-6f0a-4c39-9d44-000000000000")
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, apperrors.CodeNotFound, de.Code)
	assert.Equal(t, "job not found", de.Message)
}
