package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libenaigi/CUHIRE/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestMemoryUsers_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	user := &domain.User{
		Name:         "Ada",
		Email:        "  Ada@Example.COM ",
		PasswordHash: "hash",
		Role:         domain.RoleRecruiter,
		Company:      strPtr("Acme"),
		IsActive:     true,
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", *byID.Company)

	// returned records are copies
	*byID.Company = "Mutated"
	again, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", *again.Company)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUsers_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{Email: "a@x.com", Role: domain.RoleJobSeeker}))
	err := repo.Create(ctx, &domain.User{Email: "A@X.com", Role: domain.RoleJobSeeker})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryUsers_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, &domain.User{Email: "race@x.com", Role: domain.RoleJobSeeker})
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				created++
			case ErrDuplicateEmail:
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)
}

func TestMemoryUsers_UpdateKeepsImmutableFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	user := &domain.User{Email: "a@x.com", Role: domain.RoleJobSeeker, IsActive: true}
	require.NoError(t, repo.Create(ctx, user))

	changed := *user
	changed.Email = "other@x.com"
	changed.Role = domain.RoleRecruiter
	changed.IsActive = false
	require.NoError(t, repo.Update(ctx, &changed))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.Equal(t, domain.RoleJobSeeker, stored.Role)
	assert.False(t, stored.IsActive)

	assert.ErrorIs(t, repo.Update(ctx, &domain.User{ID: "nope"}), ErrNotFound)
}

func TestMemoryUsers_ListByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	a := &domain.User{Email: "a@x.com", Role: domain.RoleRecruiter}
	b := &domain.User{Email: "b@x.com", Role: domain.RoleRecruiter}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	users, err := repo.ListByIDs(ctx, []string{a.ID, "missing", b.ID})
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func seedJob(t *testing.T, repo JobRepository, job domain.Job) *domain.Job {
	t.Helper()
	if job.PostedBy == "" {
		job.PostedBy = "owner"
	}
	if job.JobType == "" {
		job.JobType = domain.JobTypeFullTime
	}
	job.IsActive = true
	require.NoError(t, repo.Create(context.Background(), &job))
	return &job
}

func TestMemoryJobs_ListActiveFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()

	goJob := seedJob(t, repo, domain.Job{Title: "Go Engineer", Description: "Build APIs", Location: "Berlin, DE", Skills: []string{"go", "postgres"}})
	seedJob(t, repo, domain.Job{Title: "Designer", Description: "Figma wizard", Location: "Remote", JobType: domain.JobTypePartTime, Skills: []string{"figma"}})
	hidden := seedJob(t, repo, domain.Job{Title: "Go Intern", Description: "Learn", Location: "Berlin", JobType: domain.JobTypeInternship})

	hidden.IsActive = false
	require.NoError(t, repo.Update(ctx, hidden))

	all, err := repo.ListActive(ctx, domain.JobFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bySearch, err := repo.ListActive(ctx, domain.JobFilter{Search: "GO"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, goJob.ID, bySearch[0].ID)

	byAnyTerm, err := repo.ListActive(ctx, domain.JobFilter{Search: "figma apis"})
	require.NoError(t, err)
	assert.Len(t, byAnyTerm, 2)

	byLocation, err := repo.ListActive(ctx, domain.JobFilter{Location: "berlin"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, goJob.ID, byLocation[0].ID)

	partTime := domain.JobTypePartTime
	byType, err := repo.ListActive(ctx, domain.JobFilter{JobType: &partTime})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Designer", byType[0].Title)

	bySkills, err := repo.ListActive(ctx, domain.JobFilter{Skills: []string{"rust", "postgres"}})
	require.NoError(t, err)
	require.Len(t, bySkills, 1)
	assert.Equal(t, goJob.ID, bySkills[0].ID)
}

func TestMemoryJobs_UpdateNeverChangesOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	job := seedJob(t, repo, domain.Job{Title: "Go", PostedBy: "owner-1"})

	job.PostedBy = "intruder"
	job.Title = "Go Senior"
	require.NoError(t, repo.Update(ctx, job))

	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", stored.PostedBy)
	assert.Equal(t, "Go Senior", stored.Title)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEscapeLike_Memory(t *testing.T) {
	assert.Equal(t, `100\%\_a\\b`, escapeLike(`100%_a\b`))
}
