package repository

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/libenaigi/CUHIRE/internal/domain"
)

// memoryUserRepository keeps users in process memory. It is used when no
// database is configured and in tests.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
	now     func() time.Time
}

// NewMemoryUserRepository returns an empty in-memory user store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	email := domain.NormalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return ErrDuplicateEmail
	}
	now := r.now().UTC()
	user.ID = uuid.NewString()
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := cloneUser(user)
	r.byID[user.ID] = stored
	r.byEmail[email] = user.ID
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[user.ID]
	if !ok {
		return ErrNotFound
	}
	user.UpdatedAt = r.now().UTC()
	stored := cloneUser(user)
	// identity, email and role are immutable
	stored.Email = current.Email
	stored.Role = current.Role
	stored.CreatedAt = current.CreatedAt
	r.byID[user.ID] = stored
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *memoryUserRepository) ListByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.User
	for _, id := range ids {
		if user, ok := r.byID[id]; ok {
			result = append(result, *cloneUser(user))
		}
	}
	return result, nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.Company != nil {
		company := *u.Company
		c.Company = &company
	}
	if u.Phone != nil {
		phone := *u.Phone
		c.Phone = &phone
	}
	return &c
}

type memoryJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
	now  func() time.Time
}

// NewMemoryJobRepository returns an empty in-memory job store.
func NewMemoryJobRepository() JobRepository {
	return &memoryJobRepository{
		jobs: make(map[string]*domain.Job),
		now:  time.Now,
	}
}

func (r *memoryJobRepository) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	job.ID = uuid.NewString()
	job.CreatedAt = now
	job.UpdatedAt = now
	r.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *memoryJobRepository) Update(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.jobs[job.ID]
	if !ok {
		return ErrNotFound
	}
	job.UpdatedAt = r.now().UTC()
	stored := cloneJob(job)
	stored.PostedBy = current.PostedBy
	stored.CreatedAt = current.CreatedAt
	r.jobs[job.ID] = stored
	return nil
}

func (r *memoryJobRepository) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneJob(job), nil
}

func (r *memoryJobRepository) ListActive(_ context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	terms := filter.SearchTerms()
	location := strings.ToLower(strings.TrimSpace(filter.Location))

	result := []domain.Job{}
	for _, job := range r.jobs {
		if !job.IsActive {
			continue
		}
		if len(terms) > 0 && !matchesAnyTerm(job, terms) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if filter.JobType != nil && job.JobType != *filter.JobType {
			continue
		}
		if len(filter.Skills) > 0 && !hasAnySkill(job.Skills, filter.Skills) {
			continue
		}
		result = append(result, *cloneJob(job))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func matchesAnyTerm(job *domain.Job, terms []string) bool {
	haystack := strings.ToLower(job.Title + " " + job.Description + " " + strings.Join(job.Skills, " "))
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

func hasAnySkill(have, want []string) bool {
	for _, skill := range want {
		if slices.Contains(have, skill) {
			return true
		}
	}
	return false
}

func cloneJob(j *domain.Job) *domain.Job {
	c := *j
	c.Skills = slices.Clone(j.Skills)
	c.Poster = nil
	if j.Salary != nil {
		salary := *j.Salary
		c.Salary = &salary
	}
	if j.Experience != nil {
		exp := *j.Experience
		c.Experience = &exp
	}
	if j.ApplicationDeadline != nil {
		deadline := *j.ApplicationDeadline
		c.ApplicationDeadline = &deadline
	}
	return &c
}
