package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libenaigi/CUHIRE/internal/domain"
)

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	ListActive(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, title, description, location, job_type, salary, skills, experience,
               application_deadline, is_active, posted_by, created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, description, location, job_type, salary, skills, experience,
                          application_deadline, is_active, posted_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Location,
		string(job.JobType),
		job.Salary,
		nonNilSkills(job.Skills),
		job.Experience,
		job.ApplicationDeadline,
		job.IsActive,
		job.PostedBy,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	return translatePgError(err)
}

// Update rewrites the mutable columns. posted_by is never touched.
func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, description=$2, location=$3, job_type=$4, salary=$5, skills=$6,
            experience=$7, application_deadline=$8, is_active=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Location,
		string(job.JobType),
		job.Salary,
		nonNilSkills(job.Skills),
		job.Experience,
		job.ApplicationDeadline,
		job.IsActive,
		job.ID,
	).Scan(&job.UpdatedAt)
	return translatePgError(err)
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id=$1`
	return scanJob(r.pool.QueryRow(ctx, query, id))
}

func (r *jobRepository) ListActive(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	where, args := buildJobFilter(filter)
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY created_at DESC`, jobColumns, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	result := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *job)
	}
	return result, translatePgError(rows.Err())
}

// buildJobFilter renders the WHERE clause for ListActive with numbered
// placeholders matching the returned args.
func buildJobFilter(filter domain.JobFilter) (string, []any) {
	clauses := []string{"is_active = TRUE"}
	args := []any{}

	if terms := filter.SearchTerms(); len(terms) > 0 {
		alternatives := make([]string, 0, len(terms))
		for _, term := range terms {
			args = append(args, "%"+escapeLike(term)+"%")
			p := fmt.Sprintf("$%d", len(args))
			alternatives = append(alternatives, fmt.Sprintf(
				"(title ILIKE %[1]s OR description ILIKE %[1]s OR array_to_string(skills, ' ') ILIKE %[1]s)", p))
		}
		clauses = append(clauses, "("+strings.Join(alternatives, " OR ")+")")
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		args = append(args, "%"+escapeLike(loc)+"%")
		clauses = append(clauses, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if filter.JobType != nil {
		args = append(args, string(*filter.JobType))
		clauses = append(clauses, fmt.Sprintf("job_type = $%d", len(args)))
	}
	if len(filter.Skills) > 0 {
		args = append(args, filter.Skills)
		clauses = append(clauses, fmt.Sprintf("skills && $%d::text[]", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		job     domain.Job
		jobType string
	)
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Location,
		&jobType,
		&job.Salary,
		&job.Skills,
		&job.Experience,
		&job.ApplicationDeadline,
		&job.IsActive,
		&job.PostedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, translatePgError(err)
	}
	job.JobType = domain.JobType(jobType)
	return &job, nil
}

func nonNilSkills(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
