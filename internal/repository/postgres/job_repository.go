package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, title, description, skills, salary, experience_years, location, job_type, positions, company_id, created_by, is_closed, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, title, description, skills, salary, experience_years, location, job_type, positions, company_id, created_by, is_closed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		j.ID, j.Title, j.Description, pq.Array(j.Skills), j.Salary, j.ExperienceYears, j.Location, j.Type, j.Positions, j.CompanyID, j.CreatedBy, j.IsClosed, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, description = $2, skills = $3, salary = $4, experience_years = $5, location = $6, job_type = $7, positions = $8, is_closed = $9, updated_at = $10
		WHERE id = $11 AND created_by = $12`,
		j.Title, j.Description, pq.Array(j.Skills), j.Salary, j.ExperienceYears, j.Location, j.Type, j.Positions, j.IsClosed, j.UpdatedAt, j.ID, j.CreatedBy)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeJobNotFound, "job not found", sql.ErrNoRows)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	var j job.Job
	if err := scanJob(row, &j); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeJobNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &j, nil
}

func (r *JobRepository) List(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	keyword := "%" + filter.Keyword + "%"
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE ($1 = '%%' OR title ILIKE $1 OR description ILIKE $1 OR location ILIKE $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, keyword, filter.Limit, filter.Offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) Count(ctx context.Context, filter job.Filter) (int, error) {
	keyword := "%" + filter.Keyword + "%"
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs
		WHERE ($1 = '%%' OR title ILIKE $1 OR description ILIKE $1 OR location ILIKE $1)`, keyword)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}
	return total, nil
}

func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE created_by = $1 ORDER BY created_at DESC`, recruiterID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list recruiter jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func scanJob(row rowScanner, j *job.Job) error {
	return row.Scan(&j.ID, &j.Title, &j.Description, pq.Array(&j.Skills), &j.Salary, &j.ExperienceYears,
		&j.Location, &j.Type, &j.Positions, &j.CompanyID, &j.CreatedBy, &j.IsClosed, &j.CreatedAt, &j.UpdatedAt)
}

func collectJobs(rows *sql.Rows) ([]job.Job, error) {
	var items []job.Job
	for rows.Next() {
		var j job.Job
		if err := scanJob(rows, &j); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, j)
	}
	return items, nil
}
