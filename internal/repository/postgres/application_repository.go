package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/application"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/company"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/job"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, applicant_id, cover_letter, resume_name, resume_url, resume_key, status, created_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, job_id, applicant_id, cover_letter, resume_name, resume_url, resume_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		app.ID, app.JobID, app.ApplicantID, app.CoverLetter, app.Resume.FileName, app.Resume.URL, app.Resume.Handle, app.Status, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		// The unique index on (job_id, applicant_id) is the authoritative
		// duplicate guard; the pre-insert lookup is only a fast path.
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeDuplicateApplication, "you have already applied to this job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	var app application.Application
	if err := scanApplication(row, &app); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeApplicationNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND applicant_id = $2`, jobID, applicantID)
	var app application.Application
	if err := scanApplication(row, &app); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeApplicationNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID common.UUID, limit, offset int) ([]application.Detail, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_name, a.resume_url, a.resume_key, a.status, a.created_at, a.updated_at,
			j.id, j.title, j.description, j.skills, j.salary, j.experience_years, j.location, j.job_type, j.positions, j.company_id, j.created_by, j.is_closed, j.created_at, j.updated_at,
			c.id, c.name, c.description, c.website, c.location, c.logo_url, c.logo_key, c.owner_id, c.created_at, c.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.id = j.company_id
		WHERE a.applicant_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3`, applicantID, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Detail
	for rows.Next() {
		var detail application.Detail
		var j job.Job
		var c company.Company
		var resumeName, resumeURL, resumeKey sql.NullString
		if err := rows.Scan(&detail.ID, &detail.JobID, &detail.ApplicantID, &detail.CoverLetter, &resumeName, &resumeURL, &resumeKey, &detail.Status, &detail.CreatedAt, &detail.UpdatedAt,
			&j.ID, &j.Title, &j.Description, pq.Array(&j.Skills), &j.Salary, &j.ExperienceYears, &j.Location, &j.Type, &j.Positions, &j.CompanyID, &j.CreatedBy, &j.IsClosed, &j.CreatedAt, &j.UpdatedAt,
			&c.ID, &c.Name, &c.Description, &c.Website, &c.Location, &c.LogoURL, &c.LogoKey, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		detail.Resume = blob.Object{FileName: resumeName.String, URL: resumeURL.String, Handle: resumeKey.String}
		detail.Job = &j
		detail.Company = &c
		items = append(items, detail)
	}
	return items, nil
}

func (r *ApplicationRepository) CountByApplicant(ctx context.Context, applicantID common.UUID) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE applicant_id = $1`, applicantID)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	return total, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID, status application.Status, limit, offset int) ([]application.Detail, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_name, a.resume_url, a.resume_key, a.status, a.created_at, a.updated_at,
			u.id, u.name, u.email, u.role, u.phone, u.bio, u.skills, u.photo_url
		FROM applications a
		JOIN users u ON u.id = a.applicant_id
		WHERE a.job_id = $1 AND ($2 = '' OR a.status = $2)
		ORDER BY a.created_at DESC
		LIMIT $3 OFFSET $4`, jobID, string(status), limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job applications", err)
	}
	defer rows.Close()
	var items []application.Detail
	for rows.Next() {
		var detail application.Detail
		var applicant user.Public
		var resumeName, resumeURL, resumeKey sql.NullString
		if err := rows.Scan(&detail.ID, &detail.JobID, &detail.ApplicantID, &detail.CoverLetter, &resumeName, &resumeURL, &resumeKey, &detail.Status, &detail.CreatedAt, &detail.UpdatedAt,
			&applicant.ID, &applicant.Name, &applicant.Email, &applicant.Role, &applicant.Profile.Phone, &applicant.Profile.Bio, pq.Array(&applicant.Profile.Skills), &applicant.Profile.PhotoURL); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job application", err)
		}
		detail.Resume = blob.Object{FileName: resumeName.String, URL: resumeURL.String, Handle: resumeKey.String}
		detail.Applicant = &applicant
		items = append(items, detail)
	}
	return items, nil
}

func (r *ApplicationRepository) CountByJob(ctx context.Context, jobID common.UUID, status application.Status) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1 AND ($2 = '' OR status = $2)`, jobID, string(status))
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count job applications", err)
	}
	return total, nil
}

// UpdateStatusIfPending is a single conditional update: the WHERE clause on
// the current status closes the read-then-write race, so of two concurrent
// transitions exactly one sees a row affected.
func (r *ApplicationRepository) UpdateStatusIfPending(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	updatedAt := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		status, updatedAt, id, application.StatusPending)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	if rows == 0 {
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, common.NewError(common.CodeInvalidStatusUpdate, fmt.Sprintf("application already %s", current.Status), nil)
	}
	return r.GetByID(ctx, id)
}

func scanApplication(row rowScanner, app *application.Application) error {
	var resumeName, resumeURL, resumeKey sql.NullString
	if err := row.Scan(&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &resumeName, &resumeURL, &resumeKey, &app.Status, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return err
	}
	app.Resume = blob.Object{FileName: resumeName.String, URL: resumeURL.String, Handle: resumeKey.String}
	return nil
}
