package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, company_id, phone, bio, skills, resume_name, resume_url, resume_key, photo_url, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, account user.User) (*user.User, error) {
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	resumeName, resumeURL, resumeKey := resumeFields(account.Profile.Resume)
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, role, company_id, phone, bio, skills, resume_name, resume_url, resume_key, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		account.ID, account.Name, account.Email, account.PasswordHash, account.Role, account.CompanyID,
		account.Profile.Phone, account.Profile.Bio, pq.Array(account.Profile.Skills),
		resumeName, resumeURL, resumeKey, account.Profile.PhotoURL, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &account, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id common.UUID, name string, profile user.Profile) (*user.User, error) {
	updatedAt := time.Now().UTC()
	resumeName, resumeURL, resumeKey := resumeFields(profile.Resume)
	result, err := r.db.ExecContext(ctx, `UPDATE users SET name = $1, phone = $2, bio = $3, skills = $4, resume_name = $5, resume_url = $6, resume_key = $7, photo_url = $8, updated_at = $9
		WHERE id = $10`,
		name, profile.Phone, profile.Bio, pq.Array(profile.Skills), resumeName, resumeURL, resumeKey, profile.PhotoURL, updatedAt, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update profile", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) SetCompany(ctx context.Context, id common.UUID, companyID common.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET company_id = $1, updated_at = $2 WHERE id = $3`,
		companyID, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to set company", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var account user.User
	var resumeName, resumeURL, resumeKey sql.NullString
	if err := row.Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.Role,
		&account.CompanyID, &account.Profile.Phone, &account.Profile.Bio, pq.Array(&account.Profile.Skills),
		&resumeName, &resumeURL, &resumeKey, &account.Profile.PhotoURL, &account.CreatedAt, &account.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	if resumeKey.Valid && resumeKey.String != "" {
		account.Profile.Resume = &blob.Object{FileName: resumeName.String, URL: resumeURL.String, Handle: resumeKey.String}
	}
	return &account, nil
}

func resumeFields(resume *blob.Object) (name, url, key sql.NullString) {
	if resume == nil {
		return
	}
	name = sql.NullString{String: resume.FileName, Valid: true}
	url = sql.NullString{String: resume.URL, Valid: true}
	key = sql.NullString{String: resume.Handle, Valid: true}
	return
}
