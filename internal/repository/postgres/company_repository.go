package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/company"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, name, description, website, location, logo_url, logo_key, owner_id, created_at, updated_at`

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	c.ID = common.NewUUID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO companies (id, name, description, website, location, logo_url, logo_key, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Description, c.Website, c.Location, c.LogoURL, c.LogoKey, c.OwnerID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "company already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create company", err)
	}
	return &c, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c company.Company) (*company.Company, error) {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE companies SET name = $1, description = $2, website = $3, location = $4, logo_url = $5, logo_key = $6, updated_at = $7
		WHERE id = $8 AND owner_id = $9`,
		c.Name, c.Description, c.Website, c.Location, c.LogoURL, c.LogoKey, c.UpdatedAt, c.ID, c.OwnerID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "company name already taken", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update company", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "company not found", sql.ErrNoRows)
	}
	return &c, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id common.UUID) (*company.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	var c company.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Website, &c.Location, &c.LogoURL, &c.LogoKey, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company", err)
	}
	return &c, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]company.Company, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list companies", err)
	}
	defer rows.Close()
	var items []company.Company
	for rows.Next() {
		var c company.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Website, &c.Location, &c.LogoURL, &c.LogoKey, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan company", err)
		}
		items = append(items, c)
	}
	return items, nil
}
