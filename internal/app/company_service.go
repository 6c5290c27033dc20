package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/company"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
)

type CompanyService struct {
	companies company.Repository
	users     user.Repository
	blobs     blob.Store
}

func NewCompanyService(companies company.Repository, users user.Repository, blobs blob.Store) *CompanyService {
	return &CompanyService{companies: companies, users: users, blobs: blobs}
}

type CompanyInput struct {
	Name        string
	Description string
	Website     string
	Location    string
}

// Register creates a company owned by the calling recruiter and binds the
// recruiter to it.
func (s *CompanyService) Register(ctx context.Context, recruiterID common.UUID, input CompanyInput) (*company.Company, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, common.NewValidationError("invalid company", map[string]string{"name": "name is required"})
	}
	recruiter, err := s.users.GetByID(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	if recruiter.CompanyID != nil {
		return nil, common.NewError(common.CodeConflict, "recruiter already belongs to a company", nil)
	}
	created, err := s.companies.Create(ctx, company.Company{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Website:     strings.TrimSpace(input.Website),
		Location:    strings.TrimSpace(input.Location),
		OwnerID:     recruiterID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.users.SetCompany(ctx, recruiterID, created.ID); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *CompanyService) List(ctx context.Context) ([]company.Company, error) {
	return s.companies.List(ctx)
}

func (s *CompanyService) Get(ctx context.Context, id common.UUID) (*company.Company, error) {
	return s.companies.GetByID(ctx, id)
}

type UpdateCompanyInput struct {
	Name        *string
	Description *string
	Website     *string
	Location    *string
	Logo        *blob.Upload
}

func (s *CompanyService) Update(ctx context.Context, recruiterID common.UUID, companyID common.UUID, input UpdateCompanyInput) (*company.Company, error) {
	existing, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != recruiterID {
		return nil, common.NewError(common.CodeForbidden, "company belongs to another recruiter", nil)
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		existing.Description = strings.TrimSpace(*input.Description)
	}
	if input.Website != nil {
		existing.Website = strings.TrimSpace(*input.Website)
	}
	if input.Location != nil {
		existing.Location = strings.TrimSpace(*input.Location)
	}
	if input.Logo != nil {
		if !strings.HasPrefix(input.Logo.ContentType, "image/") {
			return nil, common.NewError(common.CodeInvalidFileType, "logo must be an image", nil)
		}
		uploaded, err := s.blobs.Upload(ctx, *input.Logo)
		if err != nil {
			return nil, common.NewError(common.CodeUploadFailed, "failed to upload logo", err)
		}
		if existing.LogoKey != "" {
			if err := s.blobs.Remove(ctx, existing.LogoKey); err != nil {
				slog.Warn("failed to remove previous logo", "handle", existing.LogoKey, "err", err)
			}
		}
		existing.LogoURL = uploaded.URL
		existing.LogoKey = uploaded.Handle
	}
	return s.companies.Update(ctx, *existing)
}
