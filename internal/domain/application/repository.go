package application

import (
	"context"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

type Repository interface {
	// Create persists a new application. The storage layer enforces the
	// (job, applicant) uniqueness invariant; a constraint violation is
	// returned as CodeDuplicateApplication.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*Application, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID, limit, offset int) ([]Detail, error)
	CountByApplicant(ctx context.Context, applicantID common.UUID) (int, error)
	ListByJob(ctx context.Context, jobID common.UUID, status Status, limit, offset int) ([]Detail, error)
	CountByJob(ctx context.Context, jobID common.UUID, status Status) (int, error)
	// UpdateStatusIfPending performs a single conditional update guarded on
	// the current status being pending. Zero rows affected is reported as
	// CodeInvalidStatusUpdate (or CodeApplicationNotFound when the row is
	// gone), so two racing updates resolve to exactly one winner.
	UpdateStatusIfPending(ctx context.Context, id common.UUID, status Status) (*Application, error)
}
