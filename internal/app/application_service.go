package app

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/application"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/job"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
)

const resumeContentType = "application/pdf"

type ApplicationService struct {
	apps  application.Repository
	jobs  job.Repository
	users user.Repository
	blobs blob.Store
}

func NewApplicationService(apps application.Repository, jobs job.Repository, users user.Repository, blobs blob.Store) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, users: users, blobs: blobs}
}

type ApplyInput struct {
	CoverLetter string
	Resume      *blob.Upload
}

// Apply runs the submission workflow: job must exist and be open, the
// candidate must not have applied before, the cover letter must be in bounds,
// and a resume must resolve (fresh upload wins over the saved profile copy).
func (s *ApplicationService) Apply(ctx context.Context, applicantID common.UUID, rawJobID string, input ApplyInput) (*application.Application, error) {
	if strings.TrimSpace(rawJobID) == "" {
		return nil, common.NewError(common.CodeMissingJobID, "job id is required", nil)
	}
	jobID, err := common.ParseUUID(rawJobID)
	if err != nil {
		return nil, common.NewError(common.CodeJobNotFound, "job not found", err)
	}
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if posting.IsClosed {
		return nil, common.NewError(common.CodeJobClosed, "job is no longer accepting applications", nil)
	}
	if _, err := s.apps.FindByJobAndApplicant(ctx, jobID, applicantID); err == nil {
		return nil, common.NewError(common.CodeDuplicateApplication, "you have already applied to this job", nil)
	} else if !common.Is(err, common.CodeApplicationNotFound) {
		return nil, err
	}
	coverLetter := input.CoverLetter
	if coverLetter != "" {
		if length := utf8.RuneCountInString(coverLetter); length < application.MinCoverLetterLen || length > application.MaxCoverLetterLen {
			return nil, common.NewError(common.CodeInvalidCoverLetter, "cover letter must be between 20 and 5000 characters", nil)
		}
	}
	resume, err := s.resolveResume(ctx, applicantID, input.Resume)
	if err != nil {
		return nil, err
	}
	created, err := s.apps.Create(ctx, application.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		CoverLetter: coverLetter,
		Resume:      *resume,
		Status:      application.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// resolveResume picks the resume for a new application: an uploaded PDF takes
// priority, then the snapshot saved on the candidate's profile.
func (s *ApplicationService) resolveResume(ctx context.Context, applicantID common.UUID, upload *blob.Upload) (*blob.Object, error) {
	if upload != nil {
		if upload.ContentType != resumeContentType {
			return nil, common.NewError(common.CodeInvalidFileType, "resume must be a PDF", nil)
		}
		uploaded, err := s.blobs.Upload(ctx, *upload)
		if err != nil {
			return nil, common.NewError(common.CodeUploadFailed, "failed to upload resume", err)
		}
		return uploaded, nil
	}
	applicant, err := s.users.GetByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if saved := applicant.Profile.Resume; saved != nil && saved.Handle != "" {
		snapshot := *saved
		return &snapshot, nil
	}
	return nil, common.NewError(common.CodeMissingResume, "a resume is required to apply", nil)
}

type Page struct {
	CurrentPage int
	TotalPages  int
	Total       int
}

// ListByApplicant returns the caller's applications newest first with job and
// company populated.
func (s *ApplicationService) ListByApplicant(ctx context.Context, applicantID common.UUID, page, limit int) ([]application.Detail, Page, error) {
	page, limit = normalizePage(page, limit)
	total, err := s.apps.CountByApplicant(ctx, applicantID)
	if err != nil {
		return nil, Page{}, err
	}
	items, err := s.apps.ListByApplicant(ctx, applicantID, limit, (page-1)*limit)
	if err != nil {
		return nil, Page{}, err
	}
	return items, Page{CurrentPage: page, TotalPages: totalPages(total, limit), Total: total}, nil
}

// ListByJob is the recruiter's view of a job's applicants. The caller must be
// a recruiter whose company owns the job.
func (s *ApplicationService) ListByJob(ctx context.Context, recruiterID common.UUID, rawJobID, rawStatus string, page, limit int) ([]application.Detail, Page, error) {
	if strings.TrimSpace(rawJobID) == "" {
		return nil, Page{}, common.NewError(common.CodeMissingJobID, "job id is required", nil)
	}
	jobID, err := common.ParseUUID(rawJobID)
	if err != nil {
		return nil, Page{}, common.NewError(common.CodeJobNotFound, "job not found", err)
	}
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, Page{}, err
	}
	if err := s.requireCompanyOwnership(ctx, recruiterID, posting.CompanyID); err != nil {
		return nil, Page{}, err
	}
	var status application.Status
	if strings.TrimSpace(rawStatus) != "" {
		parsed, ok := application.ParseStatus(rawStatus)
		if !ok {
			return nil, Page{}, common.NewValidationError("invalid status filter", map[string]string{"status": "must be pending, accepted, or rejected"})
		}
		status = parsed
	}
	page, limit = normalizePage(page, limit)
	total, err := s.apps.CountByJob(ctx, jobID, status)
	if err != nil {
		return nil, Page{}, err
	}
	items, err := s.apps.ListByJob(ctx, jobID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, Page{}, err
	}
	return items, Page{CurrentPage: page, TotalPages: totalPages(total, limit), Total: total}, nil
}

// UpdateStatus performs the one-shot pending -> accepted|rejected transition.
// Ownership is resolved through the application -> job -> company chain.
func (s *ApplicationService) UpdateStatus(ctx context.Context, recruiterID common.UUID, rawApplicationID, rawStatus string) (*application.Application, error) {
	if strings.TrimSpace(rawStatus) == "" {
		return nil, common.NewError(common.CodeMissingStatus, "status is required", nil)
	}
	status, ok := application.ParseStatus(rawStatus)
	if !ok || status == application.StatusPending {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "must be accepted or rejected"})
	}
	applicationID, err := common.ParseUUID(rawApplicationID)
	if err != nil {
		return nil, common.NewError(common.CodeApplicationNotFound, "application not found", err)
	}
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCompanyOwnership(ctx, recruiterID, posting.CompanyID); err != nil {
		return nil, err
	}
	return s.apps.UpdateStatusIfPending(ctx, applicationID, status)
}

// requireCompanyOwnership is the tenancy predicate: the recruiter's company
// reference must equal the job's company.
func (s *ApplicationService) requireCompanyOwnership(ctx context.Context, recruiterID, companyID common.UUID) error {
	recruiter, err := s.users.GetByID(ctx, recruiterID)
	if err != nil {
		return err
	}
	if recruiter.Role != user.RoleRecruiter || recruiter.CompanyID == nil || *recruiter.CompanyID != companyID {
		return common.NewError(common.CodeForbidden, "job belongs to another company", nil)
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func totalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
