package app

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/job"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
)

type JobService struct {
	jobs  job.Repository
	users user.Repository
}

func NewJobService(jobs job.Repository, users user.Repository) *JobService {
	return &JobService{jobs: jobs, users: users}
}

type JobInput struct {
	Title           string
	Description     string
	Skills          []string
	Salary          float64
	ExperienceYears int
	Location        string
	Type            job.Type
	Positions       int
}

func (s *JobService) Create(ctx context.Context, recruiterID common.UUID, input JobInput) (*job.Job, error) {
	recruiter, err := s.users.GetByID(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	if recruiter.CompanyID == nil {
		return nil, common.NewError(common.CodeValidation, "register a company before posting jobs", nil)
	}
	if err := validateJobInput(input); err != nil {
		return nil, err
	}
	return s.jobs.Create(ctx, job.Job{
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		Skills:          trimSkills(input.Skills),
		Salary:          input.Salary,
		ExperienceYears: input.ExperienceYears,
		Location:        strings.TrimSpace(input.Location),
		Type:            input.Type,
		Positions:       input.Positions,
		CompanyID:       *recruiter.CompanyID,
		CreatedBy:       recruiterID,
	})
}

type UpdateJobInput struct {
	Title           *string
	Description     *string
	Skills          []string
	Salary          *float64
	ExperienceYears *int
	Location        *string
	Type            *job.Type
	Positions       *int
	IsClosed        *bool
}

// Update mutates a posting owned by the calling recruiter, including toggling
// the closed flag. There is no delete: postings are closed, never removed.
func (s *JobService) Update(ctx context.Context, recruiterID common.UUID, jobID common.UUID, input UpdateJobInput) (*job.Job, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if posting.CreatedBy != recruiterID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
	}
	if input.Title != nil {
		posting.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		posting.Description = strings.TrimSpace(*input.Description)
	}
	if input.Skills != nil {
		posting.Skills = trimSkills(input.Skills)
	}
	if input.Salary != nil {
		posting.Salary = *input.Salary
	}
	if input.ExperienceYears != nil {
		posting.ExperienceYears = *input.ExperienceYears
	}
	if input.Location != nil {
		posting.Location = strings.TrimSpace(*input.Location)
	}
	if input.Type != nil {
		posting.Type = *input.Type
	}
	if input.Positions != nil {
		posting.Positions = *input.Positions
	}
	if input.IsClosed != nil {
		posting.IsClosed = *input.IsClosed
	}
	if err := validateJobInput(JobInput{
		Title:           posting.Title,
		Description:     posting.Description,
		Skills:          posting.Skills,
		Salary:          posting.Salary,
		ExperienceYears: posting.ExperienceYears,
		Location:        posting.Location,
		Type:            posting.Type,
		Positions:       posting.Positions,
	}); err != nil {
		return nil, err
	}
	return s.jobs.Update(ctx, *posting)
}

func (s *JobService) Get(ctx context.Context, jobID common.UUID) (*job.Job, error) {
	return s.jobs.GetByID(ctx, jobID)
}

func (s *JobService) List(ctx context.Context, keyword string, page, limit int) ([]job.Job, Page, error) {
	page, limit = normalizePage(page, limit)
	filter := job.Filter{Keyword: strings.TrimSpace(keyword), Limit: limit, Offset: (page - 1) * limit}
	total, err := s.jobs.Count(ctx, filter)
	if err != nil {
		return nil, Page{}, err
	}
	items, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, Page{}, err
	}
	return items, Page{CurrentPage: page, TotalPages: totalPages(total, limit), Total: total}, nil
}

func (s *JobService) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	return s.jobs.ListByRecruiter(ctx, recruiterID)
}

func validateJobInput(input JobInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "title is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		details["description"] = "description is required"
	}
	skills := trimSkills(input.Skills)
	if len(skills) < job.MinSkills || len(skills) > job.MaxSkills {
		details["skills"] = "between 1 and 50 skills are required"
	} else {
		for _, skill := range skills {
			if length := utf8.RuneCountInString(skill); length < job.MinSkillLen || length > job.MaxSkillLen {
				details["skills"] = "each skill must be between 2 and 100 characters"
				break
			}
		}
	}
	if input.Salary < 0 {
		details["salary"] = "salary must not be negative"
	}
	if input.ExperienceYears < 0 || input.ExperienceYears > job.MaxExperience {
		details["experience_years"] = "experience must be between 0 and 50 years"
	}
	if strings.TrimSpace(input.Location) == "" {
		details["location"] = "location is required"
	}
	if !job.ValidType(input.Type) {
		details["job_type"] = "must be Full-time, Part-time, Internship, Remote, or Contract"
	}
	if input.Positions < 1 {
		details["positions"] = "at least one position is required"
	}
	if len(details) > 0 {
		return common.NewValidationError("invalid job posting", details)
	}
	return nil
}

func trimSkills(skills []string) []string {
	trimmed := make([]string, 0, len(skills))
	for _, skill := range skills {
		if s := strings.TrimSpace(skill); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return trimmed
}
