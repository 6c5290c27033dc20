package handlers

import (
	"net/http"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/app"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/job"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/middleware"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
	Salary          float64  `json:"salary"`
	ExperienceYears int      `json:"experience_years"`
	Location        string   `json:"location"`
	Type            string   `json:"job_type"`
	Positions       int      `json:"positions"`
}

type jobResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Job     *job.Job `json:"job"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), recruiterID, app.JobInput{
		Title:           req.Title,
		Description:     req.Description,
		Skills:          req.Skills,
		Salary:          req.Salary,
		ExperienceYears: req.ExperienceYears,
		Location:        req.Location,
		Type:            job.Type(req.Type),
		Positions:       req.Positions,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, jobResponse{Success: true, Message: "job posted", Job: created})
}

type jobListResponse struct {
	Success     bool      `json:"success"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
	TotalJobs   int       `json:"totalJobs"`
	Jobs        []job.Job `json:"jobs"`
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	items, pageInfo, err := h.jobs.List(r.Context(), r.URL.Query().Get("keyword"), page, limit)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []job.Job{}
	}
	response.JSON(w, http.StatusOK, jobListResponse{
		Success:     true,
		CurrentPage: pageInfo.CurrentPage,
		TotalPages:  pageInfo.TotalPages,
		TotalJobs:   pageInfo.Total,
		Jobs:        items,
	})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	found, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, jobResponse{Success: true, Job: found})
}

type recruiterJobsResponse struct {
	Success bool      `json:"success"`
	Jobs    []job.Job `json:"jobs"`
}

func (h *JobHandler) ListByRecruiter(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.jobs.ListByRecruiter(r.Context(), recruiterID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []job.Job{}
	}
	response.JSON(w, http.StatusOK, recruiterJobsResponse{Success: true, Jobs: items})
}

type updateJobRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Skills          []string `json:"skills"`
	Salary          *float64 `json:"salary"`
	ExperienceYears *int     `json:"experience_years"`
	Location        *string  `json:"location"`
	Type            *string  `json:"job_type"`
	Positions       *int     `json:"positions"`
	IsClosed        *bool    `json:"is_closed"`
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	input := app.UpdateJobInput{
		Title:           req.Title,
		Description:     req.Description,
		Skills:          req.Skills,
		Salary:          req.Salary,
		ExperienceYears: req.ExperienceYears,
		Location:        req.Location,
		Positions:       req.Positions,
		IsClosed:        req.IsClosed,
	}
	if req.Type != nil {
		jobType := job.Type(*req.Type)
		input.Type = &jobType
	}
	updated, err := h.jobs.Update(r.Context(), recruiterID, id, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, jobResponse{Success: true, Message: "job updated", Job: updated})
}
