package handlers

import (
	"net/http"
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/app"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/application"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/middleware"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type applyResponse struct {
	Success     bool                     `json:"success"`
	Message     string                   `json:"message"`
	Application *application.Application `json:"application"`
}

// Apply handles POST /application/apply/{jobId}: multipart form with an
// optional coverLetter field and an optional resume file.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	rawJobID := segmentFromPath(r, 1)
	if h.limiter != nil {
		key := "apply:" + rawJobID + ":" + applicantID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	resume, err := fileFromForm(r, "resume")
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.applications.Apply(r.Context(), applicantID, rawJobID, app.ApplyInput{
		CoverLetter: r.FormValue("coverLetter"),
		Resume:      resume,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, applyResponse{
		Success:     true,
		Message:     "application submitted",
		Application: created,
	})
}

type appliedJobsResponse struct {
	Success           bool                 `json:"success"`
	CurrentPage       int                  `json:"currentPage"`
	TotalPages        int                  `json:"totalPages"`
	TotalApplications int                  `json:"totalApplications"`
	Applications      []application.Detail `json:"applications"`
}

// GetApplied handles GET /application/get: the caller's own applications,
// newest first, with job and company nested.
func (h *ApplicationHandler) GetApplied(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	page, limit := parsePagination(r)
	items, pageInfo, err := h.applications.ListByApplicant(r.Context(), applicantID, page, limit)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []application.Detail{}
	}
	response.JSON(w, http.StatusOK, appliedJobsResponse{
		Success:           true,
		CurrentPage:       pageInfo.CurrentPage,
		TotalPages:        pageInfo.TotalPages,
		TotalApplications: pageInfo.Total,
		Applications:      items,
	})
}

// Applicants handles GET /application/{jobId}/applicants: recruiter-only view
// of a job's applications, optionally filtered by status.
func (h *ApplicationHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	rawJobID := segmentFromPath(r, 2)
	page, limit := parsePagination(r)
	items, pageInfo, err := h.applications.ListByJob(r.Context(), recruiterID, rawJobID, r.URL.Query().Get("status"), page, limit)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []application.Detail{}
	}
	response.JSON(w, http.StatusOK, appliedJobsResponse{
		Success:           true,
		CurrentPage:       pageInfo.CurrentPage,
		TotalPages:        pageInfo.TotalPages,
		TotalApplications: pageInfo.Total,
		Applications:      items,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateStatusResponse struct {
	Success     bool                     `json:"success"`
	Message     string                   `json:"message"`
	Application *application.Application `json:"application"`
}

// UpdateStatus handles POST /application/status/{applicationId}/update.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), recruiterID, segmentFromPath(r, 2), req.Status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updateStatusResponse{
		Success:     true,
		Message:     "status updated",
		Application: updated,
	})
}
