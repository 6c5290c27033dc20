package handlers

import (
	"net/http"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/app"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/company"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/middleware"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/response"
)

type CompanyHandler struct {
	companies *app.CompanyService
}

func NewCompanyHandler(companies *app.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type companyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Location    string `json:"location"`
}

type companyResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Company *company.Company `json:"company"`
}

func (h *CompanyHandler) Register(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.companies.Register(r.Context(), recruiterID, app.CompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, companyResponse{Success: true, Message: "company registered", Company: created})
}

type companyListResponse struct {
	Success   bool              `json:"success"`
	Companies []company.Company `json:"companies"`
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.companies.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []company.Company{}
	}
	response.JSON(w, http.StatusOK, companyListResponse{Success: true, Companies: items})
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	found, err := h.companies.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, companyResponse{Success: true, Company: found})
}

// Update handles POST /company/update/{id}: multipart form with optional text
// fields and an optional logo image.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	logo, err := fileFromForm(r, "logo")
	if err != nil {
		response.Error(w, err)
		return
	}
	input := app.UpdateCompanyInput{Logo: logo}
	if value, ok := formValue(r, "name"); ok {
		input.Name = &value
	}
	if value, ok := formValue(r, "description"); ok {
		input.Description = &value
	}
	if value, ok := formValue(r, "website"); ok {
		input.Website = &value
	}
	if value, ok := formValue(r, "location"); ok {
		input.Location = &value
	}
	updated, err := h.companies.Update(r.Context(), recruiterID, id, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, companyResponse{Success: true, Message: "company updated", Company: updated})
}
