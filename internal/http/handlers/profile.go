package handlers

import (
	"net/http"
	"strings"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/app"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/middleware"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/response"
)

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	User    *user.User `json:"user"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	account, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profileResponse{Success: true, User: account})
}

// Update handles POST /user/profile/update: multipart form with optional text
// fields plus optional resume (PDF) and photo (image) files.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	resume, err := fileFromForm(r, "resume")
	if err != nil {
		response.Error(w, err)
		return
	}
	photo, err := fileFromForm(r, "photo")
	if err != nil {
		response.Error(w, err)
		return
	}
	input := app.UpdateProfileInput{Resume: resume, Photo: photo}
	if value, ok := formValue(r, "name"); ok {
		input.Name = &value
	}
	if value, ok := formValue(r, "phone"); ok {
		input.Phone = &value
	}
	if value, ok := formValue(r, "bio"); ok {
		input.Bio = &value
	}
	if value, ok := formValue(r, "skills"); ok {
		input.Skills = splitSkills(value)
	}
	updated, err := h.profiles.Update(r.Context(), userID, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profileResponse{Success: true, Message: "profile updated", User: updated})
}

func formValue(r *http.Request, field string) (string, bool) {
	if r.Form == nil {
		_ = r.ParseMultipartForm(32 << 20)
	}
	values, ok := r.Form[field]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// splitSkills accepts the comma-separated form the frontend sends.
func splitSkills(value string) []string {
	parts := strings.Split(value, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
