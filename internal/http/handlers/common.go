package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return common.NewValidationError("invalid request body", map[string]string{"body": err.Error()})
	}
	return nil
}

// segmentFromPath returns the n-th path segment counted from the end
// (1 = last). It returns the raw value; validation is the service's job.
func segmentFromPath(r *http.Request, n int) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if n < 1 || n > len(parts) {
		return ""
	}
	return parts[len(parts)-n]
}

func idFromPath(r *http.Request, n int) (common.UUID, error) {
	id, err := common.ParseUUID(segmentFromPath(r, n))
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return id, nil
}

func parsePagination(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if value := r.URL.Query().Get("page"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return page, limit
}

// fileFromForm reads an optional multipart file field. A missing field (or a
// non-multipart request) is not an error; it simply yields nil.
func fileFromForm(r *http.Request, field string) (*blob.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, common.NewValidationError("invalid file upload", map[string]string{field: err.Error()})
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, common.NewValidationError("invalid file upload", map[string]string{field: err.Error()})
	}
	return &blob.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
