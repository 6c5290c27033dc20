package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

// ErrorCollector counts error codes for the metrics endpoint.
type ErrorCollector interface {
	IncError(code string)
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error converts err into the uniform error envelope. Internal faults are
// logged and replaced with a generic message so nothing leaks to the client.
func Error(w http.ResponseWriter, err error) {
	var coded *common.Error
	if !errors.As(err, &coded) {
		coded = common.NewError(common.CodeInternal, "something went wrong", err)
	}
	if errorCollector != nil {
		errorCollector.IncError(string(coded.Code))
	}
	body := errorBody{Code: coded.Code, Message: coded.Message, Details: coded.Details}
	if coded.Code == common.CodeInternal || coded.Code == common.CodeUploadFailed {
		slog.Error("request failed", "code", string(coded.Code), "err", err)
		if coded.Code == common.CodeInternal {
			body.Message = "something went wrong"
		}
	}
	JSON(w, statusOf(coded.Code), errorEnvelope{Success: false, Error: body})
}

func statusOf(code common.Code) int {
	switch code {
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound, common.CodeJobNotFound, common.CodeApplicationNotFound:
		return http.StatusNotFound
	case common.CodeConflict, common.CodeDuplicateApplication:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeInternal, common.CodeUploadFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
