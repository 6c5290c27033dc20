package common

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error code. Codes are part of the API
// contract: they appear verbatim in the error envelope returned to clients.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "UNAUTHORIZED_ACCESS"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeRateLimited  Code = "RATE_LIMITED"
	CodeInternal     Code = "INTERNAL_ERROR"

	CodeMissingJobID         Code = "MISSING_JOB_ID"
	CodeJobNotFound          Code = "JOB_NOT_FOUND"
	CodeJobClosed            Code = "JOB_CLOSED"
	CodeDuplicateApplication Code = "DUPLICATE_APPLICATION"
	CodeInvalidCoverLetter   Code = "INVALID_COVER_LETTER"
	CodeInvalidFileType      Code = "INVALID_FILE_TYPE"
	CodeUploadFailed         Code = "UPLOAD_FAILED"
	CodeMissingResume        Code = "MISSING_RESUME"
	CodeApplicationNotFound  Code = "APPLICATION_NOT_FOUND"
	CodeMissingStatus        Code = "MISSING_STATUS"
	CodeInvalidStatusUpdate  Code = "INVALID_STATUS_UPDATE"
)

type Error struct {
	Code    Code
	Message string
	Details map[string]string
	Err     error
}

func NewError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NewValidationError(message string, details map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Details: details}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}
