package application

import (
	"strings"
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/company"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/job"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ParseStatus lower-cases and validates a caller-supplied status value.
func ParseStatus(value string) (Status, bool) {
	switch normalized := Status(strings.ToLower(strings.TrimSpace(value))); normalized {
	case StatusPending, StatusAccepted, StatusRejected:
		return normalized, true
	default:
		return "", false
	}
}

const (
	MinCoverLetterLen = 20
	MaxCoverLetterLen = 5000
)

type Application struct {
	ID          common.UUID `json:"id"`
	JobID       common.UUID `json:"job_id"`
	ApplicantID common.UUID `json:"applicant_id"`
	CoverLetter string      `json:"cover_letter,omitempty"`
	Resume      blob.Object `json:"resume"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Detail is an application with its related records populated, shaped for the
// two list endpoints: candidates see job+company, recruiters see the applicant.
type Detail struct {
	Application
	Job       *job.Job         `json:"job,omitempty"`
	Company   *company.Company `json:"company,omitempty"`
	Applicant *user.Public     `json:"applicant,omitempty"`
}
